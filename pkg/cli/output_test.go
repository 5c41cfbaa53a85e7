package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"testing"
)

type countTable struct {
	rows [][]string
}

func (c countTable) Header() []string { return []string{"value", "count"} }
func (c countTable) Rows() [][]string { return c.rows }

func (c countTable) WriteText(w io.Writer) error {
	for _, r := range c.rows {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", r[0], r[1]); err != nil {
			return err
		}
	}
	return nil
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", FormatText, false},
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"csv", "", true},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in, FormatText, FormatJSON)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if err != nil && ExitCode(err) != ExitUsage {
				t.Errorf("ExitCode(%v) = %d, want %d", err, ExitCode(err), ExitUsage)
			}
		})
	}
}

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name string
		data any
		want string
	}{
		{"plain", "test message", "test message\n"},
		{"text writer", countTable{rows: [][]string{{"X", "2"}, {"H", "1"}}}, "X\t2\nH\t1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := (&TextFormatter{}).FormatTo(&buf, tt.data); err != nil {
				t.Fatalf("FormatTo() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("FormatTo() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestJSONFormatter(t *testing.T) {
	for _, indent := range []bool{false, true} {
		var buf bytes.Buffer
		data := map[string]int{"X": 2}
		if err := (&JSONFormatter{Indent: indent}).FormatTo(&buf, data); err != nil {
			t.Fatalf("FormatTo() error = %v", err)
		}

		var got map[string]int
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if got["X"] != 2 {
			t.Errorf("decoded = %v, want X=2", got)
		}
	}
}

func TestCSVFormatter(t *testing.T) {
	data := countTable{rows: [][]string{{"Quantum gates, X", "2"}}}

	var buf bytes.Buffer
	if err := (&CSVFormatter{}).FormatTo(&buf, data); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}
	want := "value,count\n\"Quantum gates, X\",2\n"
	if buf.String() != want {
		t.Errorf("FormatTo() = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	if err := (&CSVFormatter{OmitHeader: true}).FormatTo(&buf, data); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}
	if buf.String() != "\"Quantum gates, X\",2\n" {
		t.Errorf("FormatTo() without header = %q", buf.String())
	}

	if err := (&CSVFormatter{}).FormatTo(&buf, "not a table"); err == nil {
		t.Error("FormatTo(string) error = nil, want error")
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format OutputFormat
		want   string
	}{
		{FormatText, "*cli.TextFormatter"},
		{FormatJSON, "*cli.JSONFormatter"},
		{FormatCSV, "*cli.CSVFormatter"},
		{"unknown", "*cli.TextFormatter"},
	}

	for _, tt := range tests {
		if got := fmt.Sprintf("%T", NewFormatter(tt.format)); got != tt.want {
			t.Errorf("NewFormatter(%q) = %s, want %s", tt.format, got, tt.want)
		}
	}
}
