package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleCSV = "ID,RQ1 Types,RQ7 Oracles,Included\n" +
	"P1,[Quantum state],[Output probability oracle: Exact],[Y]\n" +
	"P2,\"[Quantum state], [Quantum gate]\",[Un-specified],[N]\n" +
	",,,\n" +
	"P3,[Quantum gate]\n"

func TestRead(t *testing.T) {
	table, err := Read(strings.NewReader(sampleCSV), "review.csv")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if table.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 (blank rows skipped)", table.Len())
	}
	if diff := cmp.Diff([]string{"ID", "RQ1 Types", "RQ7 Oracles", "Included"}, table.Headers()); diff != "" {
		t.Errorf("Headers() mismatch (-want +got):\n%s", diff)
	}

	cells, err := table.Column("RQ1 Types")
	if err != nil {
		t.Fatalf("Column() error = %v", err)
	}
	want := []string{"[Quantum state]", "[Quantum state], [Quantum gate]", "[Quantum gate]"}
	if diff := cmp.Diff(want, cells); diff != "" {
		t.Errorf("Column() mismatch (-want +got):\n%s", diff)
	}

	// Short rows are padded.
	oracles, _ := table.Column("RQ7 Oracles")
	if oracles[2] != "" {
		t.Errorf("padded cell = %q, want empty", oracles[2])
	}
}

func TestRead_BOM(t *testing.T) {
	table, err := Read(strings.NewReader("\uFEFFID,Name\n1,a\n"), "bom.csv")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if _, err := table.Column("ID"); err != nil {
		t.Errorf("Column(ID) error = %v; BOM not stripped", err)
	}
}

func TestRead_Empty(t *testing.T) {
	if _, err := Read(strings.NewReader(""), "empty.csv"); err == nil {
		t.Error("Read() expected error for empty input")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "review.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if table.Name != path {
		t.Errorf("Name = %q, want %q", table.Name, path)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestTable_Resolve(t *testing.T) {
	table, _ := Read(strings.NewReader(sampleCSV), "review.csv")
	aliases := map[string]string{"rq1": "RQ1 Types", "rq7": "RQ7 Oracles"}

	byAlias, err := table.Resolve("rq1", aliases)
	if err != nil {
		t.Fatalf("Resolve(alias) error = %v", err)
	}
	byHeader, err := table.Resolve("RQ1 Types", aliases)
	if err != nil {
		t.Fatalf("Resolve(header) error = %v", err)
	}
	if diff := cmp.Diff(byAlias, byHeader); diff != "" {
		t.Errorf("alias and header differ (-alias +header):\n%s", diff)
	}
}

func TestTable_Resolve_Unknown(t *testing.T) {
	table, _ := Read(strings.NewReader(sampleCSV), "review.csv")

	_, err := table.Resolve("RQ7 Oracle", nil)
	if err == nil {
		t.Fatal("Resolve() expected error")
	}
	ce, ok := err.(*ColumnError)
	if !ok {
		t.Fatalf("error type = %T, want *ColumnError", err)
	}
	if ce.Table != "review.csv" {
		t.Errorf("Table = %q, want review.csv", ce.Table)
	}
	if !strings.Contains(ce.Error(), "Did you mean 'RQ7 Oracles'?") {
		t.Errorf("Error() = %q, want a suggestion", ce.Error())
	}
}

func TestClean(t *testing.T) {
	items := []string{"[H gates: 233]", " [Pauli-X gates] ", "plain", "[a] [b]"}

	all := Clean(items, CleanAll)
	if diff := cmp.Diff([]string{"H gates: 233", " Pauli-X gates ", "plain", "a b"}, all); diff != "" {
		t.Errorf("Clean(all) mismatch (-want +got):\n%s", diff)
	}

	outer := Clean(items, CleanOuter)
	if diff := cmp.Diff([]string{"H gates: 233", "Pauli-X gates", "plain", "a] [b"}, outer); diff != "" {
		t.Errorf("Clean(outer) mismatch (-want +got):\n%s", diff)
	}
}

func TestBooleanCounts(t *testing.T) {
	yes, no := BooleanCounts([]string{"[Y]", "[N]", " [Y] ", "[y]", "", "[Y], [N]"})
	if yes != 2 || no != 1 {
		t.Errorf("BooleanCounts() = %d, %d, want 2, 1", yes, no)
	}
}
