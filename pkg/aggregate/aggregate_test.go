package aggregate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"slr-hq/atlas/pkg/annotation/ast"
)

func mapping(entries ...ast.Entry) ast.Value {
	return ast.Value{Kind: ast.KindMapping, Entries: entries}
}

func entry(key string, values ...string) ast.Entry {
	return ast.Entry{Key: key, Values: values}
}

func TestCollector_SelectedKeys(t *testing.T) {
	c := NewCollector("Shots", "Backend", "Shots")
	c.AddAll([]ast.Value{
		mapping(entry("Shots", "200"), entry("Gates", "X")),
		ast.Empty(),
		ast.NewList("a", "b"),
		mapping(entry("Backend", "IBM"), entry("Shots", "300", "400")),
	})

	if diff := cmp.Diff([]string{"Shots", "Backend"}, c.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"200", "300", "400"}, c.Values("Shots")); diff != "" {
		t.Errorf("Values(Shots) mismatch (-want +got):\n%s", diff)
	}
	if got := c.Values("Gates"); got != nil {
		t.Errorf("Values(Gates) = %v, want nil", got)
	}
}

func TestCollector_AllKeys(t *testing.T) {
	c := NewCollector()
	c.Add(mapping(entry("B", "1")))
	c.Add(mapping(entry("A", "2"), entry("B", "3")))
	c.Add(ast.Value{Kind: ast.KindMixed, Entries: []ast.Entry{entry("C", "4")}, Tags: []string{"t"}})

	if diff := cmp.Diff([]string{"B", "A", "C"}, c.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"1", "3"}, c.Values("B")); diff != "" {
		t.Errorf("Values(B) mismatch (-want +got):\n%s", diff)
	}
}

func TestFrequencies(t *testing.T) {
	got := Frequencies([]string{"b", "a", "c", "a", "c", "d"})
	want := []Count{
		{Value: "a", Count: 2},
		{Value: "c", Count: 2},
		{Value: "b", Count: 1},
		{Value: "d", Count: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Frequencies() mismatch (-want +got):\n%s", diff)
	}

	if got := Frequencies(nil); len(got) != 0 {
		t.Errorf("Frequencies(nil) = %v, want empty", got)
	}
}

func TestBucketRare(t *testing.T) {
	items := []string{"IBM", "IBM", "IBM", "Rigetti", "IonQ", "IonQ"}

	tests := []struct {
		name      string
		threshold int
		label     string
		want      []string
	}{
		{
			name:      "threshold one",
			threshold: 1,
			want:      []string{"IBM", "IBM", "IBM", "Others", "IonQ", "IonQ"},
		},
		{
			name:      "threshold two custom label",
			threshold: 2,
			label:     "rest",
			want:      []string{"IBM", "IBM", "IBM", "rest", "rest", "rest"},
		},
		{
			name:      "threshold zero",
			threshold: 0,
			want:      items,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BucketRare(items, tt.threshold, tt.label)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("BucketRare() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDistinct(t *testing.T) {
	if got := Distinct([]string{"a", "b", "a"}); got != 2 {
		t.Errorf("Distinct() = %d, want 2", got)
	}
}

func TestTagsAndSizes(t *testing.T) {
	values := []ast.Value{
		ast.NewList("x", "y"),
		mapping(entry("k", "v"), entry("j", "w")),
		ast.Empty(),
		{Kind: ast.KindMixed, Entries: []ast.Entry{entry("k", "v")}, Tags: []string{"z"}},
	}

	if diff := cmp.Diff([]string{"x", "y", "z"}, Tags(values)); diff != "" {
		t.Errorf("Tags() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 2, 0, 2}, Sizes(values)); diff != "" {
		t.Errorf("Sizes() mismatch (-want +got):\n%s", diff)
	}
}

func TestIndex(t *testing.T) {
	values := []ast.Value{
		mapping(entry("Backend", "IBM", "IBM")),
		mapping(entry("Backend", "IonQ")),
		ast.Empty(),
		mapping(entry("Backend", "IonQ", "IBM")),
		mapping(entry("Other", "IBM")),
	}
	ids := []string{"p1", "p2", "p3", "p4", "p5"}

	got, err := Index("Backend", values, ids)
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}
	want := []Posting{
		{Value: "IBM", Papers: []string{"p1", "p4"}, Count: 2},
		{Value: "IonQ", Papers: []string{"p2", "p4"}, Count: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Index() mismatch (-want +got):\n%s", diff)
	}
}

func TestIndex_Tags(t *testing.T) {
	values := []ast.Value{ast.NewList("a"), ast.NewList("b", "a")}
	got, err := Index("", values, []string{"p1", "p2"})
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}
	want := []Posting{
		{Value: "a", Papers: []string{"p1", "p2"}, Count: 2},
		{Value: "b", Papers: []string{"p2"}, Count: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Index() mismatch (-want +got):\n%s", diff)
	}
}

func TestIndex_LengthMismatch(t *testing.T) {
	if _, err := Index("k", []ast.Value{ast.Empty()}, nil); err == nil {
		t.Error("Index() error = nil, want length mismatch")
	}
}

func TestOverlap(t *testing.T) {
	full := ast.NewList("x")
	none := ast.Empty()

	got, err := Overlap([]Column{
		{Name: "RQ1", Values: []ast.Value{full, full, none, full, none}},
		{Name: "RQ2", Values: []ast.Value{full, none, none, full, none}},
		{Name: "RQ3", Values: []ast.Value{none, none, full, full, none}},
	})
	if err != nil {
		t.Fatalf("Overlap() error = %v", err)
	}

	want := []Combination{
		{Columns: []string{"RQ1", "RQ2"}, Count: 1},
		{Columns: []string{"RQ1"}, Count: 1},
		{Columns: []string{"RQ3"}, Count: 1},
		{Columns: []string{"RQ1", "RQ2", "RQ3"}, Count: 1},
		{Columns: nil, Count: 1},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Overlap() mismatch (-want +got):\n%s", diff)
	}
}

func TestOverlap_Counts(t *testing.T) {
	full := ast.NewList("x")
	none := ast.Empty()

	got, err := Overlap([]Column{
		{Name: "A", Values: []ast.Value{full, none, full, full}},
		{Name: "B", Values: []ast.Value{none, full, none, none}},
	})
	if err != nil {
		t.Fatalf("Overlap() error = %v", err)
	}
	want := []Combination{
		{Columns: []string{"A"}, Count: 3},
		{Columns: []string{"B"}, Count: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Overlap() mismatch (-want +got):\n%s", diff)
	}
}

func TestOverlap_UnequalLengths(t *testing.T) {
	_, err := Overlap([]Column{
		{Name: "A", Values: []ast.Value{ast.Empty()}},
		{Name: "B", Values: nil},
	})
	if err == nil {
		t.Error("Overlap() error = nil, want length mismatch")
	}

	got, err := Overlap(nil)
	if err != nil || got != nil {
		t.Errorf("Overlap(nil) = %v, %v; want nil, nil", got, err)
	}
}
