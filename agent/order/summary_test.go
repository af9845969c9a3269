package order

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestSummarizeGroupsInFirstAppearanceOrder(t *testing.T) {
	t.Parallel()

	lines := []Line{
		{Name: "Soda", Price: 199},
		{Name: "Cheeseburger", Price: 999},
		{Name: "Soda", Price: 199},
	}

	got := Summarize(lines)
	want := []string{"2 x Soda", "1 x Cheeseburger"}
	if !reflect.DeepEqual(got.Items, want) {
		t.Fatalf("Items = %#v, want %#v", got.Items, want)
	}
	if got.Total != 1397 {
		t.Fatalf("Total = %v, want 13.97", got.Total)
	}
	wantGroups := []Group{{Name: "Soda", Count: 2}, {Name: "Cheeseburger", Count: 1}}
	if !reflect.DeepEqual(got.Groups, wantGroups) {
		t.Fatalf("unexpected counts: %#v", got.Groups)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	t.Parallel()

	got := Summarize(nil)
	if !got.IsEmpty() || got.Total != 0 {
		t.Fatalf("unexpected summary: %#v", got)
	}

	raw, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"items":[],"total":0.00}` {
		t.Fatalf("json = %s", raw)
	}
}

func TestSummarizeIsDeterministic(t *testing.T) {
	t.Parallel()

	lines := []Line{{Name: "A", Price: 1}, {Name: "B", Price: 2}, {Name: "A", Price: 1}}
	if !reflect.DeepEqual(Summarize(lines), Summarize(lines)) {
		t.Fatal("Summarize must be deterministic")
	}
}

func TestSummaryUsesFrozenLinePrices(t *testing.T) {
	t.Parallel()

	// Same item captured at two different prices keeps both snapshots.
	got := Summarize([]Line{{Name: "Soda", Price: 199}, {Name: "Soda", Price: 250}})
	if got.Total != 449 {
		t.Fatalf("Total = %v, want 4.49", got.Total)
	}
}

func TestCentsJSON(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(Line{Name: "Soda", Price: 199})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"name":"Soda","price":1.99}` {
		t.Fatalf("json = %s", raw)
	}

	var line Line
	if err := json.Unmarshal([]byte(`{"name":"Pasta","price":16}`), &line); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if line.Price != 1600 {
		t.Fatalf("Price = %d, want 1600", line.Price)
	}

	if err := json.Unmarshal([]byte(`{"name":"Bad","price":-1}`), &line); err == nil {
		t.Fatal("expected error for negative price")
	}
}

func TestCentsFromFloatRounds(t *testing.T) {
	t.Parallel()

	got, err := CentsFromFloat(3.98)
	if err != nil {
		t.Fatalf("CentsFromFloat() error = %v", err)
	}
	if got != 398 || got.String() != "3.98" {
		t.Fatalf("CentsFromFloat(3.98) = %d (%s)", got, got)
	}
}
