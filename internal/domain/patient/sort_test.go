package patient

import (
	"errors"
	"testing"
)

func weights(records []Record) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Weight
	}
	return out
}

func equalFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestParseSortField(t *testing.T) {
	for _, s := range []string{"height", "weight", "BMI"} {
		if _, err := ParseSortField(s); err != nil {
			t.Errorf("ParseSortField(%q): unexpected error %v", s, err)
		}
	}
	for _, s := range []string{"", "age", "Height", "bmi"} {
		_, err := ParseSortField(s)
		var argErr *InvalidArgumentError
		if !errors.As(err, &argErr) {
			t.Errorf("ParseSortField(%q): expected InvalidArgumentError, got %v", s, err)
			continue
		}
		if argErr.Param != "sort_by" || len(argErr.Allowed) != 3 {
			t.Errorf("unexpected error detail: %+v", argErr)
		}
	}
}

func TestParseSortOrder(t *testing.T) {
	if o, err := ParseSortOrder(""); err != nil || o != OrderAsc {
		t.Errorf("expected empty order to default to asc, got %q %v", o, err)
	}
	if o, err := ParseSortOrder("desc"); err != nil || o != OrderDesc {
		t.Errorf("expected desc, got %q %v", o, err)
	}
	_, err := ParseSortOrder("up")
	var argErr *InvalidArgumentError
	if !errors.As(err, &argErr) {
		t.Fatalf("expected InvalidArgumentError, got %v", err)
	}
	if argErr.Param != "order" || len(argErr.Allowed) != 2 {
		t.Errorf("unexpected error detail: %+v", argErr)
	}
}

func TestSortRecords_ByWeight(t *testing.T) {
	records := []Record{{Weight: 70, Height: 1.7}, {Weight: 50, Height: 1.7}, {Weight: 90, Height: 1.7}}

	asc := SortRecords(records, SortByWeight, OrderAsc)
	if !equalFloats(weights(asc), []float64{50, 70, 90}) {
		t.Errorf("asc: got %v", weights(asc))
	}
	desc := SortRecords(records, SortByWeight, OrderDesc)
	if !equalFloats(weights(desc), []float64{90, 70, 50}) {
		t.Errorf("desc: got %v", weights(desc))
	}
	if !equalFloats(weights(records), []float64{70, 50, 90}) {
		t.Errorf("input must not be reordered, got %v", weights(records))
	}
}

func TestSortRecords_Stable(t *testing.T) {
	records := []Record{
		{Name: "a", Weight: 60, Height: 1.6},
		{Name: "b", Weight: 50, Height: 1.6},
		{Name: "c", Weight: 60, Height: 1.6},
		{Name: "d", Weight: 50, Height: 1.6},
	}
	names := func(rs []Record) string {
		s := ""
		for _, r := range rs {
			s += r.Name
		}
		return s
	}

	if got := names(SortRecords(records, SortByWeight, OrderAsc)); got != "bdac" {
		t.Errorf("asc: expected bdac, got %s", got)
	}
	if got := names(SortRecords(records, SortByWeight, OrderDesc)); got != "acbd" {
		t.Errorf("desc: expected acbd, got %s", got)
	}
}

func TestSortRecords_ByBMI(t *testing.T) {
	records := []Record{
		{Name: "tall", Height: 2.0, Weight: 80},   // 20
		{Name: "short", Height: 1.5, Weight: 80},  // 35.56
		{Name: "middle", Height: 1.8, Weight: 81}, // 25
	}
	sorted := SortRecords(records, SortByBMI, OrderAsc)
	if sorted[0].Name != "tall" || sorted[1].Name != "middle" || sorted[2].Name != "short" {
		t.Errorf("unexpected BMI order: %s, %s, %s", sorted[0].Name, sorted[1].Name, sorted[2].Name)
	}
}

func TestSortRecords_ByHeightDesc(t *testing.T) {
	records := []Record{{Name: "x", Height: 1.5, Weight: 1}, {Name: "y", Height: 1.9, Weight: 1}}
	sorted := SortRecords(records, SortByHeight, OrderDesc)
	if sorted[0].Name != "y" {
		t.Errorf("expected y first, got %s", sorted[0].Name)
	}
}
