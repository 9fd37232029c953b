package patient

import (
	"sort"
)

// SortField is a numeric record field the collection can be ordered by.
type SortField string

const (
	SortByHeight SortField = "height"
	SortByWeight SortField = "weight"
	SortByBMI    SortField = "BMI"
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

var (
	sortFields = []string{string(SortByHeight), string(SortByWeight), string(SortByBMI)}
	sortOrders = []string{string(OrderAsc), string(OrderDesc)}
)

// ParseSortField accepts height, weight and BMI, case-sensitively.
func ParseSortField(s string) (SortField, error) {
	switch SortField(s) {
	case SortByHeight, SortByWeight, SortByBMI:
		return SortField(s), nil
	}
	return "", &InvalidArgumentError{Param: "sort_by", Value: s, Allowed: sortFields}
}

// ParseSortOrder accepts asc and desc. An empty order means asc.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case "":
		return OrderAsc, nil
	case OrderAsc, OrderDesc:
		return SortOrder(s), nil
	}
	return "", &InvalidArgumentError{Param: "order", Value: s, Allowed: sortOrders}
}

func (f SortField) key(r Record) float64 {
	switch f {
	case SortByHeight:
		return r.Height
	case SortByWeight:
		return r.Weight
	default:
		return r.BMI()
	}
}

// SortRecords returns a sorted copy of records. Equal keys keep their input
// order in both directions.
func SortRecords(records []Record, field SortField, order SortOrder) []Record {
	keys := make([]float64, len(records))
	for i, r := range records {
		keys[i] = field.key(r)
	}
	idx := make([]int, len(records))
	for i := range idx {
		idx[i] = i
	}

	sort.SliceStable(idx, func(i, j int) bool {
		if order == OrderDesc {
			return keys[idx[i]] > keys[idx[j]]
		}
		return keys[idx[i]] < keys[idx[j]]
	})

	sorted := make([]Record, len(records))
	for i, k := range idx {
		sorted[i] = records[k]
	}
	return sorted
}
