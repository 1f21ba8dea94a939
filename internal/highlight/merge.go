// Package highlight works with highlighted spans of node text: merging overlapping
// spans, finding search terms and rendering the result as marked-up HTML. Offsets are
// counted in runes.
package highlight

import (
	"cmp"
	"slices"

	"github.com/psidex/citygraph/internal/errors"
)

// Interval is the half-open span [Start, Start+Length).
type Interval struct {
	Start  int `json:"start"`
	Length int `json:"length"`
}

func (i Interval) End() int {
	return i.Start + i.Length
}

// ErrNoIntervals is returned by Merge for an empty input.
var ErrNoIntervals = errors.Mark(errors.New("no intervals to merge"), errors.ErrInvalidRequest)

// Merge returns the smallest ascending set of intervals covering the same positions as
// spans. Overlapping intervals and intervals that touch (one starts where the previous
// ends) are merged.
//
// Merge takes exclusive access to spans for the duration of the call. The sort is
// stable and happens in place when mutateOrder is true; otherwise the caller's slice
// keeps its order and a sorted copy is used. Either way the result holds the caller's
// pointers, and an interval that absorbs later ones has its Length grown in place.
func Merge(spans []*Interval, mutateOrder bool) ([]*Interval, error) {
	if len(spans) == 0 {
		return nil, ErrNoIntervals
	}
	if slices.Contains(spans, nil) {
		return nil, errors.InvalidRequestf("nil interval in input")
	}

	sorted := spans
	if !mutateOrder {
		sorted = slices.Clone(spans)
	}
	slices.SortStableFunc(sorted, func(a, b *Interval) int {
		return cmp.Compare(a.Start, b.Start)
	})

	result := []*Interval{sorted[0]}
	for _, current := range sorted[1:] {
		last := result[len(result)-1]
		if current.Start <= last.End() {
			last.Length = max(last.End(), current.End()) - last.Start
		} else {
			result = append(result, current)
		}
	}

	return result, nil
}

// MergeValues is Merge for callers holding plain values. The input is copied, so
// nothing the caller holds changes.
func MergeValues(spans []Interval) ([]Interval, error) {
	ptrs := make([]*Interval, len(spans))
	for i := range spans {
		span := spans[i]
		ptrs[i] = &span
	}

	merged, err := Merge(ptrs, true)
	if err != nil {
		return nil, err
	}

	out := make([]Interval, len(merged))
	for i, m := range merged {
		out[i] = *m
	}
	return out, nil
}

// Covered is the number of positions covered by spans, counting overlaps once.
func Covered(spans []Interval) int {
	if len(spans) == 0 {
		return 0
	}
	merged, _ := MergeValues(spans)

	total := 0
	for _, m := range merged {
		if m.Length > 0 {
			total += m.Length
		}
	}
	return total
}
