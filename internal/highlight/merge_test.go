package highlight

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psidex/citygraph/internal/errors"
)

func ptrs(spans ...Interval) []*Interval {
	out := make([]*Interval, len(spans))
	for i := range spans {
		span := spans[i]
		out[i] = &span
	}
	return out
}

func values(spans []*Interval) []Interval {
	out := make([]Interval, len(spans))
	for i, s := range spans {
		out[i] = *s
	}
	return out
}

func positions(spans []Interval) map[int]bool {
	covered := map[int]bool{}
	for _, s := range spans {
		for p := s.Start; p < s.End(); p++ {
			covered[p] = true
		}
	}
	return covered
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		in   []Interval
		want []Interval
	}{
		{
			name: "overlap",
			in:   []Interval{{0, 5}, {3, 4}, {10, 2}},
			want: []Interval{{0, 7}, {10, 2}},
		},
		{
			name: "touching and unsorted",
			in:   []Interval{{5, 2}, {0, 5}},
			want: []Interval{{0, 7}},
		},
		{
			name: "contained",
			in:   []Interval{{0, 10}, {2, 3}},
			want: []Interval{{0, 10}},
		},
		{
			name: "gap of one stays apart",
			in:   []Interval{{0, 2}, {3, 1}},
			want: []Interval{{0, 2}, {3, 1}},
		},
		{
			name: "single",
			in:   []Interval{{4, 1}},
			want: []Interval{{4, 1}},
		},
		{
			name: "chain",
			in:   []Interval{{8, 2}, {0, 3}, {3, 3}, {6, 2}},
			want: []Interval{{0, 10}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Merge(ptrs(tt.in...), true)
			require.NoError(t, err)
			assert.Equal(t, tt.want, values(got))
		})
	}
}

func TestMergeEmpty(t *testing.T) {
	_, err := Merge(nil, true)
	assert.ErrorIs(t, err, ErrNoIntervals)
	assert.True(t, errors.IsInvalidRequest(err))

	_, err = MergeValues([]Interval{})
	assert.ErrorIs(t, err, ErrNoIntervals)
}

func TestMergeRejectsNil(t *testing.T) {
	_, err := Merge([]*Interval{{0, 1}, nil}, true)
	assert.True(t, errors.IsInvalidRequest(err))
}

func TestMergeSortsInPlace(t *testing.T) {
	in := ptrs(Interval{5, 2}, Interval{0, 5})
	first, second := in[0], in[1]

	got, err := Merge(in, true)
	require.NoError(t, err)

	assert.Same(t, second, in[0])
	assert.Same(t, first, in[1])
	require.Len(t, got, 1)
	assert.Same(t, second, got[0], "the result references the caller's interval")
	assert.Equal(t, 7, second.Length)
}

func TestMergeKeepsCallerOrder(t *testing.T) {
	in := ptrs(Interval{10, 2}, Interval{0, 5}, Interval{3, 4})
	before := append([]*Interval(nil), in...)

	got, err := Merge(in, false)
	require.NoError(t, err)

	for i := range before {
		assert.Same(t, before[i], in[i])
	}
	assert.Equal(t, []Interval{{0, 7}, {10, 2}}, values(got))
}

func TestMergeIsStable(t *testing.T) {
	a, b := &Interval{2, 1}, &Interval{2, 3}

	got, err := Merge([]*Interval{a, b}, false)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Same(t, a, got[0])
	assert.Equal(t, 3, a.Length)
}

func TestMergeProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 200; round++ {
		in := make([]Interval, 1+rng.Intn(12))
		for i := range in {
			in[i] = Interval{Start: rng.Intn(40), Length: 1 + rng.Intn(6)}
		}

		merged, err := MergeValues(in)
		require.NoError(t, err)

		assert.Equal(t, positions(in), positions(merged), "covered positions are unchanged")
		for i := 1; i < len(merged); i++ {
			assert.Greater(t, merged[i].Start, merged[i-1].End(), "results neither overlap nor touch")
		}
		assert.LessOrEqual(t, len(merged), len(in))

		again, err := MergeValues(merged)
		require.NoError(t, err)
		assert.Equal(t, merged, again, "merging is idempotent")
	}
}

func TestMergeValuesLeavesInputAlone(t *testing.T) {
	in := []Interval{{3, 4}, {0, 5}}

	_, err := MergeValues(in)
	require.NoError(t, err)

	assert.Equal(t, []Interval{{3, 4}, {0, 5}}, in)
}

func TestCovered(t *testing.T) {
	assert.Equal(t, 0, Covered(nil))
	assert.Equal(t, 9, Covered([]Interval{{0, 5}, {3, 4}, {10, 2}}))
}
