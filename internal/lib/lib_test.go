package lib

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psidex/citygraph/internal/errors"
)

func TestSet(t *testing.T) {
	s := NewSet("b", "a")

	assert.True(t, s.Add("c"))
	assert.False(t, s.Add("a"))
	assert.True(t, s.Contains("b"))
	assert.False(t, s.Contains("d"))
	assert.Equal(t, 3, s.Size())
	assert.Equal(t, []string{"a", "b", "c"}, Sorted(s))

	s.Reset("z")
	assert.Equal(t, []string{"z"}, s.AsSlice())
}

func TestEdgeSetIgnoresDirection(t *testing.T) {
	e := NewEdgeSet()

	assert.True(t, e.AddOnce("1", "2"))
	assert.False(t, e.AddOnce("2", "1"))
	assert.False(t, e.AddOnce("1", "2"))
	assert.True(t, e.AddOnce("1", "1"))
	assert.Equal(t, 2, e.Size())
}

func TestInterner(t *testing.T) {
	h := NewInterner[string]()

	assert.Equal(t, 1, h.ID("paris"))
	assert.Equal(t, 2, h.ID("lyon"))
	assert.Equal(t, 1, h.ID("paris"))
	assert.Equal(t, 3, h.ID("nice"))
}

func TestDuration(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"1m30s"`), &d))
	assert.Equal(t, 90*time.Second, d.Duration)

	require.NoError(t, json.Unmarshal([]byte(`1000000`), &d))
	assert.Equal(t, time.Millisecond, d.Duration)

	err := json.Unmarshal([]byte(`"soon"`), &d)
	assert.True(t, errors.IsInvalidRequest(err))
	err = json.Unmarshal([]byte(`true`), &d)
	assert.True(t, errors.IsInvalidRequest(err))

	out, err := json.Marshal(DurationFrom(2 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, `"2s"`, string(out))

	assert.Equal(t, time.Minute, Duration{}.OrDefault(time.Minute))
	assert.Equal(t, time.Second, DurationFrom(time.Second).OrDefault(time.Minute))
}
