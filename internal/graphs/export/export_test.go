package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psidex/citygraph/internal/errors"
	"github.com/psidex/citygraph/internal/graphs"
)

func TestNew(t *testing.T) {
	tests := []struct {
		format string
		ext    string
	}{
		{"echarts", "html"},
		{"VIS", "html"},
		{"graphology", "json"},
		{"adjacency", "json"},
		{"json", "json"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			r, err := New(tt.format, graphs.RenderOptions{})
			require.NoError(t, err)
			assert.Equal(t, tt.ext, r.Ext())
		})
	}
}

func TestNewUnknownFormat(t *testing.T) {
	_, err := New("svg", graphs.RenderOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidRequest(err))
	assert.Contains(t, errors.GetAllHints(err)[0], "graphology")
}

func TestFormatsSorted(t *testing.T) {
	assert.Equal(t, []string{"adjacency", "echarts", "graphology", "json", "vis"}, Formats())
}
