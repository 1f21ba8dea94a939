package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psidex/citygraph/internal/errors"
)

func TestGraph(t *testing.T) {
	userAgents := make(chan string, 8)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgents <- r.UserAgent()
		switch r.URL.Path {
		case "/graphs/gazeta.json":
			w.Write([]byte(`{"nodes":[{"id":1}],"links":[]}`))
		case "/broken.json":
			w.Write([]byte(`{"nodes":`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := New(srv.Client(), 0)
	ctx := context.Background()

	file, err := f.Graph(ctx, srv.URL+"/graphs/gazeta.json")
	require.NoError(t, err)
	assert.Equal(t, "gazeta.json", file.Name)
	assert.JSONEq(t, `{"nodes":[{"id":1}],"links":[]}`, string(file.Data))
	assert.NotEmpty(t, <-userAgents)

	_, err = f.Graph(ctx, srv.URL+"/missing.json")
	assert.True(t, errors.IsNotFound(err))

	_, err = f.Graph(ctx, srv.URL+"/broken.json")
	assert.True(t, errors.IsInvalidRequest(err))
}

func TestGraphTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"nodes":[],"links":[]}`))
	}))
	defer srv.Close()

	_, err := New(srv.Client(), 4).Graph(context.Background(), srv.URL+"/g.json")
	assert.True(t, errors.IsInvalidRequest(err))
}

func TestFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://example.com/graphs/gazeta.json", "gazeta.json"},
		{"https://example.com/graphs/podcast/", "podcast.json"},
		{"https://example.com", "example.com.json"},
		{"http://example.com/", "example.com.json"},
	}
	for _, tt := range tests {
		got, err := fileName(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"ftp://example.com/a.json", "file:///etc/passwd", "https:///x.json", "://"} {
		_, err := fileName(bad)
		assert.True(t, errors.IsInvalidRequest(err), bad)
	}
}
