package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psidex/citygraph/internal/store"
)

type recorder struct {
	mu     sync.Mutex
	events []store.Event
}

func (r *recorder) Publish(e store.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestImportMapWatcherDebounces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, store.ImportMapFile)
	rec := &recorder{}

	w, err := New(path, rec, 50*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644))

	require.Eventually(t, func() bool { return rec.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, 1, rec.count())
	assert.Equal(t, store.ImportMapChanged, rec.events[0].Type)

	cancel()
	assert.NoError(t, <-done)
}

func TestImportMapWatcherSeesStoreSaves(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "g"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, store.ImportMapFile), []byte(`[{"id":"g","name":"G","path":"g"}]`), 0o644))

	rec := &recorder{}
	s := store.New(dir)
	w, err := New(s.ImportMapPath(), rec, 20*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	_, err = s.Save(store.SaveRequest{OriginalID: "g", Graph: []byte(`{"nodes":[],"links":[]}`)}, time.Now())
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return rec.count() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestNewMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope", store.ImportMapFile), &recorder{}, 0)
	assert.Error(t, err)
}
