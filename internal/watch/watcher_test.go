package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rileyhilliard/ltree/internal/errors"
	"github.com/rileyhilliard/ltree/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) handle(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func (r *recorder) last() Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

func TestWatcher_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entries: []\n"), 0644))

	rec := &recorder{}
	w, err := New(path, rec.handle, Options{Debounce: 20 * time.Millisecond, Logger: logger.NewBufferLogger()})
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	assert.True(t, w.IsWatching())

	require.NoError(t, os.WriteFile(path, []byte("entries:\n  - id: a\n"), 0644))

	assert.Eventually(t, func() bool { return rec.count() >= 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, w.Path(), rec.last().Path)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entries: []\n"), 0644))

	rec := &recorder{}
	w, err := New(path, rec.handle, Options{Debounce: 10 * time.Millisecond})
	require.NoError(t, err)
	defer w.Stop()
	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0644))
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, 0, rec.count())
}

func TestWatcher_SeesRenameReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entries: []\n"), 0644))

	rec := &recorder{}
	w, err := New(path, rec.handle, Options{Debounce: 20 * time.Millisecond})
	require.NoError(t, err)
	defer w.Stop()
	require.NoError(t, w.Start(context.Background()))

	tmp := filepath.Join(dir, ".ledger.yaml.swp")
	require.NoError(t, os.WriteFile(tmp, []byte("entries:\n  - id: b\n"), 0644))
	require.NoError(t, os.Rename(tmp, path))

	assert.Eventually(t, func() bool { return rec.count() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestDebounceLoop_CoalescesBurst(t *testing.T) {
	rec := &recorder{}
	w, err := New(filepath.Join(t.TempDir(), "ledger.yaml"), rec.handle, Options{Debounce: 100 * time.Millisecond})
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.debounceLoop(ctx)

	for _, op := range []fsnotify.Op{fsnotify.Write, fsnotify.Write, fsnotify.Rename, fsnotify.Create} {
		w.events <- Event{Path: w.Path(), Op: op}
	}

	assert.Eventually(t, func() bool { return rec.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, fsnotify.Create, rec.last().Op, "handler gets the last event of the burst")

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 1, rec.count())
}

func TestWatcher_StartErrors(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "missing", "ledger.yaml"), nil, Options{})
	require.NoError(t, err)
	defer w.Stop()

	err = w.Start(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrWatch))
	assert.False(t, w.IsWatching())
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "ledger.yaml"), nil, Options{})
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	assert.NotPanics(t, func() {
		w.Stop()
		w.Stop()
	})
	assert.False(t, w.IsWatching())
}
