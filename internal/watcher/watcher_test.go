package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStarted(t *testing.T) *Watcher {
	t.Helper()
	w, err := New(20 * time.Millisecond)
	require.NoError(t, err)
	w.Start()
	t.Cleanup(w.Stop)
	return w
}

func waitEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev := <-w.Events():
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watcher event")
		return Event{}
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "wave.vcd")
	require.NoError(t, os.WriteFile(target, []byte("$date"), 0644))

	w := newStarted(t)
	require.NoError(t, w.Add(target))

	require.NoError(t, os.WriteFile(target, []byte("$date\n$end"), 0644))

	ev := waitEvent(t, w)
	want, err := filepath.Abs(target)
	require.NoError(t, err)
	assert.Equal(t, want, ev.Path)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "wave.vcd")
	other := filepath.Join(dir, "other.txt")

	w := newStarted(t)
	require.NoError(t, w.Add(target))

	require.NoError(t, os.WriteFile(other, []byte("x"), 0644))
	select {
	case ev := <-w.Events():
		t.Fatalf("unexpected event for %s", ev.Path)
	case <-time.After(200 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(target, []byte("x"), 0644))
	ev := waitEvent(t, w)
	assert.Equal(t, "wave.vcd", filepath.Base(ev.Path))
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "wave.vcd")

	w := newStarted(t)
	require.NoError(t, w.Add(target))

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(target, []byte{byte('a' + i)}, 0644))
	}

	waitEvent(t, w)
	select {
	case ev := <-w.Events():
		t.Fatalf("expected a single event, got another for %s", ev.Path)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherAddMissingDir(t *testing.T) {
	w := newStarted(t)
	err := w.Add(filepath.Join(t.TempDir(), "missing", "wave.vcd"))
	assert.Error(t, err)
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	w, err := New(0)
	require.NoError(t, err)
	assert.Equal(t, DefaultDebounce, w.delay)
	w.Start()
	w.Stop()
	w.Stop()
}
