package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWatcherBatchesChanges(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "mail", "chrome"), 0o755))

	w, err := New(Config{Roots: []string{root}, Debounce: 50 * time.Millisecond}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	batches := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, changed []string) {
			batches <- changed
		})
	}()

	// Give Run a moment to enter its loop before writing.
	time.Sleep(20 * time.Millisecond)
	target := filepath.Join(root, "mail", "chrome", "messenger.dtd")
	require.NoError(t, os.WriteFile(target, []byte(`<!ENTITY a "b">`), 0o644))

	select {
	case got := <-batches:
		assert.Contains(t, got, target)
	case <-time.After(5 * time.Second):
		t.Fatal("no change batch delivered")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWatcherSkipsHiddenAndExcluded(t *testing.T) {
	w := &Watcher{excludes: map[string]bool{"node_modules": true}}
	assert.True(t, w.skipDir("/tmp/x/.hg"))
	assert.True(t, w.skipDir("/tmp/x/node_modules"))
	assert.False(t, w.skipDir("/tmp/x/mail"))
}

func TestWatcherMissingRoot(t *testing.T) {
	_, err := New(Config{Roots: []string{filepath.Join(t.TempDir(), "absent")}}, nil)
	assert.Error(t, err)
}
