package devreload

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerBroadcastsToClients(t *testing.T) {
	srv := NewServer()
	ts := httptest.NewServer(srv)
	defer ts.Close()
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan ReloadPacket, 4)
	done := make(chan error, 1)
	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	go func() {
		done <- Listen(ctx, url, func(p ReloadPacket) { got <- p })
	}()

	require.Eventually(t, func() bool { return srv.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	seq := srv.Broadcast([]string{"img/tile.png", "objects.yaml"})
	assert.Equal(t, uint64(1), seq)

	select {
	case p := <-got:
		assert.Equal(t, uint64(1), p.Seq)
		assert.Equal(t, []string{"img/tile.png", "objects.yaml"}, p.Paths)
	case <-time.After(2 * time.Second):
		t.Fatal("no reload packet received")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Listen did not return after cancel")
	}
	require.Eventually(t, func() bool { return srv.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestListenRetryReconnects(t *testing.T) {
	srv := NewServer()
	ts := httptest.NewServer(srv)
	defer ts.Close()
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan ReloadPacket, 4)
	done := make(chan struct{})
	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	go func() {
		ListenRetry(ctx, url, func(p ReloadPacket) { got <- p })
		close(done)
	}()
	require.Eventually(t, func() bool { return srv.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	// Dropping every client stands in for a server restart.
	srv.Close()
	require.Eventually(t, func() bool { return srv.Clients() == 1 }, 3*time.Second, 10*time.Millisecond)

	srv.Broadcast([]string{"sprites.yaml"})
	select {
	case p := <-got:
		assert.Equal(t, []string{"sprites.yaml"}, p.Paths)
	case <-time.After(2 * time.Second):
		t.Fatal("no reload packet after reconnect")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("ListenRetry did not return after cancel")
	}
}

func TestServerRunForwardsChanges(t *testing.T) {
	srv := NewServer()
	changes := make(chan Change, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	finished := make(chan struct{})
	go func() {
		srv.Run(ctx, changes)
		close(finished)
	}()

	changes <- Change{Paths: []string{"sprites.yaml"}}
	close(changes)
	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after changes closed")
	}

	// The next broadcast continues the sequence.
	assert.Equal(t, uint64(2), srv.Broadcast(nil))
}

func TestListenDialError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := Listen(ctx, "ws://127.0.0.1:1/reload", func(ReloadPacket) {})
	assert.Error(t, err)
}

func TestWatcherDebouncesChanges(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "img"), 0o755))

	w, err := NewWatcher(root, 50*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(root, "img", "tile.png"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "objects.yaml"), []byte("b"), 0o644))

	seen := make(map[string]bool)
	deadline := time.After(3 * time.Second)
	for !(seen["img/tile.png"] && seen["objects.yaml"]) {
		select {
		case ch := <-w.Changes():
			for _, p := range ch.Paths {
				seen[p] = true
			}
		case <-deadline:
			t.Fatalf("missing changes, got %v", seen)
		}
	}

	cancel()
	require.Eventually(t, func() bool {
		_, ok := <-w.Changes()
		return !ok
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcherPicksUpNewDirs(t *testing.T) {
	root := t.TempDir()
	w, err := NewWatcher(root, 50*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	dir := filepath.Join(root, "img")
	require.NoError(t, os.Mkdir(dir, 0o755))
	// Give the watcher time to register the new dir.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "grass.png"), []byte("g"), 0o644))

	deadline := time.After(3 * time.Second)
	for {
		select {
		case ch := <-w.Changes():
			for _, p := range ch.Paths {
				if p == "img/grass.png" {
					return
				}
			}
		case <-deadline:
			t.Fatal("no change for file in new dir")
		}
	}
}

func TestWatcherReportsDirMovedIn(t *testing.T) {
	root := t.TempDir()
	staging := filepath.Join(t.TempDir(), "units")
	require.NoError(t, os.MkdirAll(filepath.Join(staging, "imps"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(staging, "imp.png"), []byte("i"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(staging, "imps", "bomber.png"), []byte("b"), 0o644))

	w, err := NewWatcher(root, 50*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	require.NoError(t, os.Rename(staging, filepath.Join(root, "units")))

	seen := make(map[string]bool)
	deadline := time.After(3 * time.Second)
	for !(seen["units/imp.png"] && seen["units/imps/bomber.png"]) {
		select {
		case ch := <-w.Changes():
			for _, p := range ch.Paths {
				seen[p] = true
			}
		case <-deadline:
			t.Fatalf("moved-in files not reported, got %v", seen)
		}
	}
}

func TestNewWatcherMissingRoot(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope"), time.Millisecond)
	assert.Error(t, err)
}
