package devreload

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Change is a debounced batch of modified files.
type Change struct {
	Paths []string
}

// Watcher watches an assets dir tree and reports batches of changed files.
type Watcher struct {
	root     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	changes  chan Change
}

// NewWatcher watches root and every directory below it. Bursts of events
// closer together than debounce are merged into one Change.
func NewWatcher(root string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		root:     root,
		debounce: debounce,
		watcher:  fw,
		changes:  make(chan Change, 1),
	}
	if err := w.addTree(root, nil); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

// addTree watches dir and every directory below it. Regular files found on
// the way are recorded in pending when it is not nil, so a directory moved
// into the tree reports its contents.
func (w *Watcher) addTree(dir string, pending map[string]struct{}) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			if pending != nil && d.Type().IsRegular() {
				w.record(pending, path)
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != dir {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

func (w *Watcher) record(pending map[string]struct{}, path string) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return
	}
	pending[filepath.ToSlash(rel)] = struct{}{}
}

// Changes is closed when Run returns.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Run processes file events until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.changes)
	defer w.watcher.Close()

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ev.Name, pending); err != nil {
						log.Warn().Err(err).Str("dir", ev.Name).Msg("watch: failed to add dir")
					}
					timer.Reset(w.debounce)
					continue
				}
			}
			w.record(pending, ev.Name)
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watch: error")

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			ch := Change{Paths: make([]string, 0, len(pending))}
			for p := range pending {
				ch.Paths = append(ch.Paths, p)
			}
			sort.Strings(ch.Paths)
			pending = make(map[string]struct{})

			select {
			case w.changes <- ch:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
