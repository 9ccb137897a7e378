package assets

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrAlreadyLoaded is returned by Init when assets are already installed.
var ErrAlreadyLoaded = errors.New("assets already loaded")

var (
	current atomic.Pointer[Assets]
	// Serialises Init and Reload so two loads never race to install.
	installMu sync.Mutex
)

// Init loads the assets and installs them as the process-wide set.
func Init(ctx context.Context, l *Loader) error {
	installMu.Lock()
	defer installMu.Unlock()

	if current.Load() != nil {
		return ErrAlreadyLoaded
	}
	a, err := l.Load(ctx)
	if err != nil {
		return err
	}
	current.Store(a)
	return nil
}

// Reload loads a fresh set and replaces the installed one. On error the
// previous set stays installed.
func Reload(ctx context.Context, l *Loader) error {
	installMu.Lock()
	defer installMu.Unlock()

	a, err := l.Load(ctx)
	if err != nil {
		return err
	}
	current.Store(a)
	return nil
}

// Get returns the installed assets. It panics before Init.
func Get() *Assets {
	a := current.Load()
	if a == nil {
		panic("assets: Get called before Init")
	}
	return a
}

// Loaded reports whether Init has succeeded.
func Loaded() bool {
	return current.Load() != nil
}
