// Package watch reports edits to a crate's Cargo.toml and license files so
// the descriptor can be regenerated.
package watch

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Tarnadas/wasm-pack/internal/manifest"
)

// DefaultDebounce is the quiet period applied when none is configured.
const DefaultDebounce = 100 * time.Millisecond

// ChangeKind describes the type of file change detected.
type ChangeKind int

const (
	ManifestChanged ChangeKind = iota // Cargo.toml written or recreated
	ManifestRemoved                   // Cargo.toml deleted or renamed away
	LicenseChanged                    // a LICENSE* file appeared, changed or went away
)

// Change is one debounced file event in the crate directory.
type Change struct {
	Kind ChangeKind
	File string // absolute path
}

// Watcher monitors a crate directory using fsnotify.
type Watcher struct {
	Dir     string
	Changes <-chan Change // read-only external channel

	changes  chan Change
	quit     chan struct{}
	done     chan struct{}
	debounce time.Duration
	watcher  *fsnotify.Watcher
}

// New creates a watcher for crateDir. A debounce of zero uses DefaultDebounce.
func New(crateDir string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	ch := make(chan Change, 16)
	return &Watcher{
		Dir:      crateDir,
		Changes:  ch,
		changes:  ch,
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		debounce: debounce,
		watcher:  fw,
	}, nil
}

// Start begins watching the crate directory.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.Dir); err != nil {
		return err
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel.
func (w *Watcher) Stop() {
	close(w.quit)
	w.watcher.Close()
	<-w.done
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-w.quit:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isWatched(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending[event.Name] = time.Now()
			}

		case <-ticker.C:
			now := time.Now()
			for file, t := range pending {
				if now.Sub(t) < w.debounce {
					continue
				}
				delete(pending, file)
				if !w.emit(file) {
					return
				}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal.
		}
	}
}

// emit sends the change for file; it reports false if the watcher is stopping.
func (w *Watcher) emit(file string) bool {
	c := Change{Kind: classify(file), File: file}
	select {
	case w.changes <- c:
		return true
	case <-w.quit:
		return false
	}
}

func classify(file string) ChangeKind {
	if filepath.Base(file) != manifest.FileName {
		return LicenseChanged
	}
	if _, err := os.Stat(file); err != nil {
		return ManifestRemoved
	}
	return ManifestChanged
}

func isWatched(name string) bool {
	base := filepath.Base(name)
	return base == manifest.FileName || strings.HasPrefix(base, "LICENSE")
}
