package pathsrv

import (
	"os"
	"path/filepath"
	"time"
)

// Watcher polls a directory tree for file modifications and re-runs a
// callback for every file whose modification time has advanced since
// the last scan. It exists so a pipeline can be re-evaluated as the
// source documents it reads change on disk, without pulling in a
// platform-specific filesystem-notification dependency.
type Watcher struct {
	root     string
	match    func(path string) bool
	onChange func(path string)
	interval time.Duration
	modTimes map[string]time.Time
	stopCh   chan struct{}
}

// NewWatcher builds a Watcher rooted at root. match decides which
// files are of interest (e.g. by extension); onChange fires once per
// modified or newly-created file per scan.
func NewWatcher(root string, match func(path string) bool, onChange func(path string)) *Watcher {
	return &Watcher{
		root:     root,
		match:    match,
		onChange: onChange,
		interval: time.Second,
		modTimes: make(map[string]time.Time),
		stopCh:   make(chan struct{}),
	}
}

// Start begins polling in a background goroutine.
func (w *Watcher) Start() {
	go w.run()
}

// Stop ends the polling goroutine. Safe to call once.
func (w *Watcher) Stop() {
	close(w.stopCh)
}

func (w *Watcher) run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.scan()
	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

func (w *Watcher) scan() {
	seen := make(map[string]bool)

	filepath.Walk(w.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if filepath.Base(path) != "." && len(filepath.Base(path)) > 0 && filepath.Base(path)[0] == '.' && path != w.root {
				return filepath.SkipDir
			}
			return nil
		}
		if !w.match(path) {
			return nil
		}
		seen[path] = true

		last, known := w.modTimes[path]
		if !known || info.ModTime().After(last) {
			w.modTimes[path] = info.ModTime()
			w.onChange(path)
		}
		return nil
	})

	for path := range w.modTimes {
		if !seen[path] {
			delete(w.modTimes, path)
		}
	}
}
