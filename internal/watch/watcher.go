// Package watch re-runs work when watched files change on disk
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// relevantOps are the operations that count as a change to a watched file.
// Editors that save through a temp file and rename show up as Create.
const relevantOps = fsnotify.Write | fsnotify.Create

// FileWatcher watches individual files and reports debounced batches of changes
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]struct{}
	dirs     map[string]struct{}
	debounce time.Duration
	onChange func(paths []string)
	logger   zerolog.Logger
}

// NewFileWatcher creates a new file watcher. onChange receives the sorted
// set of files that changed during one debounce window.
func NewFileWatcher(debounce time.Duration, onChange func(paths []string), logger zerolog.Logger) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		files:    make(map[string]struct{}),
		dirs:     make(map[string]struct{}),
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
	}, nil
}

// AddFile starts watching path. The parent directory is watched so that
// files replaced by rename are still picked up.
func (fw *FileWatcher) AddFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	dir := filepath.Dir(abs)
	if _, ok := fw.dirs[dir]; !ok {
		if err := fw.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
		fw.dirs[dir] = struct{}{}
	}

	fw.files[abs] = struct{}{}
	fw.logger.Debug().Str("path", abs).Msg("watching file")
	return nil
}

// Start begins watching for file changes and blocks until ctx is done
func (fw *FileWatcher) Start(ctx context.Context) error {
	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending = make(map[string]struct{})
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}
			if event.Op&relevantOps == 0 || !fw.shouldWatch(event.Name) {
				continue
			}

			pending[filepath.Clean(event.Name)] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(fw.debounce)
			} else {
				timer.Reset(fw.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}
			clear(pending)
			slices.Sort(changed)
			fw.onChange(changed)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			if err != nil {
				fw.logger.Warn().Err(err).Msg("watcher error")
			}
		}
	}
}

// shouldWatch reports whether path is one of the watched files
func (fw *FileWatcher) shouldWatch(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	_, ok := fw.files[abs]
	return ok
}

// Close stops the watcher
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
