package settings

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"gopkg.in/yaml.v3"
)

// FileSource loads settings from a YAML key/value file.
//
// The file holds a flat string-to-string mapping:
//
//	quota_per_unit: "500000"
//	display_in_currency: "true"
//
// With watching enabled the source monitors the file with fsnotify and
// reloads on change, so each Get observes the latest saved values.
// Reload events are debounced to absorb editor write storms.
type FileSource struct {
	Path  string
	Watch bool

	mu      sync.RWMutex
	values  map[string]string
	watcher *fsnotify.Watcher
	logger  *slog.Logger
	stopCh  chan struct{}

	// debounceInterval is how long to wait after a write event before
	// reloading.
	debounceInterval time.Duration
}

// NewFileSource creates a file-backed settings source.
//
// The file is loaded immediately; a missing or malformed file is an
// error at construction time rather than a silent empty store. If watch
// is enabled, the parent directory of the file is watched so renames
// performed by atomic-save editors are still observed.
func NewFileSource(path string, watch bool) (*FileSource, error) {
	s := &FileSource{
		Path:             path,
		Watch:            watch,
		logger:           slog.Default().With("component", "settings.file"),
		stopCh:           make(chan struct{}),
		debounceInterval: 100 * time.Millisecond,
	}

	if err := s.Refresh(context.Background()); err != nil {
		return nil, err
	}

	if watch {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return nil, fmt.Errorf("failed to create file watcher: %w", err)
		}
		// Watch the directory, not the file: a watch on the file itself
		// dies when an atomic-save editor renames a temp file over it.
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			_ = watcher.Close() // Best effort close on error path
			return nil, fmt.Errorf("failed to watch settings directory: %w", err)
		}

		s.watcher = watcher
		go s.watchLoop()

		s.logger.Info("settings file source started with watching", "path", path)
	}

	return s, nil
}

// Get retrieves a value by key from the last loaded snapshot.
func (s *FileSource) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return v, nil
}

// List returns all keys in sorted order.
func (s *FileSource) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Name returns the source name.
func (s *FileSource) Name() string {
	return "file"
}

// Supports reports whether the key is present in the current snapshot.
func (s *FileSource) Supports(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[key]
	return ok
}

// Refresh reloads all values from the file.
func (s *FileSource) Refresh(ctx context.Context) error {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return fmt.Errorf("failed to read settings file %q: %w", s.Path, err)
	}

	values := make(map[string]string)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("failed to parse settings file %q: %w", s.Path, err)
	}

	s.mu.Lock()
	s.values = values
	s.mu.Unlock()

	return nil
}

// Close stops the file watcher if one is running.
func (s *FileSource) Close() error {
	close(s.stopCh)
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

// watchLoop processes fsnotify events until Close is called.
// Write, create, and rename events for the settings file schedule a
// debounced reload; events for other files in the directory and
// everything else are ignored.
func (s *FileSource) watchLoop() {
	var timer *time.Timer

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(s.Path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(s.debounceInterval, func() {
				if err := s.Refresh(context.Background()); err != nil {
					s.logger.Warn("settings reload failed", "path", s.Path, "error", err)
					return
				}
				s.logger.Debug("settings reloaded", "path", s.Path)
			})

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("settings watcher error", "error", err)

		case <-s.stopCh:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}
