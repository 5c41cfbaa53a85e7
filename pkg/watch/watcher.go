package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Config contains configuration for the file watcher.
type Config struct {
	// Path is the dataset file or a directory of dataset files.
	Path string

	// Debounce is the quiet period before the callback runs.
	// Default: 500ms
	Debounce time.Duration

	// Extensions are the watched file extensions when Path is a directory.
	// Default: [".csv"]
	Extensions []string

	// SkipHidden ignores dot files, including editor swap files.
	SkipHidden bool
}

// DefaultConfig returns the default watcher configuration for path.
func DefaultConfig(path string) *Config {
	return &Config{
		Path:       path,
		Debounce:   500 * time.Millisecond,
		Extensions: []string{".csv"},
		SkipHidden: true,
	}
}

// FileWatcher watches dataset files and triggers a callback on change.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	config   *Config
	debounce *Debouncer

	// target is the cleaned file path when watching a single file.
	target string

	mu       sync.Mutex
	running  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// NewFileWatcher creates a new file watcher. The path must exist.
func NewFileWatcher(config *Config, logger *slog.Logger) (*FileWatcher, error) {
	if config == nil || config.Path == "" {
		return nil, fmt.Errorf("watch path is required")
	}
	if config.Debounce <= 0 {
		config.Debounce = 500 * time.Millisecond
	}
	if len(config.Extensions) == 0 {
		config.Extensions = []string{".csv"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	info, err := os.Stat(config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat watch path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	fw := &FileWatcher{
		watcher:  watcher,
		logger:   logger.With("component", "watch"),
		config:   config,
		debounce: NewDebouncer(config.Debounce),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	if !info.IsDir() {
		fw.target = filepath.Clean(config.Path)
	}

	return fw, nil
}

// Watch blocks until ctx is cancelled or Stop is called, running onChange
// after each debounced burst of changes. Callback errors are logged and
// watching continues. The watcher cannot be restarted after Watch returns.
func (fw *FileWatcher) Watch(ctx context.Context, onChange func(path string) error) error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	fw.running = true
	fw.mu.Unlock()

	defer func() {
		fw.debounce.Stop()
		fw.watcher.Close()
		fw.mu.Lock()
		fw.running = false
		fw.mu.Unlock()
		close(fw.doneCh)
	}()

	dir := fw.config.Path
	if fw.target != "" {
		dir = filepath.Dir(fw.target)
	}
	if err := fw.addDirectory(dir); err != nil {
		return fmt.Errorf("failed to watch path: %w", err)
	}

	fw.logger.Info("file watcher started",
		"path", fw.config.Path,
		"debounce_ms", fw.config.Debounce.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			fw.logger.Info("file watcher stopped (context cancelled)")
			return nil

		case <-fw.stopCh:
			fw.logger.Info("file watcher stopped")
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !fw.shouldProcessEvent(event) {
				continue
			}

			fw.logger.Debug("file event detected", "path", event.Name, "op", event.Op.String())

			path := event.Name
			fw.debounce.Trigger(func() {
				fw.logger.Info("dataset changed", "path", path)
				if err := onChange(path); err != nil {
					fw.logger.Error("change handler failed", "path", path, "error", err)
				}
			})

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			fw.logger.Error("file watcher error", "error", err)
		}
	}
}

// Stop ends Watch and waits for it to return.
func (fw *FileWatcher) Stop() {
	fw.mu.Lock()
	running := fw.running
	fw.mu.Unlock()

	fw.stopOnce.Do(func() { close(fw.stopCh) })
	if running {
		<-fw.doneCh
	}
}

// addDirectory watches dir and, when watching a directory tree, its
// subdirectories.
func (fw *FileWatcher) addDirectory(dir string) error {
	if fw.target != "" {
		return fw.watcher.Add(dir)
	}

	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if fw.config.SkipHidden && path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fw.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", path, err)
		}
		return nil
	})
}

// shouldProcessEvent reports whether event concerns a watched file.
func (fw *FileWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}

	if fw.target != "" {
		return filepath.Clean(event.Name) == fw.target
	}

	base := filepath.Base(event.Name)
	if fw.config.SkipHidden && strings.HasPrefix(base, ".") {
		return false
	}

	ext := strings.ToLower(filepath.Ext(base))
	for _, valid := range fw.config.Extensions {
		if ext == strings.ToLower(valid) {
			return true
		}
	}
	return false
}
