package server

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"resumescore/internal/errors"

	"github.com/fsnotify/fsnotify"
)

// defaultCatalogDebounce coalesces the burst of events editors emit on save
const defaultCatalogDebounce = 500 * time.Millisecond

// CatalogWatcher watches the skill catalog file and calls reload once the
// file has settled after a change
type CatalogWatcher struct {
	mu sync.RWMutex

	file string

	// last observed state, used to drop events that change nothing
	lastModTime time.Time
	lastSize    int64

	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	stopChan   chan struct{}
	reloadChan chan struct{}

	reload func()
	logger *errors.Logger

	running bool
}

// NewCatalogWatcher creates a watcher for file. A zero debounceDelay uses the
// default.
func NewCatalogWatcher(file string, debounceDelay time.Duration, reload func(), logger *errors.Logger) *CatalogWatcher {
	if debounceDelay <= 0 {
		debounceDelay = defaultCatalogDebounce
	}

	return &CatalogWatcher{
		file:          filepath.Clean(file),
		debounceDelay: debounceDelay,
		stopChan:      make(chan struct{}),
		reloadChan:    make(chan struct{}, 1),
		reload:        reload,
		logger:        logger,
	}
}

// Start begins watching the catalog file
func (cw *CatalogWatcher) Start() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.running {
		return fmt.Errorf("catalog watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	cw.fsWatcher = watcher

	cw.hasFileChanged()

	// Watch the directory so atomic writes (rename over the file) are seen
	dir := filepath.Dir(cw.file)
	if err := watcher.Add(dir); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			cw.logger.LogError(closeErr, "Failed to close file watcher during cleanup")
		}
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	cw.running = true
	go cw.watchLoop()

	cw.logger.Info("Catalog file watcher started",
		"file", cw.file,
		"debounce_delay", cw.debounceDelay)
	return nil
}

// Stop stops the watcher. Calling it on a stopped watcher does nothing.
func (cw *CatalogWatcher) Stop() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if !cw.running {
		return nil
	}

	close(cw.stopChan)
	if cw.debounceTimer != nil {
		cw.debounceTimer.Stop()
	}
	cw.running = false

	if err := cw.fsWatcher.Close(); err != nil {
		cw.logger.LogError(err, "Failed to close file system watcher")
		return err
	}

	cw.logger.Info("Catalog file watcher stopped")
	return nil
}

// IsRunning returns whether the watcher is currently running
func (cw *CatalogWatcher) IsRunning() bool {
	cw.mu.RLock()
	defer cw.mu.RUnlock()
	return cw.running
}

func (cw *CatalogWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-cw.fsWatcher.Events:
			if !ok {
				return
			}
			if cw.shouldProcessEvent(event) {
				cw.scheduleReload()
			}

		case err, ok := <-cw.fsWatcher.Errors:
			if !ok {
				return
			}
			cw.logger.LogError(err, "File watcher error")

		case <-cw.reloadChan:
			if cw.hasFileChanged() {
				cw.logger.Info("Catalog file changed, reloading", "file", cw.file)
				cw.reload()
			}

		case <-cw.stopChan:
			return
		}
	}
}

// shouldProcessEvent reports whether event touches the catalog file
func (cw *CatalogWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != cw.file {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// hasFileChanged compares the file against the last observed state and
// records the new one. A missing file is never reported as a change.
func (cw *CatalogWatcher) hasFileChanged() bool {
	stat, err := os.Stat(cw.file)
	if err != nil {
		return false
	}

	changed := !stat.ModTime().Equal(cw.lastModTime) || stat.Size() != cw.lastSize
	cw.lastModTime = stat.ModTime()
	cw.lastSize = stat.Size()
	return changed
}

// scheduleReload restarts the debounce timer
func (cw *CatalogWatcher) scheduleReload() {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.debounceTimer != nil {
		cw.debounceTimer.Stop()
	}

	cw.debounceTimer = time.AfterFunc(cw.debounceDelay, func() {
		select {
		case cw.reloadChan <- struct{}{}:
		default:
		}
	})
}
