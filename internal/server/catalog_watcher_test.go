package server

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"resumescore/internal/config"
	"resumescore/internal/service"
	"resumescore/internal/store"

	"github.com/fsnotify/fsnotify"
)

func writeCatalog(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write catalog: %v", err)
	}
}

// waitFor polls cond until it holds or the timeout expires
func waitFor(timeout time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func startWatcher(t *testing.T, cw *CatalogWatcher) {
	t.Helper()
	if err := cw.Start(); err != nil {
		t.Fatalf("Failed to start catalog watcher: %v", err)
	}
	t.Cleanup(func() {
		if err := cw.Stop(); err != nil {
			t.Errorf("Failed to stop catalog watcher: %v", err)
		}
	})
}

func TestCatalogWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.txt")
	writeCatalog(t, path, "Java\n")

	var reloads atomic.Int32
	cw := NewCatalogWatcher(path, 20*time.Millisecond, func() { reloads.Add(1) }, testLogger())
	startWatcher(t, cw)

	if !cw.IsRunning() {
		t.Error("Expected watcher to be running after Start")
	}

	writeCatalog(t, path, "Java\nGo\n")
	writeCatalog(t, path, "Java\nGo\nRust\n")

	if !waitFor(2*time.Second, func() bool { return reloads.Load() >= 1 }) {
		t.Fatal("Expected a reload after the catalog changed")
	}
	time.Sleep(100 * time.Millisecond)

	// Writes within the debounce window coalesce into one reload
	if got := reloads.Load(); got != 1 {
		t.Errorf("Expected 1 reload, got %d", got)
	}
}

func TestCatalogWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skills.txt")
	writeCatalog(t, path, "Java\n")

	var reloads atomic.Int32
	cw := NewCatalogWatcher(path, 10*time.Millisecond, func() { reloads.Add(1) }, testLogger())
	startWatcher(t, cw)

	writeCatalog(t, filepath.Join(dir, "notes.txt"), "unrelated")
	time.Sleep(150 * time.Millisecond)

	if got := reloads.Load(); got != 0 {
		t.Errorf("Expected no reloads for unrelated files, got %d", got)
	}
}

func TestCatalogWatcherLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.txt")
	writeCatalog(t, path, "Java\n")

	cw := NewCatalogWatcher(path, 0, func() {}, testLogger())
	if cw.debounceDelay != defaultCatalogDebounce {
		t.Errorf("Expected default debounce %v, got %v", defaultCatalogDebounce, cw.debounceDelay)
	}
	if err := cw.Stop(); err != nil {
		t.Errorf("Expected stopping an idle watcher to be a no-op, got: %v", err)
	}

	if err := cw.Start(); err != nil {
		t.Fatalf("Failed to start catalog watcher: %v", err)
	}
	if err := cw.Start(); err == nil || !strings.Contains(err.Error(), "already running") {
		t.Errorf("Expected 'already running' error, got %v", err)
	}
	if err := cw.Stop(); err != nil {
		t.Fatalf("Failed to stop catalog watcher: %v", err)
	}
	if cw.IsRunning() {
		t.Error("Expected watcher to be stopped")
	}

	missing := NewCatalogWatcher(filepath.Join(t.TempDir(), "gone", "skills.txt"), 0, func() {}, testLogger())
	if err := missing.Start(); err == nil || !strings.Contains(err.Error(), "failed to watch directory") {
		t.Errorf("Expected 'failed to watch directory' error, got %v", err)
	}
}

func TestCatalogWatcherShouldProcessEvent(t *testing.T) {
	cw := NewCatalogWatcher("/etc/resumescore/skills.yaml", 0, func() {}, testLogger())

	tests := []struct {
		event    fsnotify.Event
		expected bool
	}{
		{fsnotify.Event{Name: "/etc/resumescore/skills.yaml", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/etc/resumescore/skills.yaml", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "/etc/resumescore/skills.yaml", Op: fsnotify.Rename}, true},
		{fsnotify.Event{Name: "/etc/resumescore/skills.yaml", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/etc/resumescore/other.yaml", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		if got := cw.shouldProcessEvent(tt.event); got != tt.expected {
			t.Errorf("Expected shouldProcessEvent(%s) = %v, got %v", tt.event, tt.expected, got)
		}
	}
}

func TestServerReloadsCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.yaml")
	writeCatalog(t, path, "- Java\n- Go\n")

	appCfg := &config.Config{Scoring: config.DefaultScoringConfig()}
	appCfg.Scoring.CatalogFile = path
	appCfg.Scoring.WatchCatalog = true

	svc, err := service.NewFromConfig(appCfg, store.NewMemoryStore(), testLogger())
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}
	if got := svc.Catalog().Skills; !slices.Equal(got, []string{"Java", "Go"}) {
		t.Fatalf("Expected initial catalog [Java Go], got %v", got)
	}

	s := NewServer(appCfg, ServerConfig{}, svc, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.startCatalogWatcher(ctx); err != nil {
		t.Fatalf("Failed to start catalog watcher: %v", err)
	}
	if s.CatalogWatcher == nil {
		t.Fatal("Expected catalog watcher to be configured")
	}
	defer s.cleanup()

	writeCatalog(t, path, "- Java\n- Go\n- Kubernetes\n")

	reloaded := waitFor(3*time.Second, func() bool {
		return slices.Contains(svc.Catalog().Skills, "Kubernetes")
	})
	if !reloaded {
		t.Fatalf("Expected catalog to pick up Kubernetes, got %v", svc.Catalog().Skills)
	}
	if got := svc.Catalog().Source; got != path {
		t.Errorf("Expected catalog source '%s', got '%s'", path, got)
	}
}

func TestStartCatalogWatcherDisabled(t *testing.T) {
	appCfg := &config.Config{Scoring: config.DefaultScoringConfig()}
	s := NewServer(appCfg, ServerConfig{}, newTestService(t, store.NewMemoryStore()), testLogger())

	if err := s.startCatalogWatcher(context.Background()); err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}
	if s.CatalogWatcher != nil {
		t.Error("Expected no catalog watcher when watching is disabled")
	}
}
