package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"resumescore/internal/config"
	"resumescore/internal/types"
)

// flakyStore fails every call while down is set
type flakyStore struct {
	*MemoryStore
	down  bool
	calls int
}

func (f *flakyStore) GetResume(ctx context.Context, id string) (types.Resume, error) {
	f.calls++
	if f.down {
		return types.Resume{}, fmt.Errorf("connection refused")
	}
	return f.MemoryStore.GetResume(ctx, id)
}

func testBreakerConfig() config.CircuitBreakerConfig {
	return config.CircuitBreakerConfig{
		Enabled:          true,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		MinRequests:      3,
		FailureThreshold: 0.6,
	}
}

func TestBreakerStoreTripsOnFailures(t *testing.T) {
	ctx := context.Background()
	flaky := &flakyStore{MemoryStore: NewMemoryStore(), down: true}
	b := NewBreakerStore(flaky, testBreakerConfig(), nil)

	for range 3 {
		_, err := b.GetResume(ctx, "resume_x")
		if err == nil || !strings.Contains(err.Error(), "connection refused") {
			t.Fatalf("Expected connection error, got %v", err)
		}
	}

	if b.IsHealthy() {
		t.Error("Expected breaker to report unhealthy after repeated failures")
	}
	if state := b.GetStats()["state"]; state != "open" {
		t.Errorf("Expected state 'open', got '%v'", state)
	}

	// Open breaker short-circuits without touching the store
	_, err := b.GetResume(ctx, "resume_x")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable, got %v", err)
	}
	if flaky.calls != 3 {
		t.Errorf("Expected 3 calls to reach the store, got %d", flaky.calls)
	}
}

func TestBreakerStoreIgnoresNotFound(t *testing.T) {
	ctx := context.Background()
	b := NewBreakerStore(NewMemoryStore(), testBreakerConfig(), nil)

	for range 5 {
		if _, err := b.GetAnalysis(ctx, "resume_missing"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Expected ErrNotFound, got %v", err)
		}
	}
	if !b.IsHealthy() {
		t.Error("Expected lookups of missing records not to trip the breaker")
	}
}

func TestBreakerStorePassesResultsThrough(t *testing.T) {
	ctx := context.Background()
	b := NewBreakerStore(NewMemoryStore(), testBreakerConfig(), nil)

	saved, err := b.SaveResume(ctx, "cv.txt", "java")
	if err != nil {
		t.Fatalf("SaveResume failed: %v", err)
	}

	list, err := b.ListResumes(ctx, 0)
	if err != nil {
		t.Fatalf("ListResumes failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != saved.ID {
		t.Errorf("Expected only %s, got %v", saved.ID, list)
	}

	saved.Analyzed = true
	if err := b.UpdateResume(ctx, saved); err != nil {
		t.Errorf("UpdateResume failed: %v", err)
	}
	if err := b.UpdateResume(ctx, types.Resume{ID: "resume_none"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown resume, got %v", err)
	}

	if err := b.SaveAnalysis(ctx, sampleAnalysis(saved.ID, 60)); err != nil {
		t.Fatalf("SaveAnalysis failed: %v", err)
	}
	analyses, err := b.ListAnalyses(ctx)
	if err != nil {
		t.Fatalf("ListAnalyses failed: %v", err)
	}
	if len(analyses) != 1 {
		t.Errorf("Expected 1 analysis, got %d", len(analyses))
	}
}

func TestNewSelectsDriver(t *testing.T) {
	ctx := context.Background()
	_, mr := newMiniredisStore(t)

	tests := []struct {
		name     string
		cfg      config.StorageConfig
		wantType string
		errorMsg string
	}{
		{
			name:     "memory",
			cfg:      config.StorageConfig{Driver: "memory"},
			wantType: "*store.MemoryStore",
		},
		{
			name:     "memory behind breaker",
			cfg:      config.StorageConfig{Driver: "memory", CircuitBreaker: testBreakerConfig()},
			wantType: "*store.BreakerStore",
		},
		{
			name:     "redis",
			cfg:      config.StorageConfig{Driver: "redis", Redis: config.RedisConfig{Addr: mr.Addr(), KeyPrefix: "p:"}},
			wantType: "*store.RedisStore",
		},
		{
			name:     "unknown driver",
			cfg:      config.StorageConfig{Driver: "cassandra"},
			errorMsg: "unknown storage driver",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(ctx, tt.cfg, nil)

			if tt.errorMsg != "" {
				if err == nil || !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("Expected error containing '%s', got %v", tt.errorMsg, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error but got: %v", err)
			}
			defer s.Close()

			if got := fmt.Sprintf("%T", s); got != tt.wantType {
				t.Errorf("Expected store type %s, got %s", tt.wantType, got)
			}
		})
	}
}
