package store

import (
	"context"
	stderrors "errors"
	"fmt"

	"resumescore/internal/config"
	"resumescore/internal/errors"
	"resumescore/internal/types"

	"github.com/sony/gobreaker/v2"
)

// BreakerStore fails fast once the wrapped store keeps erroring. Lookups
// that end in ErrNotFound count as successes.
type BreakerStore struct {
	next Store
	cb   *gobreaker.CircuitBreaker[any]
}

// NewBreakerStore wraps next with a circuit breaker built from cfg
func NewBreakerStore(next Store, cfg config.CircuitBreakerConfig, logger *errors.Logger) *BreakerStore {
	settings := gobreaker.Settings{
		Name:        "store",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests &&
				failureRatio >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || stderrors.Is(err, ErrNotFound) ||
				stderrors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			if logger == nil {
				return
			}
			logger.Info("Circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
				"max_requests", cfg.MaxRequests,
				"failure_threshold", cfg.FailureThreshold)
		},
	}

	return &BreakerStore{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[any](settings),
	}
}

// execute runs fn through the breaker and restores its result type
func execute[T any](b *BreakerStore, fn func() (T, error)) (T, error) {
	out, err := b.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero T
		if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return zero, err
	}
	return out.(T), nil
}

func executeErr(b *BreakerStore, fn func() error) error {
	_, err := execute(b, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

func (b *BreakerStore) SaveResume(ctx context.Context, fileName, content string) (types.Resume, error) {
	return execute(b, func() (types.Resume, error) {
		return b.next.SaveResume(ctx, fileName, content)
	})
}

func (b *BreakerStore) GetResume(ctx context.Context, id string) (types.Resume, error) {
	return execute(b, func() (types.Resume, error) {
		return b.next.GetResume(ctx, id)
	})
}

func (b *BreakerStore) ListResumes(ctx context.Context, limit int) ([]types.Resume, error) {
	return execute(b, func() ([]types.Resume, error) {
		return b.next.ListResumes(ctx, limit)
	})
}

func (b *BreakerStore) UpdateResume(ctx context.Context, resume types.Resume) error {
	return executeErr(b, func() error {
		return b.next.UpdateResume(ctx, resume)
	})
}

func (b *BreakerStore) SaveAnalysis(ctx context.Context, result types.AnalysisResult) error {
	return executeErr(b, func() error {
		return b.next.SaveAnalysis(ctx, result)
	})
}

func (b *BreakerStore) GetAnalysis(ctx context.Context, resumeID string) (types.AnalysisResult, error) {
	return execute(b, func() (types.AnalysisResult, error) {
		return b.next.GetAnalysis(ctx, resumeID)
	})
}

func (b *BreakerStore) ListAnalyses(ctx context.Context) ([]types.AnalysisResult, error) {
	return execute(b, func() ([]types.AnalysisResult, error) {
		return b.next.ListAnalyses(ctx)
	})
}

// Ping bypasses the breaker so health checks see the real backend state
func (b *BreakerStore) Ping(ctx context.Context) error {
	return b.next.Ping(ctx)
}

func (b *BreakerStore) Close() error {
	return b.next.Close()
}

// GetStats returns circuit breaker statistics
func (b *BreakerStore) GetStats() map[string]any {
	counts := b.cb.Counts()
	return map[string]any{
		"name":                 b.cb.Name(),
		"state":                b.cb.State().String(),
		"requests":             counts.Requests,
		"total_failures":       counts.TotalFailures,
		"consecutive_failures": counts.ConsecutiveFailures,
		"enabled":              true,
	}
}

// IsHealthy reports whether the breaker is closed
func (b *BreakerStore) IsHealthy() bool {
	return b.cb.State() == gobreaker.StateClosed
}
