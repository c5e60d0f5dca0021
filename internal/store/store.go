// Package store persists uploaded resumes and their analysis history.
package store

import (
	"context"
	stderrors "errors"
	"fmt"
	"slices"
	"time"

	"resumescore/internal/config"
	"resumescore/internal/errors"
	"resumescore/internal/types"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a resume or analysis does not exist
	ErrNotFound = stderrors.New("not found")
	// ErrUnavailable is returned while the backing store is failing fast
	ErrUnavailable = stderrors.New("store unavailable")
)

// Store holds resumes and their analyses. The most recently saved analysis
// for a resume is the one GetAnalysis returns.
type Store interface {
	SaveResume(ctx context.Context, fileName, content string) (types.Resume, error)
	GetResume(ctx context.Context, id string) (types.Resume, error)
	// ListResumes returns resumes newest first. A limit of zero or less
	// returns all of them.
	ListResumes(ctx context.Context, limit int) ([]types.Resume, error)
	// UpdateResume replaces an existing resume, or returns ErrNotFound
	UpdateResume(ctx context.Context, resume types.Resume) error

	SaveAnalysis(ctx context.Context, result types.AnalysisResult) error
	GetAnalysis(ctx context.Context, resumeID string) (types.AnalysisResult, error)
	// ListAnalyses returns every saved analysis in save order
	ListAnalyses(ctx context.Context) ([]types.AnalysisResult, error)

	Ping(ctx context.Context) error
	Close() error
}

// NewResumeID returns a fresh resume identifier
func NewResumeID() string {
	return "resume_" + uuid.NewString()
}

// Clock supplies upload timestamps
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}

func newResume(now Clock, fileName, content string) types.Resume {
	return types.Resume{
		ID:         NewResumeID(),
		FileName:   fileName,
		UploadDate: now(),
		Content:    content,
		Analyzed:   false,
	}
}

// cloneAnalysis copies the slices so callers cannot alias stored state
func cloneAnalysis(r types.AnalysisResult) types.AnalysisResult {
	r.Skills = slices.Clone(r.Skills)
	r.Strengths = slices.Clone(r.Strengths)
	r.Weaknesses = slices.Clone(r.Weaknesses)
	r.Recommendations = slices.Clone(r.Recommendations)
	return r
}

// New builds the configured store, wrapped in a circuit breaker when enabled
func New(ctx context.Context, cfg config.StorageConfig, logger *errors.Logger) (Store, error) {
	var (
		base Store
		err  error
	)

	switch cfg.Driver {
	case "", "memory":
		base = NewMemoryStore()
	case "redis":
		base, err = NewRedisStore(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Driver)
	}

	if logger != nil {
		logger.Info("Resume store initialized",
			"driver", cfg.Driver,
			"circuit_breaker", cfg.CircuitBreaker.Enabled)
	}

	if !cfg.CircuitBreaker.Enabled {
		return base, nil
	}
	return NewBreakerStore(base, cfg.CircuitBreaker, logger), nil
}
