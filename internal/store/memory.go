package store

import (
	"context"
	"slices"
	"sync"

	"resumescore/internal/types"
)

// MemoryStore keeps everything in process memory
type MemoryStore struct {
	mu       sync.RWMutex
	now      Clock
	resumes  map[string]types.Resume
	order    []string // upload order
	analyses []types.AnalysisResult
	latest   map[string]int // resume ID -> index into analyses
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(systemClock)
}

// NewMemoryStoreWithClock creates an empty store stamping uploads with now
func NewMemoryStoreWithClock(now Clock) *MemoryStore {
	return &MemoryStore{
		now:     now,
		resumes: make(map[string]types.Resume),
		latest:  make(map[string]int),
	}
}

func (m *MemoryStore) SaveResume(ctx context.Context, fileName, content string) (types.Resume, error) {
	if err := ctx.Err(); err != nil {
		return types.Resume{}, err
	}

	resume := newResume(m.now, fileName, content)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.resumes[resume.ID] = resume
	m.order = append(m.order, resume.ID)
	return resume, nil
}

func (m *MemoryStore) GetResume(ctx context.Context, id string) (types.Resume, error) {
	if err := ctx.Err(); err != nil {
		return types.Resume{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	resume, ok := m.resumes[id]
	if !ok {
		return types.Resume{}, ErrNotFound
	}
	return resume, nil
}

func (m *MemoryStore) ListResumes(ctx context.Context, limit int) ([]types.Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	n := len(m.order)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]types.Resume, 0, n)
	for i := len(m.order) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, m.resumes[m.order[i]])
	}
	return out, nil
}

func (m *MemoryStore) UpdateResume(ctx context.Context, resume types.Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.resumes[resume.ID]; !ok {
		return ErrNotFound
	}
	m.resumes[resume.ID] = resume
	return nil
}

func (m *MemoryStore) SaveAnalysis(ctx context.Context, result types.AnalysisResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.analyses = append(m.analyses, cloneAnalysis(result))
	m.latest[result.ResumeID] = len(m.analyses) - 1
	return nil
}

func (m *MemoryStore) GetAnalysis(ctx context.Context, resumeID string) (types.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return types.AnalysisResult{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	idx, ok := m.latest[resumeID]
	if !ok {
		return types.AnalysisResult{}, ErrNotFound
	}
	return cloneAnalysis(m.analyses[idx]), nil
}

func (m *MemoryStore) ListAnalyses(ctx context.Context) ([]types.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	out := slices.Clone(m.analyses)
	for i := range out {
		out[i] = cloneAnalysis(out[i])
	}
	if out == nil {
		out = []types.AnalysisResult{}
	}
	return out, nil
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *MemoryStore) Close() error {
	return nil
}
