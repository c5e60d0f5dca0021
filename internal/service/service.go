// Package service orchestrates intake, scoring and persistence of resumes.
package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"resumescore/internal/analyzer"
	"resumescore/internal/config"
	"resumescore/internal/errors"
	"resumescore/internal/intake"
	"resumescore/internal/observability"
	"resumescore/internal/store"
	"resumescore/internal/types"
	"resumescore/internal/utils"
)

// DefaultRecentLimit is used when no recent limit is configured
const DefaultRecentLimit = 5

// Service is safe for concurrent use. The engine can be swapped while
// requests are in flight; each analysis uses the engine it started with.
type Service struct {
	engine    atomic.Pointer[activeEngine]
	store     store.Store
	extractor *intake.Extractor
	metrics   *observability.Metrics
	logger    *errors.Logger

	latency     time.Duration
	recentLimit int
}

// BuiltInCatalog is the catalog source reported when no catalog file is set
const BuiltInCatalog = "built-in"

type activeEngine struct {
	engine *analyzer.Engine
	source string
}

// Option customizes a Service
type Option func(*Service)

// WithMetrics records analysis and store metrics
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLatency delays every analysis by d, honouring cancellation
func WithLatency(d time.Duration) Option {
	return func(s *Service) { s.latency = d }
}

// WithRecentLimit sets how many uploads RecentResumes returns
func WithRecentLimit(n int) Option {
	return func(s *Service) { s.recentLimit = n }
}

// WithCatalogSource names where the engine's catalog came from
func WithCatalogSource(source string) Option {
	return func(s *Service) {
		s.engine.Store(&activeEngine{engine: s.Engine(), source: source})
	}
}

// WithExtractor replaces the unlimited default extractor
func WithExtractor(e *intake.Extractor) Option {
	return func(s *Service) { s.extractor = e }
}

// New creates a service. A nil logger discards output.
func New(engine *analyzer.Engine, st store.Store, logger *errors.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = errors.NewLoggerTo(io.Discard, slog.LevelError)
	}
	s := &Service{
		store:       st,
		extractor:   intake.NewExtractor(0),
		logger:      logger,
		recentLimit: DefaultRecentLimit,
	}
	s.engine.Store(&activeEngine{engine: engine, source: BuiltInCatalog})
	for _, opt := range opts {
		opt(s)
	}
	if s.recentLimit <= 0 {
		s.recentLimit = DefaultRecentLimit
	}
	return s
}

// NewFromConfig builds the engine and intake limits from cfg
func NewFromConfig(cfg *config.Config, st store.Store, logger *errors.Logger, opts ...Option) (*Service, error) {
	engine, err := NewEngine(cfg)
	if err != nil {
		return nil, err
	}

	base := []Option{
		WithCatalogSource(catalogSource(cfg)),
		WithExtractor(intake.NewExtractor(cfg.App.MaxFileSize)),
		WithLatency(cfg.Analysis.SimulatedLatency),
		WithRecentLimit(cfg.Analysis.RecentLimit),
	}
	return New(engine, st, logger, append(base, opts...)...), nil
}

// NewEngine builds a scoring engine from the scoring section of cfg
func NewEngine(cfg *config.Config) (*analyzer.Engine, error) {
	sc := cfg.Scoring
	var opts []analyzer.Option

	if sc.CatalogFile != "" {
		catalog, err := analyzer.LoadCatalogFile(sc.CatalogFile)
		if err != nil {
			return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
				"Failed to load skill catalog", err).WithContext("file", sc.CatalogFile)
		}
		opts = append(opts, analyzer.WithCatalog(catalog))
	}

	if sc.Matcher != "" {
		matcher, ok := analyzer.MatcherByName(sc.Matcher)
		if !ok {
			return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
				fmt.Sprintf("Unknown skill matcher: %s", sc.Matcher), nil)
		}
		opts = append(opts, analyzer.WithMatcher(matcher))
	}

	if sc.Seed >= 0 {
		opts = append(opts, analyzer.WithJitter(analyzer.NewSeededJitter(uint64(sc.Seed))))
	}

	engine, err := analyzer.New(cfg.AnalyzerConfig(), opts...)
	if err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig, "Invalid scoring configuration", err)
	}
	return engine, nil
}

func catalogSource(cfg *config.Config) string {
	if cfg.Scoring.CatalogFile != "" {
		return cfg.Scoring.CatalogFile
	}
	return BuiltInCatalog
}

// SetMetrics attaches metrics created after the service. Call it before the
// service handles requests.
func (s *Service) SetMetrics(m *observability.Metrics) {
	s.metrics = m
}

// StoreHealth pings the store and, when it sits behind a circuit breaker,
// reports the breaker state. A store is healthy when the ping succeeds and
// the breaker is closed.
func (s *Service) StoreHealth(ctx context.Context) (bool, map[string]any) {
	status := map[string]any{"healthy": true}
	healthy := true

	if err := s.store.Ping(ctx); err != nil {
		healthy = false
		status["error"] = err.Error()
	}
	if bs, ok := s.store.(*store.BreakerStore); ok {
		status["circuit_breaker"] = bs.GetStats()
		healthy = healthy && bs.IsHealthy()
	}

	status["healthy"] = healthy
	return healthy, status
}

// Engine returns the active engine
func (s *Service) Engine() *analyzer.Engine {
	return s.engine.Load().engine
}

// SetEngine swaps the active engine, recording where its catalog came from
func (s *Service) SetEngine(e *analyzer.Engine, source string) {
	s.engine.Store(&activeEngine{engine: e, source: source})
}

// ReloadEngine rebuilds the engine from cfg and swaps it in. On failure the
// current engine stays active.
func (s *Service) ReloadEngine(ctx context.Context, cfg *config.Config) error {
	engine, err := NewEngine(cfg)
	if err != nil {
		s.metrics.RecordCatalogReload(ctx, false, 0)
		return err
	}
	s.SetEngine(engine, catalogSource(cfg))
	s.metrics.RecordCatalogReload(ctx, true, engine.Catalog().Len())
	s.logger.Info("Skill catalog reloaded", "skills", engine.Catalog().Len())
	return nil
}

// Catalog describes the skills the active engine scores against
func (s *Service) Catalog() types.CatalogListing {
	active := s.engine.Load()
	return types.CatalogListing{
		Source: active.source,
		Skills: active.engine.Catalog().Skills(),
	}
}

// Upload extracts the text of an uploaded file and stores it as a new,
// unanalyzed resume
func (s *Service) Upload(ctx context.Context, fileName, contentType string, data []byte) (types.Resume, error) {
	doc, err := s.extractor.Extract(fileName, contentType, data)
	s.metrics.RecordUpload(ctx, utils.GetFileExtension(fileName), err == nil)
	if err != nil {
		s.logger.LogError(err, "Rejected resume upload", "file", fileName)
		return types.Resume{}, err
	}

	resume, err := s.store.SaveResume(ctx, doc.FileName, doc.Content)
	if err != nil {
		return types.Resume{}, s.storeError(ctx, "SaveResume", err, "")
	}

	s.logger.Info("Resume uploaded", "resume_id", resume.ID, "file", resume.FileName, "size", doc.Size)
	return resume, nil
}

// AnalyzeText scores a resume without persisting anything
func (s *Service) AnalyzeText(ctx context.Context, resume types.Resume) (types.AnalysisResult, error) {
	return s.analyze(ctx, "text", resume)
}

// AnalyzeFile runs intake on a file and scores it without storing
// anything. An empty id gets a fresh resume id.
func (s *Service) AnalyzeFile(ctx context.Context, id, fileName string, data []byte) (types.AnalysisResult, error) {
	doc, err := s.extractor.Extract(fileName, "", data)
	if err != nil {
		return types.AnalysisResult{}, err
	}
	if id == "" {
		id = store.NewResumeID()
	}

	return s.AnalyzeText(ctx, types.Resume{
		ID:         id,
		FileName:   doc.FileName,
		UploadDate: time.Now().UTC(),
		Content:    doc.Content,
	})
}

// AnalyzeResume scores a stored resume, records the analysis and marks the
// resume analyzed
func (s *Service) AnalyzeResume(ctx context.Context, id string) (types.AnalysisResult, error) {
	resume, err := s.store.GetResume(ctx, id)
	if err != nil {
		return types.AnalysisResult{}, s.storeError(ctx, "GetResume", err, errors.ErrCodeResumeNotFound)
	}

	result, err := s.analyze(ctx, "stored", resume)
	if err != nil {
		return types.AnalysisResult{}, err
	}

	if err := s.store.SaveAnalysis(ctx, result); err != nil {
		return types.AnalysisResult{}, s.storeError(ctx, "SaveAnalysis", err, "")
	}

	if !resume.Analyzed {
		resume.Analyzed = true
		if err := s.store.UpdateResume(ctx, resume); err != nil {
			return types.AnalysisResult{}, s.storeError(ctx, "UpdateResume", err, errors.ErrCodeResumeNotFound)
		}
	}

	s.logger.Info("Resume analyzed", "resume_id", id, "score", result.Score, "skills", len(result.Skills))
	return result, nil
}

func (s *Service) analyze(ctx context.Context, operation string, resume types.Resume) (types.AnalysisResult, error) {
	engine := s.Engine()
	var result types.AnalysisResult

	err := s.metrics.TrackAnalysis(ctx, operation, func(ctx context.Context) *observability.AnalysisOutcome {
		if err := s.wait(ctx); err != nil {
			return &observability.AnalysisOutcome{Error: err}
		}
		var err error
		if result, err = runEngine(engine, resume); err != nil {
			return &observability.AnalysisOutcome{Error: err}
		}
		return &observability.AnalysisOutcome{
			Score:       result.Score,
			SkillCount:  len(result.Skills),
			ContentSize: len(resume.Content),
		}
	})
	if err != nil {
		return types.AnalysisResult{}, err
	}
	return result, nil
}

// runEngine turns a panic from an injected matcher or jitter source into an
// internal error instead of taking the process down.
func runEngine(engine *analyzer.Engine, resume types.Resume) (result types.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.NewInternalError(errors.ErrCodeAnalysisFailed, "Analysis failed",
				fmt.Errorf("engine panic: %v", r)).WithContext("resume_id", resume.ID)
		}
	}()
	return engine.Analyze(resume), nil
}

// wait applies the simulated analysis latency
func (s *Service) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// GetResume returns a stored resume
func (s *Service) GetResume(ctx context.Context, id string) (types.Resume, error) {
	resume, err := s.store.GetResume(ctx, id)
	if err != nil {
		return types.Resume{}, s.storeError(ctx, "GetResume", err, errors.ErrCodeResumeNotFound)
	}
	return resume, nil
}

// ListResumes returns resume summaries newest first. A limit of zero or
// less returns all of them.
func (s *Service) ListResumes(ctx context.Context, limit int) ([]types.ResumeSummary, error) {
	resumes, err := s.store.ListResumes(ctx, limit)
	if err != nil {
		return nil, s.storeError(ctx, "ListResumes", err, "")
	}

	summaries := make([]types.ResumeSummary, len(resumes))
	for i, r := range resumes {
		summaries[i] = r.Summary()
	}
	return summaries, nil
}

// RecentResumes returns the most recent uploads
func (s *Service) RecentResumes(ctx context.Context) ([]types.ResumeSummary, error) {
	return s.ListResumes(ctx, s.recentLimit)
}

// GetAnalysis returns the latest analysis of a resume
func (s *Service) GetAnalysis(ctx context.Context, resumeID string) (types.AnalysisResult, error) {
	result, err := s.store.GetAnalysis(ctx, resumeID)
	if err != nil {
		return types.AnalysisResult{}, s.storeError(ctx, "GetAnalysis", err, errors.ErrCodeAnalysisNotFound)
	}
	return result, nil
}

// ListAnalyses returns every recorded analysis in the order it was made
func (s *Service) ListAnalyses(ctx context.Context) ([]types.AnalysisResult, error) {
	results, err := s.store.ListAnalyses(ctx)
	if err != nil {
		return nil, s.storeError(ctx, "ListAnalyses", err, "")
	}
	return results, nil
}

// Stats summarizes stored resumes and analyses
type Stats struct {
	Resumes      int     `json:"resumes"`
	Analyzed     int     `json:"analyzed"`
	Analyses     int     `json:"analyses"`
	AverageScore float64 `json:"averageScore"`
	CatalogSize  int     `json:"catalogSize"`
}

// Stats counts stored resumes and analyses
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	resumes, err := s.store.ListResumes(ctx, 0)
	if err != nil {
		return Stats{}, s.storeError(ctx, "ListResumes", err, "")
	}
	analyses, err := s.store.ListAnalyses(ctx)
	if err != nil {
		return Stats{}, s.storeError(ctx, "ListAnalyses", err, "")
	}

	stats := Stats{
		Resumes:     len(resumes),
		Analyses:    len(analyses),
		CatalogSize: s.Engine().Catalog().Len(),
	}
	for _, r := range resumes {
		if r.Analyzed {
			stats.Analyzed++
		}
	}
	if len(analyses) > 0 {
		total := 0
		for _, a := range analyses {
			total += a.Score
		}
		stats.AverageScore = float64(total) / float64(len(analyses))
	}
	return stats, nil
}

// Ping checks the store
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// storeError maps a store failure onto an AppError. notFoundCode is used
// for store.ErrNotFound; context errors pass through unchanged.
func (s *Service) storeError(ctx context.Context, op string, err error, notFoundCode string) error {
	switch {
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return err
	case stderrors.Is(err, store.ErrNotFound) && notFoundCode != "":
		message := "Resume not found"
		if notFoundCode == errors.ErrCodeAnalysisNotFound {
			message = "Analysis not found"
		}
		return errors.NewNotFoundError(notFoundCode, message, err)
	case stderrors.Is(err, store.ErrUnavailable):
		s.metrics.RecordStoreError(ctx, op, "unavailable")
		appErr := errors.NewStorageError(errors.ErrCodeStoreUnavailable,
			"Storage is temporarily unavailable", err).WithContext("operation", op)
		s.logger.LogError(appErr, "Store unavailable")
		return appErr
	default:
		s.metrics.RecordStoreError(ctx, op, "failed")
		appErr := errors.NewStorageError(errors.ErrCodeStoreFailed,
			"Storage operation failed", err).WithContext("operation", op)
		s.logger.LogError(appErr, "Store operation failed")
		return appErr
	}
}
