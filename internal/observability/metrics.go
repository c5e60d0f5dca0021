package observability

import (
	"context"
	"fmt"
	"time"

	"resumescore/internal/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Metrics holds the custom resumescore instruments. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	settings config.CustomMetricsConfig

	// Analysis metrics
	AnalysisDuration metric.Float64Histogram
	AnalysisCount    metric.Int64Counter
	AnalysisErrors   metric.Int64Counter
	Scores           metric.Int64Histogram
	DetectedSkills   metric.Int64Histogram
	ContentSize      metric.Int64Histogram

	// Intake
	Uploads metric.Int64Counter

	// Infrastructure
	StoreErrors    metric.Int64Counter
	CatalogReloads metric.Int64Counter
	CatalogSkills  metric.Int64Gauge
	RateLimitHits  metric.Int64Counter
}

// AnalysisOutcome is what a tracked analysis reports back
type AnalysisOutcome struct {
	Error       error
	Score       int
	SkillCount  int
	ContentSize int
}

// AllMetrics enables every metric family
func AllMetrics() config.CustomMetricsConfig {
	return config.CustomMetricsConfig{
		Analysis: config.AnalysisMetricsConfig{
			Enabled:           true,
			TrackDuration:     true,
			TrackScores:       true,
			TrackContentSizes: true,
		},
		Infrastructure: config.InfrastructureMetricsConfig{
			Enabled:             true,
			TrackRateLimits:     true,
			TrackStoreErrors:    true,
			TrackCatalogReloads: true,
		},
	}
}

// NewMetrics creates all custom instruments on meter
func NewMetrics(meter metric.Meter, settings config.CustomMetricsConfig) (*Metrics, error) {
	m := &Metrics{settings: settings}

	if err := m.createAnalysisMetrics(meter); err != nil {
		return nil, err
	}
	if err := m.createIntakeMetrics(meter); err != nil {
		return nil, err
	}
	if err := m.createInfrastructureMetrics(meter); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Metrics) createAnalysisMetrics(meter metric.Meter) error {
	var err error

	m.AnalysisDuration, err = meter.Float64Histogram(
		"resumescore_analysis_duration_seconds",
		metric.WithDescription("Time spent analyzing resumes"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create analysis duration metric: %w", err)
	}

	m.AnalysisCount, err = meter.Int64Counter(
		"resumescore_analyses_total",
		metric.WithDescription("Total number of resume analyses"),
	)
	if err != nil {
		return fmt.Errorf("failed to create analysis count metric: %w", err)
	}

	m.AnalysisErrors, err = meter.Int64Counter(
		"resumescore_analysis_errors_total",
		metric.WithDescription("Total number of failed resume analyses"),
	)
	if err != nil {
		return fmt.Errorf("failed to create analysis error metric: %w", err)
	}

	m.Scores, err = meter.Int64Histogram(
		"resumescore_score",
		metric.WithDescription("Distribution of resume scores"),
		metric.WithExplicitBucketBoundaries(10, 20, 30, 40, 50, 60, 70, 80, 90, 100),
	)
	if err != nil {
		return fmt.Errorf("failed to create score metric: %w", err)
	}

	m.DetectedSkills, err = meter.Int64Histogram(
		"resumescore_detected_skills",
		metric.WithDescription("Number of catalog skills detected per resume"),
		metric.WithExplicitBucketBoundaries(0, 1, 2, 4, 6, 8, 12, 16),
	)
	if err != nil {
		return fmt.Errorf("failed to create detected skills metric: %w", err)
	}

	m.ContentSize, err = meter.Int64Histogram(
		"resumescore_content_bytes",
		metric.WithDescription("Size of analyzed resume text"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return fmt.Errorf("failed to create content size metric: %w", err)
	}

	return nil
}

func (m *Metrics) createIntakeMetrics(meter metric.Meter) error {
	var err error

	m.Uploads, err = meter.Int64Counter(
		"resumescore_uploads_total",
		metric.WithDescription("Total number of resume uploads"),
	)
	if err != nil {
		return fmt.Errorf("failed to create uploads metric: %w", err)
	}

	return nil
}

func (m *Metrics) createInfrastructureMetrics(meter metric.Meter) error {
	var err error

	m.StoreErrors, err = meter.Int64Counter(
		"resumescore_store_errors_total",
		metric.WithDescription("Total number of failed store operations"),
	)
	if err != nil {
		return fmt.Errorf("failed to create store errors metric: %w", err)
	}

	m.CatalogReloads, err = meter.Int64Counter(
		"resumescore_catalog_reloads_total",
		metric.WithDescription("Total number of skill catalog reloads"),
	)
	if err != nil {
		return fmt.Errorf("failed to create catalog reload metric: %w", err)
	}

	m.CatalogSkills, err = meter.Int64Gauge(
		"resumescore_catalog_skills",
		metric.WithDescription("Number of skills in the active catalog"),
	)
	if err != nil {
		return fmt.Errorf("failed to create catalog size metric: %w", err)
	}

	m.RateLimitHits, err = meter.Int64Counter(
		"resumescore_rate_limit_hits_total",
		metric.WithDescription("Total number of rate limit hits"),
	)
	if err != nil {
		return fmt.Errorf("failed to create rate limit hits metric: %w", err)
	}

	return nil
}

// TrackAnalysis runs fn inside an "analysis.<operation>" span and records
// its duration, score and skill count
func (m *Metrics) TrackAnalysis(ctx context.Context, operation string, fn func(context.Context) *AnalysisOutcome) error {
	ctx, span := otel.Tracer("resumescore.analysis").Start(ctx, "analysis."+operation)
	defer span.End()

	start := time.Now()
	outcome := fn(ctx)
	duration := time.Since(start).Seconds()

	var err error
	if outcome != nil {
		err = outcome.Error
	}

	if m != nil && m.settings.Analysis.Enabled {
		m.recordAnalysis(ctx, operation, err, duration, outcome, span)
	}

	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("error", true))
	}

	return err
}

func (m *Metrics) recordAnalysis(ctx context.Context, operation string, err error, duration float64, outcome *AnalysisOutcome, span trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.Bool("success", err == nil),
	}
	opt := metric.WithAttributes(attrs...)

	m.AnalysisCount.Add(ctx, 1, opt)
	if m.settings.Analysis.TrackDuration {
		m.AnalysisDuration.Record(ctx, duration, opt)
	}
	if err != nil {
		m.AnalysisErrors.Add(ctx, 1, opt)
		span.SetAttributes(attrs...)
		return
	}

	if outcome != nil {
		if m.settings.Analysis.TrackScores {
			m.Scores.Record(ctx, int64(outcome.Score), opt)
			m.DetectedSkills.Record(ctx, int64(outcome.SkillCount), opt)
		}
		if m.settings.Analysis.TrackContentSizes {
			m.ContentSize.Record(ctx, int64(outcome.ContentSize), opt)
		}
		span.SetAttributes(
			attribute.Int("resume.score", outcome.Score),
			attribute.Int("resume.skills", outcome.SkillCount),
		)
	}
	span.SetAttributes(attrs...)
}

// RecordUpload counts an upload by format and outcome
func (m *Metrics) RecordUpload(ctx context.Context, format string, accepted bool) {
	if m == nil || !m.settings.Analysis.Enabled {
		return
	}
	m.Uploads.Add(ctx, 1, metric.WithAttributes(
		attribute.String("format", format),
		attribute.Bool("accepted", accepted),
	))
}

// RecordStoreError counts a failed store operation
func (m *Metrics) RecordStoreError(ctx context.Context, operation, errorType string) {
	if !m.infrastructure(func(c config.InfrastructureMetricsConfig) bool { return c.TrackStoreErrors }) {
		return
	}
	m.StoreErrors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("error_type", errorType),
	))
}

// RecordCatalogReload counts a catalog reload and, on success, the new size
func (m *Metrics) RecordCatalogReload(ctx context.Context, success bool, skills int) {
	if !m.infrastructure(func(c config.InfrastructureMetricsConfig) bool { return c.TrackCatalogReloads }) {
		return
	}
	m.CatalogReloads.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", success)))
	if success {
		m.CatalogSkills.Record(ctx, int64(skills))
	}
}

// RecordRateLimitHit counts a request rejected by the rate limiter
func (m *Metrics) RecordRateLimitHit(ctx context.Context, attrs ...attribute.KeyValue) {
	if !m.infrastructure(func(c config.InfrastructureMetricsConfig) bool { return c.TrackRateLimits }) {
		return
	}
	m.RateLimitHits.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func (m *Metrics) infrastructure(track func(config.InfrastructureMetricsConfig) bool) bool {
	if m == nil || !m.settings.Infrastructure.Enabled {
		return false
	}
	return track(m.settings.Infrastructure)
}
