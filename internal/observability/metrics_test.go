package observability

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"resumescore/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T, settings config.CustomMetricsConfig) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp.Meter("test"), settings)
	require.NoError(t, err)
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	found := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			found[m.Name] = m.Data
		}
	}
	return found
}

func counterTotal(t *testing.T, data metricdata.Aggregation) int64 {
	t.Helper()
	sum, ok := data.(metricdata.Sum[int64])
	require.True(t, ok, "expected int64 sum, got %T", data)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestTrackAnalysisRecordsOutcome(t *testing.T) {
	m, reader := newTestMetrics(t, AllMetrics())
	ctx := context.Background()

	err := m.TrackAnalysis(ctx, "text", func(context.Context) *AnalysisOutcome {
		return &AnalysisOutcome{Score: 72, SkillCount: 4, ContentSize: 1200}
	})
	require.NoError(t, err)

	err = m.TrackAnalysis(ctx, "stored", func(context.Context) *AnalysisOutcome {
		return &AnalysisOutcome{Error: fmt.Errorf("store down")}
	})
	assert.EqualError(t, err, "store down")

	found := collect(t, reader)
	assert.Equal(t, int64(2), counterTotal(t, found["resumescore_analyses_total"]))
	assert.Equal(t, int64(1), counterTotal(t, found["resumescore_analysis_errors_total"]))

	scores, ok := found["resumescore_score"].(metricdata.Histogram[int64])
	require.True(t, ok)
	require.Len(t, scores.DataPoints, 1)
	assert.Equal(t, int64(72), scores.DataPoints[0].Sum)

	assert.Contains(t, found, "resumescore_analysis_duration_seconds")
	assert.Contains(t, found, "resumescore_content_bytes")
}

func TestTrackAnalysisRespectsSettings(t *testing.T) {
	settings := AllMetrics()
	settings.Analysis.TrackScores = false
	settings.Analysis.TrackContentSizes = false
	m, reader := newTestMetrics(t, settings)

	require.NoError(t, m.TrackAnalysis(context.Background(), "text", func(context.Context) *AnalysisOutcome {
		return &AnalysisOutcome{Score: 50}
	}))

	found := collect(t, reader)
	assert.Contains(t, found, "resumescore_analyses_total")
	assert.NotContains(t, found, "resumescore_score")
	assert.NotContains(t, found, "resumescore_content_bytes")
}

func TestInfrastructureMetrics(t *testing.T) {
	m, reader := newTestMetrics(t, AllMetrics())
	ctx := context.Background()

	m.RecordUpload(ctx, ".txt", true)
	m.RecordUpload(ctx, ".pdf", false)
	m.RecordStoreError(ctx, "SaveResume", "storage")
	m.RecordCatalogReload(ctx, true, 21)
	m.RecordRateLimitHit(ctx, attribute.String("key_type", "ip"))

	found := collect(t, reader)
	assert.Equal(t, int64(2), counterTotal(t, found["resumescore_uploads_total"]))
	assert.Equal(t, int64(1), counterTotal(t, found["resumescore_store_errors_total"]))
	assert.Equal(t, int64(1), counterTotal(t, found["resumescore_catalog_reloads_total"]))
	assert.Equal(t, int64(1), counterTotal(t, found["resumescore_rate_limit_hits_total"]))

	gauge, ok := found["resumescore_catalog_skills"].(metricdata.Gauge[int64])
	require.True(t, ok)
	assert.Equal(t, int64(21), gauge.DataPoints[0].Value)
}

func TestInfrastructureMetricsDisabled(t *testing.T) {
	settings := AllMetrics()
	settings.Infrastructure.TrackRateLimits = false
	m, reader := newTestMetrics(t, settings)

	m.RecordRateLimitHit(context.Background())

	assert.NotContains(t, collect(t, reader), "resumescore_rate_limit_hits_total")
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	ctx := context.Background()

	called := false
	err := m.TrackAnalysis(ctx, "text", func(context.Context) *AnalysisOutcome {
		called = true
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, called)

	assert.NotPanics(t, func() {
		m.RecordUpload(ctx, ".txt", true)
		m.RecordStoreError(ctx, "GetResume", "storage")
		m.RecordCatalogReload(ctx, true, 3)
		m.RecordRateLimitHit(ctx)
	})
}

func TestDisabledManager(t *testing.T) {
	om, err := NewObservabilityManager(ObservabilityConfig{ServiceName: "resumescore"}, nil)
	require.NoError(t, err)

	assert.Nil(t, om.Metrics())
	_, span := om.Tracer("test").Start(context.Background(), "span")
	assert.False(t, span.SpanContext().IsValid())
	assert.NoError(t, om.Shutdown(context.Background()))

	handler := om.HTTPMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestEnabledManagerWithoutExporters(t *testing.T) {
	cfg := &config.Config{}
	cfg.Observability.Metrics.Enabled = true
	cfg.Observability.CustomMetrics = AllMetrics()

	om, err := NewObservabilityManager(ObservabilityConfig{
		ServiceName:    "resumescore",
		ServiceVersion: "test",
		Enabled:        true,
		SampleRate:     1.0,
	}, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = om.Shutdown(context.Background()) })

	require.NotNil(t, om.Metrics())
	_, span := om.Tracer("test").Start(context.Background(), "span")
	assert.True(t, span.SpanContext().IsValid())
	span.End()
}

func TestGetObservabilityConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Observability.Enabled = true
	cfg.Observability.ServiceName = "resumescore"
	cfg.Observability.Prometheus.Port = "9191"

	obs := GetObservabilityConfig(cfg, "1.2.3")
	assert.Equal(t, "1.2.3", obs.ServiceVersion)
	assert.Equal(t, "9191", obs.Prometheus.Port)

	cfg.Observability.ServiceVersion = "2.0.0"
	assert.Equal(t, "2.0.0", GetObservabilityConfig(cfg, "1.2.3").ServiceVersion)

	assert.Equal(t, "resumescore", GetObservabilityConfig(nil, "dev").ServiceName)
}
