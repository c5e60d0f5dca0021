package config

import (
	"time"

	"resumescore/internal/analyzer"

	"github.com/spf13/viper"
)

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	setAppDefaults(v)
	setServerDefaults(v)
	setScoringDefaults(v)
	setStorageDefaults(v)
	setVaultDefaults(v)
	setObservabilityDefaults(v)
}

func setAppDefaults(v *viper.Viper) {
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "json")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown"})
	v.SetDefault("app.maxFileSize", 1024*1024) // 1MB

	v.SetDefault("analysis.simulatedLatency", time.Duration(0))
	v.SetDefault("analysis.recentLimit", 5)
}

func setServerDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", 30*time.Second)
	v.SetDefault("server.writeTimeout", 30*time.Second)
	v.SetDefault("server.idleTimeout", 120*time.Second)

	v.SetDefault("server.tls.mode", "disabled") // disabled, server, mutual
	v.SetDefault("server.tls.certFile", "")
	v.SetDefault("server.tls.keyFile", "")
	v.SetDefault("server.tls.caFile", "")
	v.SetDefault("server.tls.minVersion", "1.2")
	v.SetDefault("server.tls.clientAuthPolicy", "require") // require, request, verify

	v.SetDefault("server.apiKeys", []string{})

	v.SetDefault("server.rateLimit.enabled", false)
	v.SetDefault("server.rateLimit.requestsPerMin", 60)
	v.SetDefault("server.rateLimit.burstCapacity", 10)
	v.SetDefault("server.rateLimit.byIP", true)
	v.SetDefault("server.rateLimit.byAPIKey", false)
	v.SetDefault("server.rateLimit.window", time.Minute)
}

// setScoringDefaults mirrors analyzer.DefaultConfig so every threshold can be
// overridden from a file or the environment
func setScoringDefaults(v *viper.Viper) {
	d := analyzer.DefaultConfig()

	v.SetDefault("scoring.catalogFile", "")
	v.SetDefault("scoring.watchCatalog", true)
	v.SetDefault("scoring.matcher", "substring")
	v.SetDefault("scoring.seed", int64(-1)) // negative means process-random
	v.SetDefault("scoring.primarySkill", d.Feedback.PrimarySkill)
	v.SetDefault("scoring.maxReportedSkills", d.MaxReportedSkills)

	v.SetDefault("scoring.relevance.perOccurrence", d.Relevance.PerOccurrence)
	v.SetDefault("scoring.relevance.jitterWeight", d.Relevance.JitterWeight)

	v.SetDefault("scoring.score.noSkills", d.Score.NoSkills)
	v.SetDefault("scoring.score.perSkill", d.Score.PerSkill)
	v.SetDefault("scoring.score.skillCap", d.Score.SkillCap)
	v.SetDefault("scoring.score.perExperienceYear", d.Score.PerExperienceYear)
	v.SetDefault("scoring.score.experienceCap", d.Score.ExperienceCap)
	v.SetDefault("scoring.score.educationBonus", d.Score.EducationBonus)
	v.SetDefault("scoring.score.advancedBonus", d.Score.AdvancedBonus)
	v.SetDefault("scoring.score.min", d.Score.Min)
	v.SetDefault("scoring.score.max", d.Score.Max)

	v.SetDefault("scoring.assessment.strong", d.Assessment.Strong)
	v.SetDefault("scoring.assessment.solid", d.Assessment.Solid)
	v.SetDefault("scoring.assessment.developing", d.Assessment.Developing)
}

func setStorageDefaults(v *viper.Viper) {
	v.SetDefault("storage.driver", "memory")

	v.SetDefault("storage.redis.addr", "localhost:6379")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.keyPrefix", "resumescore:")
	v.SetDefault("storage.redis.dialTimeout", 5*time.Second)
	v.SetDefault("storage.redis.readTimeout", 3*time.Second)
	v.SetDefault("storage.redis.writeTimeout", 3*time.Second)

	v.SetDefault("storage.circuitBreaker.enabled", true)
	v.SetDefault("storage.circuitBreaker.maxRequests", 3)
	v.SetDefault("storage.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("storage.circuitBreaker.timeout", 30*time.Second)
	v.SetDefault("storage.circuitBreaker.minRequests", 3)
	v.SetDefault("storage.circuitBreaker.failureThreshold", 0.6)
}

func setVaultDefaults(v *viper.Viper) {
	v.SetDefault("vault.enabled", false)
	v.SetDefault("vault.address", "")
	v.SetDefault("vault.token", "")
	v.SetDefault("vault.tokenFile", "")
	v.SetDefault("vault.namespace", "")
	v.SetDefault("vault.secrets.apiKeys", "")
	v.SetDefault("vault.secrets.redisPassword", "")
	v.SetDefault("vault.secrets.tlsCerts", "")
}

func setObservabilityDefaults(v *viper.Viper) {
	v.SetDefault("observability.enabled", true)
	v.SetDefault("observability.serviceName", "resumescore")
	v.SetDefault("observability.serviceVersion", "")  // Will use app version if empty
	v.SetDefault("observability.serviceInstance", "") // Will be auto-generated if empty
	v.SetDefault("observability.consoleOutput", false)
	v.SetDefault("observability.sampleRate", 1.0)

	v.SetDefault("observability.tracing.enabled", true)
	v.SetDefault("observability.tracing.sampleRate", 1.0)

	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.collectionInterval", 15*time.Second)

	v.SetDefault("observability.customMetrics.analysis.enabled", true)
	v.SetDefault("observability.customMetrics.analysis.trackDuration", true)
	v.SetDefault("observability.customMetrics.analysis.trackScores", true)
	v.SetDefault("observability.customMetrics.analysis.trackContentSizes", true)
	v.SetDefault("observability.customMetrics.infrastructure.enabled", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackRateLimits", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackStoreErrors", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackCatalogReloads", true)

	v.SetDefault("observability.console.enabled", false)
	v.SetDefault("observability.console.prettyPrint", true)

	v.SetDefault("observability.prometheus.enabled", true)
	v.SetDefault("observability.prometheus.endpoint", "/metrics")
	v.SetDefault("observability.prometheus.port", "9090")

	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.endpoint", "http://localhost:4318")
	v.SetDefault("observability.otlp.insecure", true)
	v.SetDefault("observability.otlp.headers", map[string]string{})
}
