package analyzer

import (
	"fmt"
	"strings"

	"resumescore/internal/types"
)

// Engine scores resume text against a skill catalog. It holds no mutable
// state of its own and is safe for concurrent use when its Jitter is.
type Engine struct {
	cfg     Config
	catalog Catalog
	matcher Matcher
	jitter  Jitter
}

// Option customizes an Engine
type Option func(*Engine)

// WithCatalog replaces the default catalog
func WithCatalog(c Catalog) Option {
	return func(e *Engine) { e.catalog = c }
}

// WithMatcher replaces the substring matcher
func WithMatcher(m Matcher) Option {
	return func(e *Engine) { e.matcher = m }
}

// WithJitter replaces the process-random jitter source
func WithJitter(j Jitter) Option {
	return func(e *Engine) { e.jitter = j }
}

// New builds an engine from cfg. Unset collaborators fall back to the
// default catalog, substring matching and process randomness.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring configuration: %w", err)
	}

	e := &Engine{
		cfg:     cfg,
		catalog: DefaultCatalog(),
		matcher: SubstringMatcher{},
		jitter:  RandomJitter(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.catalog.Len() == 0 {
		return nil, fmt.Errorf("skill catalog is empty")
	}
	return e, nil
}

// Catalog returns the catalog the engine scores against
func (e *Engine) Catalog() Catalog {
	return e.catalog
}

// Analyze produces the full analysis record for a resume. It never fails and
// has no side effects; persisting the result is the caller's job.
func (e *Engine) Analyze(resume types.Resume) types.AnalysisResult {
	text := strings.ToLower(resume.Content)

	skills := Detect(text, e.catalog, e.matcher, e.jitter, e.cfg.Relevance)
	score := Score(skills, text, e.cfg)
	feedback := GenerateFeedback(skills, e.cfg.Feedback)

	reported := make([]types.DetectedSkill, min(len(skills), e.cfg.MaxReportedSkills))
	copy(reported, skills)

	return types.AnalysisResult{
		ResumeID:          resume.ID,
		Score:             score.Overall,
		Skills:            reported,
		Strengths:         feedback.Strengths,
		Weaknesses:        feedback.Weaknesses,
		Recommendations:   feedback.Recommendations,
		OverallAssessment: ComposeAssessment(score.Overall, e.cfg.Assessment),
		JavaExpertise:     score.JavaExpertise,
	}
}
