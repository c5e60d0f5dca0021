package config

import (
	"fmt"

	"resumescore/internal/analyzer"
)

// ScoringConfig holds the engine settings that are exposed for tuning. Rule
// lists (framework, testing and core skills) stay with the engine defaults.
type ScoringConfig struct {
	CatalogFile       string `mapstructure:"catalogFile"`  // Optional YAML or line-per-skill catalog
	WatchCatalog      bool   `mapstructure:"watchCatalog"` // Reload the catalog file on change (serve only)
	Matcher           string `mapstructure:"matcher"`      // substring or word
	Seed              int64  `mapstructure:"seed"`         // Negative uses process randomness
	PrimarySkill      string `mapstructure:"primarySkill"`
	MaxReportedSkills int    `mapstructure:"maxReportedSkills"`

	Relevance  RelevanceSettings  `mapstructure:"relevance"`
	Score      ScoreSettings      `mapstructure:"score"`
	Assessment AssessmentSettings `mapstructure:"assessment"`
}

// RelevanceSettings tunes per-skill relevance
type RelevanceSettings struct {
	PerOccurrence int `mapstructure:"perOccurrence"`
	JitterWeight  int `mapstructure:"jitterWeight"`
}

// ScoreSettings tunes the overall score
type ScoreSettings struct {
	NoSkills          int `mapstructure:"noSkills"`
	PerSkill          int `mapstructure:"perSkill"`
	SkillCap          int `mapstructure:"skillCap"`
	PerExperienceYear int `mapstructure:"perExperienceYear"`
	ExperienceCap     int `mapstructure:"experienceCap"`
	EducationBonus    int `mapstructure:"educationBonus"`
	AdvancedBonus     int `mapstructure:"advancedBonus"`
	Min               int `mapstructure:"min"`
	Max               int `mapstructure:"max"`
}

// AssessmentSettings holds the lower bound of each assessment band
type AssessmentSettings struct {
	Strong     int `mapstructure:"strong"`
	Solid      int `mapstructure:"solid"`
	Developing int `mapstructure:"developing"`
}

// DefaultScoringConfig mirrors the engine defaults with a process-random seed
func DefaultScoringConfig() ScoringConfig {
	d := analyzer.DefaultConfig()
	return ScoringConfig{
		WatchCatalog:      true,
		Matcher:           "substring",
		Seed:              -1,
		PrimarySkill:      d.Feedback.PrimarySkill,
		MaxReportedSkills: d.MaxReportedSkills,
		Relevance: RelevanceSettings{
			PerOccurrence: d.Relevance.PerOccurrence,
			JitterWeight:  d.Relevance.JitterWeight,
		},
		Score: ScoreSettings{
			NoSkills:          d.Score.NoSkills,
			PerSkill:          d.Score.PerSkill,
			SkillCap:          d.Score.SkillCap,
			PerExperienceYear: d.Score.PerExperienceYear,
			ExperienceCap:     d.Score.ExperienceCap,
			EducationBonus:    d.Score.EducationBonus,
			AdvancedBonus:     d.Score.AdvancedBonus,
			Min:               d.Score.Min,
			Max:               d.Score.Max,
		},
		Assessment: AssessmentSettings{
			Strong:     d.Assessment.Strong,
			Solid:      d.Assessment.Solid,
			Developing: d.Assessment.Developing,
		},
	}
}

// AnalyzerConfig overlays the configured thresholds on the engine defaults
func (c *Config) AnalyzerConfig() analyzer.Config {
	s := c.Scoring
	cfg := analyzer.DefaultConfig()

	cfg.Relevance.PerOccurrence = s.Relevance.PerOccurrence
	cfg.Relevance.JitterWeight = s.Relevance.JitterWeight

	cfg.Score.NoSkills = s.Score.NoSkills
	cfg.Score.PerSkill = s.Score.PerSkill
	cfg.Score.SkillCap = s.Score.SkillCap
	cfg.Score.PerExperienceYear = s.Score.PerExperienceYear
	cfg.Score.ExperienceCap = s.Score.ExperienceCap
	cfg.Score.EducationBonus = s.Score.EducationBonus
	cfg.Score.AdvancedBonus = s.Score.AdvancedBonus
	cfg.Score.Min = s.Score.Min
	cfg.Score.Max = s.Score.Max

	cfg.Assessment = analyzer.AssessmentConfig{
		Strong:     s.Assessment.Strong,
		Solid:      s.Assessment.Solid,
		Developing: s.Assessment.Developing,
	}

	if s.PrimarySkill != "" {
		cfg.Feedback.PrimarySkill = s.PrimarySkill
	}
	cfg.MaxReportedSkills = s.MaxReportedSkills
	return cfg
}

// ValidateScoringConfig checks the scoring section before an engine is built
func (c *Config) ValidateScoringConfig() error {
	if _, ok := analyzer.MatcherByName(c.Scoring.Matcher); !ok {
		return fmt.Errorf("invalid matcher: %s (must be 'substring' or 'word')", c.Scoring.Matcher)
	}
	return c.AnalyzerConfig().Validate()
}
