package analyzer

import (
	"fmt"
	"strings"
)

// Config holds every threshold and rule set the engine applies. DefaultConfig
// reproduces the original Java-role scoring rules.
type Config struct {
	Relevance  RelevanceConfig
	Score      ScoreConfig
	Feedback   FeedbackConfig
	Assessment AssessmentConfig

	// MaxReportedSkills truncates the skill list in the result. Scoring and
	// feedback always see every detected skill.
	MaxReportedSkills int
}

// RelevanceConfig controls relevance = min(occurrences*PerOccurrence + U*JitterWeight, Max)
type RelevanceConfig struct {
	PerOccurrence int
	JitterWeight  int
	Max           int
}

// ScoreConfig controls the overall score
type ScoreConfig struct {
	NoSkills          int
	PerSkill          int
	SkillCap          int
	PerExperienceYear int
	ExperienceCap     int
	DefaultExperience int
	EducationBonus    int
	EducationKeywords []string
	AdvancedBonus     int
	// AdvancedSkills earn the bonus whenever detected
	AdvancedSkills []string
	Min            int
	Max            int
}

// FeedbackConfig controls strengths, weaknesses and recommendations
type FeedbackConfig struct {
	// PrimarySkill is the skill whose relevance drives the fundamentals lines
	// and, at advanced level, the advanced bonus.
	PrimarySkill string

	StrongRelevance     int
	MaxStrongSkills     int
	PrimaryStrength     int
	PrimaryWeakness     int
	PrimaryRecommend    int
	MaxRecommendedGaps  int
	FrameworkSkills     []string
	TestingSkills       []string
	CoreSkills          []string
	MinMissingCore      int
	AutomatedTestSkill  string
	DeliverySkills      []string
	PriorityRecommended []string
}

// AssessmentConfig holds the lower bound of each assessment band
type AssessmentConfig struct {
	Strong     int
	Solid      int
	Developing int
}

// DefaultConfig returns the stock scoring rules
func DefaultConfig() Config {
	return Config{
		Relevance: RelevanceConfig{
			PerOccurrence: 20,
			JitterWeight:  30,
			Max:           100,
		},
		Score: ScoreConfig{
			NoSkills:          20,
			PerSkill:          5,
			SkillCap:          50,
			PerExperienceYear: 10,
			ExperienceCap:     5,
			DefaultExperience: 1,
			EducationBonus:    10,
			EducationKeywords: []string{"computer science", "software engineering", "information technology"},
			AdvancedBonus:     10,
			AdvancedSkills:    []string{"Spring Boot", "Microservices"},
			Min:               10,
			Max:               100,
		},
		Feedback: FeedbackConfig{
			PrimarySkill:        "Java",
			StrongRelevance:     70,
			MaxStrongSkills:     3,
			PrimaryStrength:     60,
			PrimaryWeakness:     50,
			PrimaryRecommend:    60,
			MaxRecommendedGaps:  3,
			FrameworkSkills:     []string{"Spring Boot", "Spring Framework", "Hibernate"},
			TestingSkills:       []string{"JUnit", "TDD", "Testing"},
			CoreSkills:          []string{"Spring Boot", "REST API", "Microservices"},
			MinMissingCore:      2,
			AutomatedTestSkill:  "JUnit",
			DeliverySkills:      []string{"CI/CD", "Jenkins", "Docker"},
			PriorityRecommended: []string{"Spring Boot", "Microservices", "REST API", "JUnit", "Docker", "CI/CD", "Cloud (AWS/Azure)"},
		},
		Assessment: AssessmentConfig{
			Strong:     80,
			Solid:      60,
			Developing: 40,
		},
		MaxReportedSkills: 10,
	}
}

// Validate rejects configurations that would break the result bounds
func (c Config) Validate() error {
	if c.Relevance.PerOccurrence < 0 || c.Relevance.JitterWeight < 0 {
		return fmt.Errorf("relevance weights must not be negative")
	}
	if c.Relevance.Max <= 0 || c.Relevance.Max > 100 {
		return fmt.Errorf("relevance max must be within 1..100, got %d", c.Relevance.Max)
	}
	if c.Score.Min < 0 || c.Score.Max > 100 || c.Score.Min > c.Score.Max {
		return fmt.Errorf("score bounds must satisfy 0 <= min <= max <= 100, got %d..%d", c.Score.Min, c.Score.Max)
	}
	if c.Score.NoSkills < 0 || c.Score.NoSkills > 100 {
		return fmt.Errorf("no-skills score must be within 0..100, got %d", c.Score.NoSkills)
	}
	if c.Score.ExperienceCap < 0 || c.Score.DefaultExperience < 0 {
		return fmt.Errorf("experience settings must not be negative")
	}
	if c.MaxReportedSkills <= 0 {
		return fmt.Errorf("max reported skills must be positive, got %d", c.MaxReportedSkills)
	}
	if c.Feedback.MaxStrongSkills <= 0 || c.Feedback.MaxRecommendedGaps <= 0 {
		return fmt.Errorf("feedback list limits must be positive")
	}
	if strings.TrimSpace(c.Feedback.PrimarySkill) == "" {
		return fmt.Errorf("primary skill is required")
	}
	a := c.Assessment
	if a.Developing > a.Solid || a.Solid > a.Strong {
		return fmt.Errorf("assessment bands must be ordered developing <= solid <= strong, got %d/%d/%d",
			a.Developing, a.Solid, a.Strong)
	}
	return nil
}
