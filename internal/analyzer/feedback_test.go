package analyzer

import (
	"testing"

	"resumescore/internal/types"

	"github.com/stretchr/testify/assert"
)

func detected(pairs ...any) []types.DetectedSkill {
	var out []types.DetectedSkill
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, types.DetectedSkill{
			Name:      pairs[i].(string),
			Relevance: pairs[i+1].(int),
			Level:     types.LevelBeginner,
		})
	}
	return out
}

func TestGenerateFeedbackStrengths(t *testing.T) {
	cfg := DefaultConfig().Feedback

	tests := []struct {
		name     string
		skills   []types.DetectedSkill
		expected []string
	}{
		{
			name:     "fallback",
			skills:   detected("Git", 30),
			expected: []string{strengthFallback},
		},
		{
			name:     "top three strong skills only",
			skills:   detected("Docker", 95, "AWS", 90, "SQL", 80, "Git", 75, "Agile", 20),
			expected: []string{"Strong proficiency in Docker, AWS, SQL"},
		},
		{
			name:     "seventy is not strong",
			skills:   detected("Docker", 70),
			expected: []string{strengthFallback},
		},
		{
			name:     "java above sixty",
			skills:   detected("Java", 61),
			expected: []string{strengthPrimary},
		},
		{
			name:     "everything",
			skills:   detected("Java", 85, "Hibernate", 30, "TDD", 25),
			expected: []string{"Strong proficiency in Java", strengthPrimary, strengthFrameworks, strengthTesting},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GenerateFeedback(tt.skills, cfg).Strengths)
		})
	}
}

func TestGenerateFeedbackWeaknesses(t *testing.T) {
	cfg := DefaultConfig().Feedback

	tests := []struct {
		name     string
		skills   []types.DetectedSkill
		expected []string
	}{
		{
			name:     "one missing core skill is tolerated",
			skills:   detected("Spring Boot", 30, "REST API", 30, "JUnit", 30, "Docker", 30),
			expected: []string{weaknessFallback},
		},
		{
			name:   "two missing core skills",
			skills: detected("Spring Boot", 30, "JUnit", 30, "Jenkins", 30),
			expected: []string{
				"Limited experience with REST API, Microservices",
			},
		},
		{
			name:   "weak java",
			skills: detected("Java", 49, "Spring Boot", 30, "Microservices", 30, "JUnit", 30, "CI/CD", 30),
			expected: []string{
				weaknessPrimary,
			},
		},
		{
			name:     "java at fifty is not weak",
			skills:   detected("Java", 50, "Spring Boot", 30, "Microservices", 30, "JUnit", 30, "CI/CD", 30),
			expected: []string{weaknessFallback},
		},
		{
			name:     "testing only missing",
			skills:   detected("Spring Boot", 30, "Microservices", 30, "Docker", 30),
			expected: []string{weaknessTesting},
		},
		{
			name:     "ci only missing",
			skills:   detected("Spring Boot", 30, "Microservices", 30, "JUnit", 30),
			expected: []string{weaknessCI},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GenerateFeedback(tt.skills, cfg).Weaknesses)
		})
	}
}

func TestGenerateFeedbackRecommendations(t *testing.T) {
	cfg := DefaultConfig().Feedback

	tests := []struct {
		name     string
		skills   []types.DetectedSkill
		expected []string
	}{
		{
			name:   "priority order",
			skills: detected("Spring Boot", 30, "REST API", 30),
			expected: []string{
				"Develop experience with key technologies: Microservices, JUnit, Docker",
				recommendContribution,
				recommendMetrics,
			},
		},
		{
			name:   "cloud label is never detected",
			skills: detected("Spring Boot", 30, "Microservices", 30, "REST API", 30, "JUnit", 30, "Docker", 30, "CI/CD", 30, "AWS", 30),
			expected: []string{
				"Develop experience with key technologies: Cloud (AWS/Azure)",
				recommendContribution,
				recommendMetrics,
			},
		},
		{
			name:   "weak java",
			skills: detected("Java", 59, "Spring Boot", 30, "Microservices", 30, "REST API", 30, "JUnit", 30, "Docker", 30),
			expected: []string{
				"Develop experience with key technologies: CI/CD, Cloud (AWS/Azure)",
				recommendPrimary,
				recommendContribution,
				recommendMetrics,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GenerateFeedback(tt.skills, cfg).Recommendations)
		})
	}
}
