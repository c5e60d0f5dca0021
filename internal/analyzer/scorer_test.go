package analyzer

import (
	"testing"

	"resumescore/internal/types"

	"github.com/stretchr/testify/assert"
)

func TestExperienceYears(t *testing.T) {
	sc := DefaultConfig().Score

	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"no mention", "java developer", 1},
		{"plain years", "3 years of experience", 3},
		{"plus sign", "4+ years", 4},
		{"yrs abbreviation", "2 yrs java", 2},
		{"singular", "1 year", 1},
		{"capped", "12 years of experience", 5},
		{"zero", "0 years", 0},
		{"first match wins", "2 years at acme, 9 years total", 2},
		{"no space", "7years", 5},
		{"uppercase", "6 YEARS", 5},
		{"overflow", "123456789012345678901234567890 years", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExperienceYears(tt.text, sc))
		})
	}
}

func TestScore(t *testing.T) {
	cfg := DefaultConfig()
	skill := func(name string, level types.SkillLevel, relevance int) types.DetectedSkill {
		return types.DetectedSkill{Name: name, Level: level, Relevance: relevance}
	}

	tests := []struct {
		name          string
		skills        []types.DetectedSkill
		text          string
		expected      int
		javaExpertise int
	}{
		{
			name:     "no skills",
			text:     "10 years of experience in computer science",
			expected: 20,
		},
		{
			name:          "base plus default experience",
			skills:        []types.DetectedSkill{skill("Git", types.LevelBeginner, 30)},
			text:          "git",
			expected:      15,
			javaExpertise: 30,
		},
		{
			name:          "zero years clamps to minimum",
			skills:        []types.DetectedSkill{skill("Git", types.LevelBeginner, 30)},
			text:          "0 years git",
			expected:      10,
			javaExpertise: 30,
		},
		{
			name:          "education bonus",
			skills:        []types.DetectedSkill{skill("SQL", types.LevelBeginner, 20), skill("Git", types.LevelBeginner, 25)},
			text:          "bsc information technology, sql, git",
			expected:      30,
			javaExpertise: 22,
		},
		{
			name:          "advanced java earns bonus",
			skills:        []types.DetectedSkill{skill("Java", types.LevelAdvanced, 40)},
			text:          "proficient in java",
			expected:      25,
			javaExpertise: 40,
		},
		{
			name:          "expert java does not earn bonus",
			skills:        []types.DetectedSkill{skill("Java", types.LevelExpert, 40)},
			text:          "expert in java",
			expected:      15,
			javaExpertise: 40,
		},
		{
			name:          "microservices earns bonus",
			skills:        []types.DetectedSkill{skill("Microservices", types.LevelBeginner, 20)},
			text:          "microservices",
			expected:      25,
			javaExpertise: 20,
		},
		{
			name: "clamped to maximum",
			skills: func() []types.DetectedSkill {
				var out []types.DetectedSkill
				for _, name := range DefaultCatalog().Skills()[:12] {
					out = append(out, skill(name, types.LevelBeginner, 100))
				}
				return out
			}(),
			text:          "8 years, software engineering",
			expected:      100,
			javaExpertise: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Score(tt.skills, tt.text, cfg)
			assert.Equal(t, tt.expected, result.Overall)
			assert.Equal(t, tt.javaExpertise, result.JavaExpertise)
		})
	}
}

func TestComposeAssessment(t *testing.T) {
	cfg := DefaultConfig().Assessment

	tests := []struct {
		score    int
		expected string
	}{
		{100, assessmentStrong},
		{80, assessmentStrong},
		{79, assessmentSolid},
		{60, assessmentSolid},
		{59, assessmentDeveloping},
		{40, assessmentDeveloping},
		{39, assessmentEntry},
		{10, assessmentEntry},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ComposeAssessment(tt.score, cfg), "score %d", tt.score)
	}
}
