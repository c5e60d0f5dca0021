package analyzer

import (
	"regexp"
	"strconv"
	"strings"

	"resumescore/internal/types"
)

var experiencePattern = regexp.MustCompile(`(?i)(\d+)\+?\s*(?:year|yr)s?(?:\s+of\s+experience)?`)

// ScoreResult is the Scorer output
type ScoreResult struct {
	Overall       int
	JavaExpertise int
}

// Score aggregates detected skills and text signals into the overall score
// and the mean skill relevance.
func Score(skills []types.DetectedSkill, text string, cfg Config) ScoreResult {
	return ScoreResult{
		Overall:       overallScore(skills, text, cfg),
		JavaExpertise: averageRelevance(skills),
	}
}

func averageRelevance(skills []types.DetectedSkill) int {
	if len(skills) == 0 {
		return 0
	}
	total := 0
	for _, s := range skills {
		total += s.Relevance
	}
	return min(total/len(skills), 100)
}

func overallScore(skills []types.DetectedSkill, text string, cfg Config) int {
	sc := cfg.Score
	if len(skills) == 0 {
		return sc.NoSkills
	}

	score := min(len(skills)*sc.PerSkill, sc.SkillCap)
	score += ExperienceYears(text, sc) * sc.PerExperienceYear

	if containsAny(text, sc.EducationKeywords) {
		score += sc.EducationBonus
	}
	if hasAdvancedSignal(skills, cfg) {
		score += sc.AdvancedBonus
	}

	return max(sc.Min, min(score, sc.Max))
}

// ExperienceYears returns the first "N years" figure in text, capped at
// ExperienceCap, or DefaultExperience when none is stated.
func ExperienceYears(text string, sc ScoreConfig) int {
	m := experiencePattern.FindStringSubmatch(text)
	if m == nil {
		return sc.DefaultExperience
	}
	years, err := strconv.Atoi(m[1])
	if err != nil {
		// only overflow reaches here; the digits are well beyond any cap
		return sc.ExperienceCap
	}
	return min(years, sc.ExperienceCap)
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(text, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

func hasAdvancedSignal(skills []types.DetectedSkill, cfg Config) bool {
	for _, s := range skills {
		if strings.EqualFold(s.Name, cfg.Feedback.PrimarySkill) && s.Level == types.LevelAdvanced {
			return true
		}
		for _, name := range cfg.Score.AdvancedSkills {
			if strings.EqualFold(s.Name, name) {
				return true
			}
		}
	}
	return false
}
