package analyzer

import (
	"sort"
	"strings"

	"resumescore/internal/types"
)

// Detect scans lower-cased text for every catalog skill and returns the
// matches sorted by relevance, highest first. Ties keep catalog order.
func Detect(text string, catalog Catalog, matcher Matcher, jitter Jitter, cfg RelevanceConfig) []types.DetectedSkill {
	detected := make([]types.DetectedSkill, 0)
	for _, skill := range catalog.skills {
		needle := strings.ToLower(skill)
		if !matcher.Contains(text, needle) {
			continue
		}
		occurrences := matcher.Count(text, needle)
		detected = append(detected, types.DetectedSkill{
			Name:      skill,
			Relevance: relevance(occurrences, jitter.Float64(), cfg),
			Level:     classifyLevel(text, needle, matcher),
		})
	}

	sort.SliceStable(detected, func(i, j int) bool {
		return detected[i].Relevance > detected[j].Relevance
	})
	return detected
}

func relevance(occurrences int, u float64, cfg RelevanceConfig) int {
	raw := float64(occurrences*cfg.PerOccurrence) + u*float64(cfg.JitterWeight)
	score := int(raw) // raw is never negative, so truncation is floor
	return min(score, cfg.Max)
}

// classifyLevel infers proficiency from phrases adjacent to the skill, located
// with the same matcher that detected it. The first matching tier wins.
func classifyLevel(text, skill string, matcher Matcher) types.SkillLevel {
	has := func(phrase string) bool { return matcher.Contains(text, phrase) }
	switch {
	case has("advanced " + skill), has("expert in " + skill), has(skill + " expert"):
		return types.LevelExpert
	case has("intermediate " + skill), has("experienced " + skill):
		return types.LevelIntermediate
	case has("proficient in " + skill), has("strong " + skill):
		return types.LevelAdvanced
	default:
		return types.LevelBeginner
	}
}
