package analyzer

import (
	"slices"
	"strings"

	"resumescore/internal/types"
)

// Feedback is the narrative part of an analysis
type Feedback struct {
	Strengths       []string
	Weaknesses      []string
	Recommendations []string
}

const (
	strengthPrimary    = "Core Java development expertise"
	strengthFrameworks = "Experience with enterprise Java frameworks"
	strengthTesting    = "Knowledge of testing methodologies"
	strengthFallback   = "Basic understanding of programming concepts"

	weaknessPrimary       = "Needs to strengthen core Java fundamentals"
	weaknessTestingAndCI  = "No demonstrated experience with testing and CI/CD"
	weaknessTesting       = "Limited experience with automated testing"
	weaknessCI            = "Limited experience with CI/CD pipelines"
	weaknessFallback      = "Resume could highlight project outcomes and impacts more clearly"
	recommendPrimary      = "Strengthen core Java fundamentals with personal projects"
	recommendContribution = "Highlight specific contributions and impacts in previous roles"
	recommendMetrics      = "Add quantifiable achievements and metrics for past projects"
)

// GenerateFeedback derives strengths, weaknesses and recommendations from the
// full detected list (not the truncated one).
func GenerateFeedback(skills []types.DetectedSkill, cfg FeedbackConfig) Feedback {
	names := make(map[string]bool, len(skills))
	for _, s := range skills {
		names[strings.ToLower(s.Name)] = true
	}

	return Feedback{
		Strengths:       strengths(skills, names, cfg),
		Weaknesses:      weaknesses(skills, names, cfg),
		Recommendations: recommendations(skills, names, cfg),
	}
}

func strengths(skills []types.DetectedSkill, names map[string]bool, cfg FeedbackConfig) []string {
	var out []string

	var strong []string
	for _, s := range skills {
		if s.Relevance > cfg.StrongRelevance {
			strong = append(strong, s.Name)
			if len(strong) == cfg.MaxStrongSkills {
				break
			}
		}
	}
	if len(strong) > 0 {
		out = append(out, "Strong proficiency in "+strings.Join(strong, ", "))
	}

	if primaryRelevance(skills, cfg.PrimarySkill, func(r int) bool { return r > cfg.PrimaryStrength }) {
		out = append(out, strengthPrimary)
	}
	if anyDetected(names, cfg.FrameworkSkills) {
		out = append(out, strengthFrameworks)
	}
	if anyDetected(names, cfg.TestingSkills) {
		out = append(out, strengthTesting)
	}

	if len(out) == 0 {
		out = append(out, strengthFallback)
	}
	return out
}

func weaknesses(skills []types.DetectedSkill, names map[string]bool, cfg FeedbackConfig) []string {
	var out []string

	missingCore := missing(names, cfg.CoreSkills)
	if len(missingCore) >= cfg.MinMissingCore {
		out = append(out, "Limited experience with "+strings.Join(missingCore, ", "))
	}

	if primaryRelevance(skills, cfg.PrimarySkill, func(r int) bool { return r < cfg.PrimaryWeakness }) {
		out = append(out, weaknessPrimary)
	}

	missingTests := !names[strings.ToLower(cfg.AutomatedTestSkill)]
	missingDelivery := !anyDetected(names, cfg.DeliverySkills)
	switch {
	case missingTests && missingDelivery:
		out = append(out, weaknessTestingAndCI)
	case missingTests:
		out = append(out, weaknessTesting)
	case missingDelivery:
		out = append(out, weaknessCI)
	}

	if len(out) == 0 {
		out = append(out, weaknessFallback)
	}
	return out
}

func recommendations(skills []types.DetectedSkill, names map[string]bool, cfg FeedbackConfig) []string {
	var out []string

	gaps := missing(names, cfg.PriorityRecommended)
	if len(gaps) > 0 {
		gaps = gaps[:min(len(gaps), cfg.MaxRecommendedGaps)]
		out = append(out, "Develop experience with key technologies: "+strings.Join(gaps, ", "))
	}

	if primaryRelevance(skills, cfg.PrimarySkill, func(r int) bool { return r < cfg.PrimaryRecommend }) {
		out = append(out, recommendPrimary)
	}

	return append(out, recommendContribution, recommendMetrics)
}

// primaryRelevance reports whether the primary skill was detected with a
// relevance satisfying cond. An undetected primary skill never qualifies.
func primaryRelevance(skills []types.DetectedSkill, primary string, cond func(int) bool) bool {
	return slices.ContainsFunc(skills, func(s types.DetectedSkill) bool {
		return strings.EqualFold(s.Name, primary) && cond(s.Relevance)
	})
}

// anyDetected and missing look candidates up in a set of lower-cased
// detected names, so catalog spelling does not matter.
func anyDetected(names map[string]bool, candidates []string) bool {
	for _, c := range candidates {
		if names[strings.ToLower(c)] {
			return true
		}
	}
	return false
}

func missing(names map[string]bool, candidates []string) []string {
	var out []string
	for _, c := range candidates {
		if !names[strings.ToLower(c)] {
			out = append(out, c)
		}
	}
	return out
}
