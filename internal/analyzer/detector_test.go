package analyzer

import (
	"testing"

	"resumescore/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyLevel(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		skill    string
		expected types.SkillLevel
	}{
		{"advanced prefix", "advanced java developer", "java", types.LevelExpert},
		{"expert in", "expert in docker and k8s", "docker", types.LevelExpert},
		{"suffix expert", "a spring boot expert", "spring boot", types.LevelExpert},
		{"intermediate", "intermediate sql", "sql", types.LevelIntermediate},
		{"experienced", "experienced git user", "git", types.LevelIntermediate},
		{"proficient in", "proficient in maven", "maven", types.LevelAdvanced},
		{"strong", "strong junit background", "junit", types.LevelAdvanced},
		{"no cue", "used gradle daily", "gradle", types.LevelBeginner},
		{"expert beats proficient", "proficient in java, expert in java", "java", types.LevelExpert},
		{"intermediate beats strong", "strong jpa, experienced jpa", "jpa", types.LevelIntermediate},
		{"cue for another skill", "expert in java, used maven", "maven", types.LevelBeginner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifyLevel(tt.text, tt.skill, SubstringMatcher{}))
			assert.Equal(t, tt.expected, classifyLevel(tt.text, tt.skill, WordBoundaryMatcher{}))
		})
	}
}

func TestClassifyLevelFollowsMatcher(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		skill     string
		substring types.SkillLevel
		word      types.SkillLevel
	}{
		{"cue on a longer word", "java. expert in javascript", "java", types.LevelExpert, types.LevelBeginner},
		{"suffix glued to a word", "a javascript expert", "script", types.LevelExpert, types.LevelBeginner},
		{"strong on a prefix match", "strong gitlab user, git daily", "git", types.LevelAdvanced, types.LevelBeginner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.substring, classifyLevel(tt.text, tt.skill, SubstringMatcher{}))
			assert.Equal(t, tt.word, classifyLevel(tt.text, tt.skill, WordBoundaryMatcher{}))
		})
	}
}

func TestRelevance(t *testing.T) {
	cfg := DefaultConfig().Relevance

	tests := []struct {
		name        string
		occurrences int
		u           float64
		expected    int
	}{
		{"single occurrence no jitter", 1, 0, 20},
		{"single occurrence half jitter", 1, 0.5, 35},
		{"floor applied", 2, 0.999, 69},
		{"capped", 5, 0.5, 100},
		{"exactly cap", 5, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, relevance(tt.occurrences, tt.u, cfg))
		})
	}
}

func TestDetectSortsAndKeepsCatalogOrderOnTies(t *testing.T) {
	catalog := NewCatalog([]string{"Git", "Docker", "SQL", "AWS"})
	text := "git, docker, docker, sql, aws"

	skills := Detect(text, catalog, SubstringMatcher{}, FixedJitter(0), DefaultConfig().Relevance)

	require.Len(t, skills, 4)
	assert.Equal(t, []string{"Docker", "Git", "SQL", "AWS"}, skillNames(skills))
	assert.Equal(t, 40, skills[0].Relevance)
	assert.Equal(t, 20, skills[3].Relevance)
}

func TestDetectDuplicateCatalogEntryReportedOnce(t *testing.T) {
	skills := Detect("jdbc and jdbc", DefaultCatalog(), SubstringMatcher{}, FixedJitter(0), DefaultConfig().Relevance)

	require.Len(t, skills, 1)
	assert.Equal(t, "JDBC", skills[0].Name)
	assert.Equal(t, 40, skills[0].Relevance)
}

func TestDetectNoMatches(t *testing.T) {
	skills := Detect("python and go", DefaultCatalog(), SubstringMatcher{}, FixedJitter(0), DefaultConfig().Relevance)

	assert.NotNil(t, skills)
	assert.Empty(t, skills)
}
