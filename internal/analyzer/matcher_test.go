package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatcherCount(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		skill     string
		substring int
		word      int
	}{
		{"plain", "java and java", "java", 2, 2},
		{"inside word", "javascript", "java", 1, 0},
		{"punctuation", "(java), java.", "java", 2, 2},
		{"adjacent matches", "java java", "java", 2, 2},
		{"multi word", "spring boot, spring-boot", "spring boot", 1, 1},
		{"slash", "ci/cd pipelines", "ci/cd", 1, 1},
		{"digit suffix", "log4j2 and log4j", "log4j", 2, 1},
		{"non overlapping", "aaaa", "aa", 2, 0},
		{"empty skill", "anything", "", 0, 0},
		{"unicode neighbour", "éjava java", "java", 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.substring, SubstringMatcher{}.Count(tt.text, tt.skill))
			assert.Equal(t, tt.word, WordBoundaryMatcher{}.Count(tt.text, tt.skill))
			assert.Equal(t, tt.substring > 0, SubstringMatcher{}.Contains(tt.text, tt.skill))
			assert.Equal(t, tt.word > 0, WordBoundaryMatcher{}.Contains(tt.text, tt.skill))
		})
	}
}

func TestMatcherByName(t *testing.T) {
	m, ok := MatcherByName("")
	assert.True(t, ok)
	assert.IsType(t, SubstringMatcher{}, m)

	m, ok = MatcherByName("Word")
	assert.True(t, ok)
	assert.IsType(t, WordBoundaryMatcher{}, m)

	_, ok = MatcherByName("fuzzy")
	assert.False(t, ok)
}

func TestFixedJitterClamps(t *testing.T) {
	assert.Equal(t, 0.0, FixedJitter(-1).Float64())
	assert.Less(t, FixedJitter(1).Float64(), 1.0)
	assert.Equal(t, 0.25, FixedJitter(0.25).Float64())
}
