package analyzer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Matcher locates a lower-cased skill name inside lower-cased resume text
type Matcher interface {
	// Contains reports whether skill occurs in text at least once.
	Contains(text, skill string) bool
	// Count returns the number of non-overlapping occurrences of skill in text.
	Count(text, skill string) int
}

// SubstringMatcher matches anywhere in the text, so "java" is found inside
// "javascript".
type SubstringMatcher struct{}

func (SubstringMatcher) Contains(text, skill string) bool {
	return skill != "" && strings.Contains(text, skill)
}

func (SubstringMatcher) Count(text, skill string) int {
	if skill == "" {
		return 0
	}
	return strings.Count(text, skill)
}

// WordBoundaryMatcher only accepts occurrences that are not glued to a letter
// or digit on either side.
type WordBoundaryMatcher struct{}

func (m WordBoundaryMatcher) Contains(text, skill string) bool {
	return m.Count(text, skill) > 0
}

func (WordBoundaryMatcher) Count(text, skill string) int {
	if skill == "" {
		return 0
	}

	count, pos := 0, 0
	for pos < len(text) {
		idx := strings.Index(text[pos:], skill)
		if idx < 0 {
			break
		}
		start := pos + idx
		end := start + len(skill)
		if boundaryBefore(text, start, skill) && boundaryAfter(text, end, skill) {
			count++
			pos = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		pos = start + size
	}
	return count
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func boundaryBefore(text string, start int, skill string) bool {
	first, _ := utf8.DecodeRuneInString(skill)
	if start == 0 || !isWordRune(first) {
		return true
	}
	prev, _ := utf8.DecodeLastRuneInString(text[:start])
	return !isWordRune(prev)
}

func boundaryAfter(text string, end int, skill string) bool {
	last, _ := utf8.DecodeLastRuneInString(skill)
	if end >= len(text) || !isWordRune(last) {
		return true
	}
	next, _ := utf8.DecodeRuneInString(text[end:])
	return !isWordRune(next)
}

// MatcherByName resolves a configured matcher name. Empty selects substring.
func MatcherByName(name string) (Matcher, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "substring":
		return SubstringMatcher{}, true
	case "word", "wordboundary":
		return WordBoundaryMatcher{}, true
	default:
		return nil, false
	}
}
