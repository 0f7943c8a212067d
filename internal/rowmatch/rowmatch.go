// Package rowmatch locates existing serviceware rows by name so that user
// overrides can be applied to rows that autofill generated earlier.
package rowmatch

import (
	"strings"
	"unicode"
)

// MatchStatus represents the status of a match operation
type MatchStatus int

const (
	Matched MatchStatus = iota
	Ambiguous
	Unmatched
)

func (s MatchStatus) String() string {
	switch s {
	case Matched:
		return "Matched"
	case Ambiguous:
		return "Ambiguous"
	case Unmatched:
		return "Unmatched"
	default:
		return "Unknown"
	}
}

// Phrases that identify the China-tier count rows.
var (
	SaltPepperPhrases  = []string{"s&p", "salt pepper", "salt and pepper", "shaker"}
	BreadBasketPhrases = []string{"bread basket"}
)

// MatchResult contains the result of a matching operation
type MatchResult struct {
	Status     MatchStatus
	Index      int   // when Matched
	Candidates []int // when Ambiguous
}

// Matcher finds rows whose names contain every token of a phrase.
type Matcher struct {
	rowTokens [][]string
}

// New creates a Matcher over row names, pre-tokenized. Result indexes refer
// to positions in names.
func New(names []string) *Matcher {
	m := &Matcher{rowTokens: make([][]string, len(names))}
	for i, name := range names {
		m.rowTokens[i] = tokenize(normalize(name))
	}
	return m
}

// Match scores every row against phrases. A row's score is the token count
// of the longest phrase it fully contains. The single best row is Matched;
// ties are Ambiguous.
func (m *Matcher) Match(phrases ...string) MatchResult {
	tokenized := make([][]string, 0, len(phrases))
	for _, p := range phrases {
		if toks := tokenize(normalize(p)); len(toks) > 0 {
			tokenized = append(tokenized, toks)
		}
	}

	maxScore := 0
	var top []int
	for i, row := range m.rowTokens {
		score := 0
		for _, phrase := range tokenized {
			if containsAll(row, phrase) && len(phrase) > score {
				score = len(phrase)
			}
		}
		switch {
		case score == 0:
		case score > maxScore:
			maxScore = score
			top = []int{i}
		case score == maxScore:
			top = append(top, i)
		}
	}

	switch len(top) {
	case 0:
		return MatchResult{Status: Unmatched, Index: -1}
	case 1:
		return MatchResult{Status: Matched, Index: top[0]}
	}
	return MatchResult{Status: Ambiguous, Index: -1, Candidates: top}
}

func containsAll(row, phrase []string) bool {
	for _, want := range phrase {
		found := false
		for _, tok := range row {
			if sameWord(tok, want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// sameWord treats a trailing plural "s" as insignificant.
func sameWord(a, b string) bool {
	if a == b {
		return true
	}
	return singular(a) == singular(b)
}

func singular(s string) string {
	if len(s) > 2 && strings.HasSuffix(s, "s") {
		return s[:len(s)-1]
	}
	return s
}

// normalize converts a string to lowercase and replaces non-alphanumeric chars with spaces
func normalize(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(unicode.ToLower(r))
		} else {
			sb.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(sb.String()), " ")
}

// tokenize splits a string on whitespace
func tokenize(s string) []string {
	return strings.Fields(s)
}
