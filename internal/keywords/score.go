// Package keywords implements the keyword-match score shown alongside the
// AI output: how many significant terms from a job description also appear
// in the résumé. Pure computation, no side effects.
package keywords

import (
	"sort"
	"strings"
	"unicode"
)

// Terms shorter than this carry too little signal to count.
const minTermLen = 3

var stopwords = map[string]struct{}{
	"and": {}, "are": {}, "for": {}, "from": {}, "has": {}, "have": {},
	"the": {}, "their": {}, "them": {}, "they": {}, "this": {}, "that": {},
	"with": {}, "will": {}, "you": {}, "your": {}, "our": {}, "who": {},
	"what": {}, "when": {}, "where": {}, "which": {}, "while": {},
	"about": {}, "after": {}, "all": {}, "also": {}, "any": {}, "been": {},
	"but": {}, "can": {}, "into": {}, "its": {}, "more": {}, "most": {},
	"not": {}, "other": {}, "out": {}, "over": {}, "such": {}, "than": {},
	"then": {}, "there": {}, "these": {}, "through": {}, "under": {},
	"was": {}, "were": {}, "well": {}, "work": {}, "working": {},
	"years": {}, "year": {}, "including": {}, "experience": {},
	"required": {}, "preferred": {}, "ability": {}, "strong": {},
	"skills": {}, "team": {}, "role": {}, "job": {}, "candidate": {},
	"must": {}, "plus": {}, "etc": {},
}

type Match struct {
	Percentage   int      `json:"percentage"`
	MatchedTerms []string `json:"matched_terms"`
}

// Score compares the significant terms of a job description against a
// résumé and reports the overlap as a percentage plus the matched terms,
// sorted for stable output.
func Score(resumeText, jdText string) Match {
	jdTerms := significantTerms(jdText)
	if len(jdTerms) == 0 {
		return Match{Percentage: 0, MatchedTerms: []string{}}
	}

	resumeTerms := significantTerms(resumeText)

	matched := make([]string, 0, len(jdTerms))
	for term := range jdTerms {
		if _, ok := resumeTerms[term]; ok {
			matched = append(matched, term)
		}
	}
	sort.Strings(matched)

	return Match{
		Percentage:   len(matched) * 100 / len(jdTerms),
		MatchedTerms: matched,
	}
}

func significantTerms(text string) map[string]struct{} {
	terms := make(map[string]struct{})
	for _, tok := range tokenize(text) {
		if len(tok) < minTermLen {
			continue
		}
		if _, ok := stopwords[tok]; ok {
			continue
		}
		terms[tok] = struct{}{}
	}
	return terms
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})
}
