package extract

import (
	"regexp"
	"strings"
)

// Result is the outcome of scoring one pattern against a text.
type Result struct {
	Values     []string
	Confidence int
	MatchCount int
}

// First returns the first matched value, or "" when nothing matched.
func (r Result) First() string {
	if len(r.Values) == 0 {
		return ""
	}
	return r.Values[0]
}

// Score finds all matches of re in text and derives a heuristic confidence for
// the extraction. Base confidence is min(85 + 5*matches, 95). A single match
// gets a +10 boost when the field name appears within 50 characters on either
// side of it, re-capped at 95. When the pattern has a capture group the first
// group is taken as the value, otherwise the whole match.
func Score(text string, re *regexp.Regexp, fieldName string) Result {
	matches := re.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return Result{}
	}

	values := make([]string, 0, len(matches))
	for _, m := range matches {
		if re.NumSubexp() >= 1 {
			values = append(values, m[1])
		} else {
			values = append(values, m[0])
		}
	}

	confidence := 85 + 5*len(values)
	if confidence > 95 {
		confidence = 95
	}

	if len(values) == 1 && fieldNearMatch(text, values[0], fieldName) {
		confidence += 10
		if confidence > 95 {
			confidence = 95
		}
	}

	return Result{
		Values:     values,
		Confidence: confidence,
		MatchCount: len(values),
	}
}

// fieldNearMatch checks whether fieldName occurs in a window of 50 characters
// around the first occurrence of match in text, case-insensitively.
func fieldNearMatch(text, match, fieldName string) bool {
	if match == "" || fieldName == "" {
		return false
	}
	lower := strings.ToLower(text)
	idx := strings.Index(lower, strings.ToLower(match))
	if idx < 0 {
		return false
	}
	start := idx - 50
	if start < 0 {
		start = 0
	}
	end := idx + len(match) + 50
	if end > len(lower) {
		end = len(lower)
	}
	return strings.Contains(lower[start:end], strings.ToLower(fieldName))
}
