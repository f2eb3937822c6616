package extract

import "regexp"

// MatchPolicy describes how a rule set resolves multiple candidate patterns.
type MatchPolicy int

const (
	// FirstMatch tries patterns in order and keeps the first non-empty result.
	// Earlier patterns are more specific than later ones.
	FirstMatch MatchPolicy = iota
	// CollectAll unions the matches of every pattern in the set.
	CollectAll
)

// RuleSet is an ordered list of patterns for one field, with the policy that
// governs how their results combine.
type RuleSet struct {
	Field    string
	Policy   MatchPolicy
	Patterns []*regexp.Regexp
}

// ruleSet compiles an ordered pattern list, case-insensitive and multiline.
func ruleSet(field string, policy MatchPolicy, patterns ...string) RuleSet {
	rs := RuleSet{Field: field, Policy: policy}
	for _, p := range patterns {
		rs.Patterns = append(rs.Patterns, regexp.MustCompile(`(?im)`+p))
	}
	return rs
}

// firstMatch evaluates a FirstMatch rule set: patterns are tried in order and
// the first one producing a non-empty value wins; the rest are not tried. A
// single empty capture does not count as a hit.
func firstMatch(text string, rs RuleSet) (Result, bool) {
	for _, re := range rs.Patterns {
		res := Score(text, re, rs.Field)
		if res.MatchCount > 1 || res.First() != "" {
			return res, true
		}
	}
	return Result{}, false
}

// currencyRule is one entry of the fixed-priority currency detection list.
type currencyRule struct {
	code string
	re   *regexp.Regexp
}
