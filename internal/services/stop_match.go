package services

import "strings"

// StopMatcher decides whether two free-text boarding-stop names denote the
// same physical location. Stop names are entered inconsistently across
// routes ("Main Stop" vs "Main", "Bus Stand" vs "Bypass"), so exact
// matching alone would make almost no transfer feasible.
//
// Rules, in order:
//  1. case-insensitive equality after whitespace normalization
//  2. both names contain a fragment of the same configured alias group
//
// The groups come from configuration (config.Optimizer.StopAliasGroups),
// so synonym coverage is extended without code changes.
type StopMatcher struct {
	groups [][]string
}

func NewStopMatcher(groups [][]string) *StopMatcher {
	normalized := make([][]string, 0, len(groups))
	for _, g := range groups {
		frags := make([]string, 0, len(g))
		for _, f := range g {
			f = normalizeStopName(f)
			if f != "" {
				frags = append(frags, f)
			}
		}
		if len(frags) > 0 {
			normalized = append(normalized, frags)
		}
	}
	return &StopMatcher{groups: normalized}
}

// SameStop reports whether two stop names are considered equivalent.
func (m *StopMatcher) SameStop(a, b string) bool {
	na := normalizeStopName(a)
	nb := normalizeStopName(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}

	for _, group := range m.groups {
		if containsAnyFragment(na, group) && containsAnyFragment(nb, group) {
			return true
		}
	}
	return false
}

// Matches reports whether any of a candidate route's stops is equivalent
// to the passenger's boarding stop.
func (m *StopMatcher) Matches(passengerStop string, candidateStops []string) bool {
	for _, s := range candidateStops {
		if m.SameStop(passengerStop, s) {
			return true
		}
	}
	return false
}

func containsAnyFragment(name string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(name, f) {
			return true
		}
	}
	return false
}

// normalizeStopName lowercases, trims, and collapses interior whitespace.
func normalizeStopName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
