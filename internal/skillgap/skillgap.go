// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package skillgap compares comma-separated skill lists as sets.
package skillgap

import (
	"sort"
	"strings"

	"github.com/pdiddy/internmatch/pkg/types"
)

const (
	confidenceBoost = 1.2
	confidenceCap   = 1.0
)

// Analyze compares candidate skills with a posting's required skills. Both
// sides are split on commas, trimmed and lower-cased; duplicates collapse.
// MatchPercentage is 0 when nothing is required.
func Analyze(candidate, required string) types.SkillsAnalysis {
	have := toSet(SplitSkills(candidate))
	need := toSet(SplitSkills(required))

	res := types.SkillsAnalysis{Matching: []string{}, Missing: []string{}}
	for s := range need {
		if _, ok := have[s]; ok {
			res.Matching = append(res.Matching, s)
		} else {
			res.Missing = append(res.Missing, s)
		}
	}
	sort.Strings(res.Matching)
	sort.Strings(res.Missing)

	if len(need) > 0 {
		res.MatchPercentage = float64(len(res.Matching)) / float64(len(need))
	}
	res.SkillsConfidence = min(res.MatchPercentage*confidenceBoost, confidenceCap)
	return res
}

// AnalyzeList is Analyze for an already split candidate list.
func AnalyzeList(candidate []string, required string) types.SkillsAnalysis {
	return Analyze(strings.Join(candidate, ","), required)
}

// SplitSkills splits s on commas and returns the trimmed, lower-cased,
// non-empty items in order.
func SplitSkills(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func toSet(items []string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, it := range items {
		m[it] = struct{}{}
	}
	return m
}
