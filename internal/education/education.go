// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package education scores how well a candidate's education level fits the
// eligible band of the internship programme. Labels are compared exactly;
// the hierarchy is never used for text matching.
package education

import "sort"

// Hierarchy maps an education label to its ordinal rank.
type Hierarchy map[string]int

// DefaultHierarchy is the fixed label table of the programme.
var DefaultHierarchy = Hierarchy{
	"10th":    1,
	"12th":    2,
	"Diploma": 3,
	"UG":      4,
	"B.Tech":  4,
	"B.Sc":    4,
	"BBA":     4,
	"B.Com":   4,
	"BCA":     4,
	"PG":      5,
	"M.Tech":  5,
	"M.Sc":    5,
	"MBA":     5,
	"MCA":     5,
	"M.Com":   5,
	"PhD":     6,
}

// Default band and the rank assumed for unknown labels.
const (
	DefaultMinRank = 3
	DefaultMaxRank = 5
	UnknownRank    = 3
)

// Scores returned by Score.
const (
	ScoreEligible       = 1.0
	ScoreUnderQualified = 0.3
	ScoreOverQualified  = 0.7
)

// Scorer is a pure function of its hierarchy and band.
type Scorer struct {
	Hierarchy Hierarchy
	MinRank   int
	MaxRank   int
}

// NewScorer returns a scorer over the default hierarchy. Non-positive
// bounds fall back to the defaults.
func NewScorer(minRank, maxRank int) Scorer {
	if minRank <= 0 {
		minRank = DefaultMinRank
	}
	if maxRank <= 0 {
		maxRank = DefaultMaxRank
	}
	return Scorer{Hierarchy: DefaultHierarchy, MinRank: minRank, MaxRank: maxRank}
}

// Rank returns the rank of label. Unknown labels, including case variants
// of known ones, rank as UnknownRank.
func (s Scorer) Rank(label string) int {
	h := s.Hierarchy
	if h == nil {
		h = DefaultHierarchy
	}
	if r, ok := h[label]; ok {
		return r
	}
	return UnknownRank
}

// Score returns 1.0 inside [MinRank, MaxRank], 0.3 below and 0.7 above.
func (s Scorer) Score(label string) float64 {
	r := s.Rank(label)
	switch {
	case r < s.MinRank:
		return ScoreUnderQualified
	case r > s.MaxRank:
		return ScoreOverQualified
	default:
		return ScoreEligible
	}
}

// Levels returns the labels ordered by rank, then alphabetically.
func (h Hierarchy) Levels() []string {
	out := make([]string, 0, len(h))
	for l := range h {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if h[out[i]] != h[out[j]] {
			return h[out[i]] < h[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}
