// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"sort"
	"strings"

	"github.com/pdiddy/internmatch/internal/features"
	"github.com/pdiddy/internmatch/internal/skillgap"
	"github.com/pdiddy/internmatch/pkg/types"
)

// Reasoning thresholds and phrases, tested in this order.
const (
	strongSkillsThreshold = 0.3
	industryThreshold     = 0.5
	locationThreshold     = 0.7
	educationThreshold    = 0.8

	reasonSkills    = "strong skills match"
	reasonIndustry  = "industry alignment"
	reasonLocation  = "location preference match"
	reasonEducation = "education level compatible"
	reasonFallback  = "General compatibility"
)

const maxConfidence = 95.0

// Rank scores every catalog row against p and returns the topK best,
// highest combined score first. Ties keep catalog order. topK larger than
// the catalog returns every row.
func (s *Snapshot) Rank(p types.CandidateProfile, topK int) ([]types.RecommendationResult, error) {
	n := s.Rows()
	if n == 0 {
		return nil, types.NewError(types.KindEmptyCatalog, "catalog has no rows")
	}
	if err := s.Spaces.Validate(n); err != nil {
		return nil, err
	}
	if topK <= 0 {
		return nil, types.NewError(types.KindInvalidInput, "top_k must be positive, got %d", topK)
	}

	docs := features.ForCandidate(p)
	simMain := s.Spaces.Main.Similarities(s.Spaces.Main.Transform(docs.Main))
	simIndustry := s.Spaces.Industry.Similarities(s.Spaces.Industry.Transform(docs.Industry))
	simLocation := s.Spaces.Location.Similarities(s.Spaces.Location.Transform(docs.Location))
	edu := s.Education.Score(p.EducationLevel)

	w := s.Weights
	final := make([]float64, n)
	order := make([]int, n)
	for i := range final {
		final[i] = w.Main*simMain[i] + w.Industry*simIndustry[i] +
			w.Location*simLocation[i] + w.Education*edu
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return final[order[a]] > final[order[b]]
	})
	if topK > n {
		topK = n
	}

	results := make([]types.RecommendationResult, 0, topK)
	for _, i := range order[:topK] {
		rec := s.Records[i]
		breakdown := types.ScoreBreakdown{
			MainSimilarity:     simMain[i],
			IndustrySimilarity: simIndustry[i],
			LocationSimilarity: simLocation[i],
			EducationScore:     edu,
		}
		analysis := skillgap.AnalyzeList(p.Skills, rec.RequiredSkills)
		results = append(results, types.RecommendationResult{
			InternshipRecord: rec,
			Similarity:       final[i],
			ConfidenceScore:  Confidence(final[i], analysis.SkillsConfidence),
			MatchReasoning:   Reasoning(breakdown),
			SkillsAnalysis:   analysis,
			ScoreBreakdown:   breakdown,
		})
	}
	return results, nil
}

// Confidence blends the combined score with skills confidence on a 0-100
// scale, capped at 95.
func Confidence(final, skillsConfidence float64) float64 {
	c := (final*0.7 + skillsConfidence*0.3) * 100
	return max(min(c, maxConfidence), 0)
}

// Reasoning explains a breakdown in fixed phrases joined by "; ".
func Reasoning(b types.ScoreBreakdown) string {
	var reasons []string
	if b.MainSimilarity > strongSkillsThreshold {
		reasons = append(reasons, reasonSkills)
	}
	if b.IndustrySimilarity > industryThreshold {
		reasons = append(reasons, reasonIndustry)
	}
	if b.LocationSimilarity > locationThreshold {
		reasons = append(reasons, reasonLocation)
	}
	if b.EducationScore > educationThreshold {
		reasons = append(reasons, reasonEducation)
	}
	if len(reasons) == 0 {
		return reasonFallback
	}
	return strings.Join(reasons, "; ")
}
