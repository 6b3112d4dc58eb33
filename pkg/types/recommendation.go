// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SkillsAnalysis compares a candidate's skills with one posting's required
// skills. Matching and Missing are sorted so results are reproducible.
type SkillsAnalysis struct {
	Matching []string `json:"matching" yaml:"matching"`
	Missing  []string `json:"missing" yaml:"missing"`

	// MatchPercentage is |matching| / |required|, 0 when nothing is required.
	MatchPercentage float64 `json:"match_percentage" yaml:"match_percentage"`

	// SkillsConfidence is MatchPercentage scaled by 1.2 and capped at 1.
	SkillsConfidence float64 `json:"skills_confidence" yaml:"skills_confidence"`
}

// ScoreBreakdown holds the per-field raw scores behind a recommendation.
type ScoreBreakdown struct {
	MainSimilarity     float64 `json:"main_similarity" yaml:"main_similarity"`
	IndustrySimilarity float64 `json:"industry_similarity" yaml:"industry_similarity"`
	LocationSimilarity float64 `json:"location_similarity" yaml:"location_similarity"`
	EducationScore     float64 `json:"education_score" yaml:"education_score"`
}

// RecommendationResult is one ranked posting with its explanation.
type RecommendationResult struct {
	InternshipRecord `yaml:",inline"`

	// Similarity is the weighted combination of the breakdown scores.
	Similarity float64 `json:"similarity" yaml:"similarity"`

	// ConfidenceScore lies in [0, 95].
	ConfidenceScore float64 `json:"confidence_score" yaml:"confidence_score"`

	MatchReasoning string         `json:"match_reasoning" yaml:"match_reasoning"`
	SkillsAnalysis SkillsAnalysis `json:"skills_analysis" yaml:"skills_analysis"`
	ScoreBreakdown ScoreBreakdown `json:"score_breakdown" yaml:"score_breakdown"`
}

// ErrorDetail is the result-level error object returned instead of raising
// when a single ranking request fails.
type ErrorDetail struct {
	Kind    ErrorKind  `json:"kind" yaml:"kind"`
	Class   ErrorClass `json:"class" yaml:"class"`
	Message string     `json:"message" yaml:"message"`
}

// RecommendationResponse is the outcome of one ranking request. Exactly one
// of Results (possibly empty) or Error is meaningful.
type RecommendationResponse struct {
	Results []RecommendationResult `json:"results" yaml:"results"`
	Error   *ErrorDetail           `json:"error,omitempty" yaml:"error,omitempty"`
}

// OK reports whether the request produced results rather than an error.
func (r RecommendationResponse) OK() bool {
	return r.Error == nil
}
