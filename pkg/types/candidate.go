// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CandidateProfile is the canonical, request-scoped shape of a candidate.
// List fields are already split and trimmed; the engine never sees the
// external string-or-list representation.
type CandidateProfile struct {
	Skills             []string `json:"skills" yaml:"skills" mapstructure:"skills" validate:"required,min=1,dive,required"`
	Aspirations        []string `json:"aspirations,omitempty" yaml:"aspirations,omitempty" mapstructure:"aspirations"`
	EducationLevel     string   `json:"education_level" yaml:"education_level" mapstructure:"education_level" validate:"required"`
	SectorInterest     string   `json:"sector_interest" yaml:"sector_interest" mapstructure:"sector_interest" validate:"required"`
	LocationPreference string   `json:"location_preference" yaml:"location_preference" mapstructure:"location_preference" validate:"required"`
	Experience         string   `json:"experience,omitempty" yaml:"experience,omitempty" mapstructure:"experience"`
}
