// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the internmatch engine:
// catalog records, candidate profiles, recommendation results, configuration
// and the error taxonomy surfaced to callers.
package types

// RoleLevel is the seniority band inferred from a posting's role title.
type RoleLevel string

const (
	RoleEntry  RoleLevel = "entry"
	RoleMid    RoleLevel = "mid"
	RoleSenior RoleLevel = "senior"
)

// CompanySize is the size band inferred from a posting's company name.
type CompanySize string

const (
	CompanySmall  CompanySize = "small"
	CompanyMedium CompanySize = "medium"
	CompanyLarge  CompanySize = "large"
)

// InternshipRecord is one posting in the catalog. Text fields are never
// absent; a missing source value is stored as the empty string. The derived
// fields are computed once when the catalog is loaded.
type InternshipRecord struct {
	// ID is the posting identifier from the source table.
	ID string `json:"id" yaml:"id"`

	Company  string `json:"company" yaml:"company"`
	Role     string `json:"role" yaml:"role"`
	Location string `json:"location" yaml:"location"`
	Industry string `json:"industry" yaml:"industry"`

	// RequiredSkills is the comma-separated skill list as published.
	RequiredSkills string `json:"required_skills" yaml:"required_skills"`

	// RoleLevel is derived from Role by keyword heuristics.
	RoleLevel RoleLevel `json:"role_level" yaml:"role_level"`

	// CompanySize is derived from Company by keyword heuristics.
	CompanySize CompanySize `json:"company_size" yaml:"company_size"`
}
