// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"strings"

	"github.com/pdiddy/internmatch/pkg/types"
)

// Classifier derives the heuristic fields of a record. Either function may
// be replaced; a nil function leaves the default band.
type Classifier struct {
	RoleLevel   func(role string) types.RoleLevel
	CompanySize func(company string) types.CompanySize
}

// Keyword lists used by DefaultClassifier. Matching is case-insensitive on
// whole words.
var (
	SeniorRoleKeywords = []string{"senior", "sr", "lead", "principal", "head", "manager", "director", "architect"}
	MidRoleKeywords    = []string{"associate", "analyst", "engineer", "developer", "specialist", "consultant", "ii"}

	LargeCompanyKeywords  = []string{"ltd", "limited", "corporation", "corp", "group", "industries", "global", "international", "bank"}
	MediumCompanyKeywords = []string{"technologies", "solutions", "systems", "services", "labs", "consulting", "pvt", "private"}
)

// DefaultClassifier returns the keyword-list classifier.
func DefaultClassifier() Classifier {
	return Classifier{
		RoleLevel:   KeywordRoleLevel,
		CompanySize: KeywordCompanySize,
	}
}

// KeywordRoleLevel maps a role title to a seniority band. Titles naming an
// intern or trainee are entry level regardless of other words.
func KeywordRoleLevel(role string) types.RoleLevel {
	words := wordSet(role)
	switch {
	case hasAny(words, []string{"intern", "internship", "trainee", "apprentice", "junior", "jr"}):
		return types.RoleEntry
	case hasAny(words, SeniorRoleKeywords):
		return types.RoleSenior
	case hasAny(words, MidRoleKeywords):
		return types.RoleMid
	}
	return types.RoleEntry
}

// KeywordCompanySize maps a company name to a size band.
func KeywordCompanySize(company string) types.CompanySize {
	words := wordSet(company)
	switch {
	case hasAny(words, LargeCompanyKeywords):
		return types.CompanyLarge
	case hasAny(words, MediumCompanyKeywords):
		return types.CompanyMedium
	}
	return types.CompanySmall
}

// Apply fills the derived fields of r.
func (c Classifier) Apply(r *types.InternshipRecord) {
	r.RoleLevel = types.RoleEntry
	if c.RoleLevel != nil {
		r.RoleLevel = c.RoleLevel(r.Role)
	}
	r.CompanySize = types.CompanySmall
	if c.CompanySize != nil {
		r.CompanySize = c.CompanySize(r.Company)
	}
}

func wordSet(s string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	m := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		m[f] = struct{}{}
	}
	return m
}

func hasAny(words map[string]struct{}, keywords []string) bool {
	for _, k := range keywords {
		if _, ok := words[k]; ok {
			return true
		}
	}
	return false
}
