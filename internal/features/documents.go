// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package features

import (
	"strings"

	"github.com/pdiddy/internmatch/internal/textnorm"
	"github.com/pdiddy/internmatch/pkg/types"
)

// MainDocument renders the skills/role text of a catalog row.
func MainDocument(r types.InternshipRecord) string {
	return textnorm.Normalize(r.RequiredSkills + " " + r.Role + " " + string(r.RoleLevel))
}

// IndustryDocument renders the sector and company-size text of a catalog row.
func IndustryDocument(r types.InternshipRecord) string {
	return "industry:" + textnorm.Normalize(r.Industry) + " size:" + string(r.CompanySize)
}

// LocationDocument renders the location text of a catalog row.
func LocationDocument(r types.InternshipRecord) string {
	return "location:" + textnorm.Normalize(r.Location)
}

// CandidateDocuments holds the candidate-side text of each field.
type CandidateDocuments struct {
	Main     string
	Industry string
	Location string
}

// ForCandidate renders a profile into per-field text. An empty sector or
// location yields empty text, which projects to the zero vector.
func ForCandidate(p types.CandidateProfile) CandidateDocuments {
	parts := make([]string, 0, len(p.Skills)+len(p.Aspirations)+1)
	parts = append(parts, p.Skills...)
	parts = append(parts, p.Aspirations...)
	if p.Experience != "" {
		parts = append(parts, p.Experience)
	}

	var d CandidateDocuments
	d.Main = textnorm.Normalize(strings.Join(parts, " "))
	if sector := textnorm.Normalize(p.SectorInterest); sector != "" {
		d.Industry = "industry:" + sector
	}
	if loc := textnorm.Normalize(p.LocationPreference); loc != "" {
		d.Location = "location:" + loc
	}
	return d
}
