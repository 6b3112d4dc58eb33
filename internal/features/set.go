// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package features

import (
	"github.com/pdiddy/internmatch/pkg/types"
)

// Set groups the three spaces the engine scores with. A Set is published
// as a whole; readers never see a mix of old and new spaces.
type Set struct {
	Main     *Space
	Industry *Space
	Location *Space
}

// Spaces returns the spaces in field order.
func (s Set) Spaces() []*Space {
	return []*Space{s.Main, s.Industry, s.Location}
}

// Validate checks that every space is present and has exactly rows rows.
func (s Set) Validate(rows int) error {
	for i, sp := range s.Spaces() {
		if sp == nil {
			return types.NewError(types.KindNotFitted, "%s space is missing", fieldNames[i])
		}
		if sp.Rows() != rows {
			return types.NewError(types.KindData,
				"%s space has %d rows, catalog has %d", sp.Name(), sp.Rows(), rows)
		}
	}
	return nil
}

// VocabularySizes reports the vocabulary size of each space by field name.
func (s Set) VocabularySizes() map[string]int {
	out := make(map[string]int, 3)
	for _, sp := range s.Spaces() {
		if sp != nil {
			out[sp.Name()] = sp.VocabularySize()
		}
	}
	return out
}

var fieldNames = []string{FieldMain, FieldIndustry, FieldLocation}

// Corpora holds one document per catalog row for each field.
type Corpora struct {
	Main     []string
	Industry []string
	Location []string
}

// BuildCorpora renders catalog records into the three field corpora.
// It fails with a data error when the catalog is empty or a field is
// blank on every row.
func BuildCorpora(records []types.InternshipRecord) (Corpora, error) {
	if len(records) == 0 {
		return Corpora{}, types.NewError(types.KindData, "catalog has no rows")
	}
	c := Corpora{
		Main:     make([]string, len(records)),
		Industry: make([]string, len(records)),
		Location: make([]string, len(records)),
	}
	var anyMain, anyIndustry, anyLocation bool
	for i, r := range records {
		c.Main[i] = MainDocument(r)
		c.Industry[i] = IndustryDocument(r)
		c.Location[i] = LocationDocument(r)
		anyMain = anyMain || hasText(r.RequiredSkills) || hasText(r.Role)
		anyIndustry = anyIndustry || hasText(r.Industry)
		anyLocation = anyLocation || hasText(r.Location)
	}
	switch {
	case !anyMain:
		return Corpora{}, types.NewError(types.KindData, "required_skills and role are empty on every row")
	case !anyIndustry:
		return Corpora{}, types.NewError(types.KindData, "industry is empty on every row")
	case !anyLocation:
		return Corpora{}, types.NewError(types.KindData, "location is empty on every row")
	}
	return c, nil
}

func hasText(s string) bool {
	return tokenPattern.MatchString(s)
}
