// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"sort"
	"strings"

	"github.com/pdiddy/internmatch/internal/skillgap"
	"github.com/pdiddy/internmatch/pkg/types"
)

// Filter selects records by case-insensitive substring. Empty fields match
// everything.
type Filter struct {
	Industry string
	Location string
	Skill    string
	Company  string

	// Limit caps the page size; zero means no cap.
	Limit  int
	Offset int
}

// Page is one page of a filtered catalog listing.
type Page struct {
	Internships   []types.InternshipRecord `json:"internships" yaml:"internships"`
	TotalCount    int                      `json:"total_count" yaml:"total_count"`
	FilteredCount int                      `json:"filtered_count" yaml:"filtered_count"`
}

// Browse filters records in catalog order and returns the requested page.
// FilteredCount counts every match, not just the returned page.
func Browse(records []types.InternshipRecord, f Filter) Page {
	industry := strings.ToLower(strings.TrimSpace(f.Industry))
	location := strings.ToLower(strings.TrimSpace(f.Location))
	skill := strings.ToLower(strings.TrimSpace(f.Skill))
	company := strings.ToLower(strings.TrimSpace(f.Company))

	var matched []types.InternshipRecord
	for _, r := range records {
		if !contains(r.Industry, industry) || !contains(r.Location, location) ||
			!contains(r.RequiredSkills, skill) || !contains(r.Company, company) {
			continue
		}
		matched = append(matched, r)
	}

	page := Page{
		Internships:   []types.InternshipRecord{},
		TotalCount:    len(records),
		FilteredCount: len(matched),
	}
	start := max(f.Offset, 0)
	if start >= len(matched) {
		return page
	}
	end := len(matched)
	if f.Limit > 0 && start+f.Limit < end {
		end = start + f.Limit
	}
	page.Internships = append(page.Internships, matched[start:end]...)
	return page
}

// Head returns at most n records from the start of the catalog.
func Head(records []types.InternshipRecord, n int) []types.InternshipRecord {
	if n < 0 || n > len(records) {
		n = len(records)
	}
	return append([]types.InternshipRecord{}, records[:n]...)
}

// Sectors returns the distinct non-empty industries, sorted.
func Sectors(records []types.InternshipRecord) []string {
	return distinct(records, func(r types.InternshipRecord) []string { return []string{r.Industry} })
}

// Locations returns the distinct non-empty locations, sorted.
func Locations(records []types.InternshipRecord) []string {
	return distinct(records, func(r types.InternshipRecord) []string { return []string{r.Location} })
}

// Skills returns the distinct required skills across the catalog, sorted.
// Skills compare case-insensitively; the first spelling seen is kept.
func Skills(records []types.InternshipRecord) []string {
	seen := make(map[string]string)
	for _, r := range records {
		for _, part := range strings.Split(r.RequiredSkills, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			key := skillgap.SplitSkills(part)[0]
			if _, ok := seen[key]; !ok {
				seen[key] = part
			}
		}
	}
	out := make([]string, 0, len(seen))
	for _, v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func distinct(records []types.InternshipRecord, values func(types.InternshipRecord) []string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range records {
		for _, v := range values(r) {
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func contains(field, needle string) bool {
	return needle == "" || strings.Contains(strings.ToLower(field), needle)
}
