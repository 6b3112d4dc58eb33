// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog loads internship postings, persists them in catalog
// order, and answers browse queries. Every record it returns has all text
// fields present and its derived fields computed.
package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/pdiddy/internmatch/internal/httputil"
	"github.com/pdiddy/internmatch/internal/textnorm"
	"github.com/pdiddy/internmatch/pkg/types"
)

// RequiredColumns must appear in the header of every source table.
var RequiredColumns = []string{"id", "company", "role", "location", "industry", "required_skills"}

// ReadCSV parses a source table. Missing required columns fail with a data
// error naming them; empty cells become empty strings. Extra columns are
// ignored.
func ReadCSV(r io.Reader, c Classifier) ([]types.InternshipRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, types.NewError(types.KindData, "catalog table is empty")
	}
	if err != nil {
		return nil, types.WrapError(types.KindData, err, "reading catalog header")
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := col[name]; !dup {
			col[name] = i
		}
	}
	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := col[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, types.NewError(types.KindData, "catalog table missing columns: %s", strings.Join(missing, ", "))
	}

	cell := func(row []string, name string) string {
		i := col[name]
		if i >= len(row) {
			return ""
		}
		return textnorm.Clean(row[i])
	}

	var records []types.InternshipRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, types.WrapError(types.KindData, err, "reading catalog row %d", line)
		}
		rec := types.InternshipRecord{
			ID:             cell(row, "id"),
			Company:        cell(row, "company"),
			Role:           cell(row, "role"),
			Location:       cell(row, "location"),
			Industry:       cell(row, "industry"),
			RequiredSkills: cell(row, "required_skills"),
		}
		if rec.ID == "" {
			rec.ID = fmt.Sprintf("row-%d", line-1)
		}
		c.Apply(&rec)
		records = append(records, rec)
	}
	return records, nil
}

// LoadFile reads a source table from disk.
func LoadFile(path string, c Classifier) ([]types.InternshipRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, types.WrapError(types.KindData, err, "opening catalog %s", path)
	}
	defer f.Close()

	records, err := ReadCSV(f, c)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return records, nil
}

// FetchOptions configures a remote catalog download.
type FetchOptions struct {
	Client  *http.Client
	Token   string // sent as a bearer token when set
	Retries int
}

// Fetch downloads a source table over HTTP, retrying rate-limited and
// transiently unavailable responses.
func Fetch(ctx context.Context, url string, opts FetchOptions, c Classifier) ([]types.InternshipRecord, error) {
	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building catalog request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")
	if opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Token)
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, opts.Retries)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, types.NewError(types.KindData, "fetching catalog %s: HTTP %d", url, resp.StatusCode)
	}
	return ReadCSV(resp.Body, c)
}
