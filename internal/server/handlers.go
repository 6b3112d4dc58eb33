// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/internmatch/internal/catalog"
	"github.com/pdiddy/internmatch/internal/education"
	"github.com/pdiddy/internmatch/internal/engine"
	"github.com/pdiddy/internmatch/internal/logger"
	"github.com/pdiddy/internmatch/internal/profile"
	"github.com/pdiddy/internmatch/pkg/types"
)

// Health is the payload of GET /api/health.
type Health struct {
	Status        string `json:"status"`
	CatalogLoaded bool   `json:"catalog_loaded"`
	Rows          int    `json:"rows"`
	ModelVersion  string `json:"model_version,omitempty"`
}

// Recommendations is the payload of POST /api/recommendations.
type Recommendations struct {
	Recommendations []types.RecommendationResult `json:"recommendations"`
	BrowseTable     []types.InternshipRecord     `json:"browse_table"`
}

// RefitResult is the payload of POST /api/admin/refit.
type RefitResult struct {
	Rows            int            `json:"rows"`
	VocabularySizes map[string]int `json:"vocabulary_sizes"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h := Health{Status: "healthy", ModelVersion: s.modelVersion}
	if snap := s.engine.Snapshot(); snap != nil {
		h.CatalogLoaded = true
		h.Rows = snap.Rows()
	}
	s.dataResponse(w, h)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&payload); err != nil {
		s.errorResponse(w, types.WrapError(types.KindInvalidInput, err, "request body must be a JSON object"))
		return
	}
	p, err := profile.Parse(payload)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	topK, err := intParam(r, "top_k", 0)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	resp := s.engine.Recommend(r.Context(), p, topK)
	if !resp.OK() {
		s.detailResponse(w, resp.Error)
		return
	}

	var browse []types.InternshipRecord
	if snap := s.engine.Snapshot(); snap != nil {
		browse = catalog.Head(snap.Records, s.cfg.BrowseLimit)
	}
	if browse == nil {
		browse = []types.InternshipRecord{}
	}
	s.dataResponse(w, Recommendations{Recommendations: resp.Results, BrowseTable: browse})
}

func (s *Server) handleInternships(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", s.cfg.BrowseLimit)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	offset, err := intParam(r, "offset", 0)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	s.dataResponse(w, catalog.Browse(snap.Records, catalog.Filter{
		Industry: q.Get("sector"),
		Location: q.Get("location"),
		Skill:    q.Get("skill"),
		Company:  q.Get("company"),
		Limit:    limit,
		Offset:   offset,
	}))
}

func (s *Server) handleSectors(w http.ResponseWriter, r *http.Request) {
	if snap, ok := s.snapshot(w, r); ok {
		s.dataResponse(w, catalog.Sectors(snap.Records))
	}
}

func (s *Server) handleLocations(w http.ResponseWriter, r *http.Request) {
	if snap, ok := s.snapshot(w, r); ok {
		s.dataResponse(w, catalog.Locations(snap.Records))
	}
}

func (s *Server) handleSkills(w http.ResponseWriter, r *http.Request) {
	if snap, ok := s.snapshot(w, r); ok {
		s.dataResponse(w, catalog.Skills(snap.Records))
	}
}

// handleEducationLevels lists the labels of the published hierarchy, or of
// the default one before the first fit.
func (s *Server) handleEducationLevels(w http.ResponseWriter, _ *http.Request) {
	h := education.DefaultHierarchy
	if snap := s.engine.Snapshot(); snap != nil && len(snap.Education.Hierarchy) > 0 {
		h = snap.Education.Hierarchy
	}
	s.dataResponse(w, h.Levels())
}

func (s *Server) handleRefit(w http.ResponseWriter, r *http.Request) {
	if s.cfg.AdminToken == "" {
		s.statusResponse(w, http.StatusNotFound, "endpoint not found")
		return
	}
	token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !found || subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.AdminToken)) != 1 {
		s.statusResponse(w, http.StatusUnauthorized, "invalid admin token")
		return
	}

	snap, err := s.engine.Refit(r.Context())
	if err != nil {
		s.log.Error("refit failed", zap.String(logger.FieldRequestID, RequestID(r.Context())), zap.Error(err))
		s.errorResponse(w, err)
		return
	}
	s.dataResponse(w, RefitResult{Rows: snap.Rows(), VocabularySizes: snap.Spaces.VocabularySizes()})
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	s.statusResponse(w, http.StatusNotFound, "endpoint not found")
}

// snapshot returns the current snapshot, fitting lazily if needed. On
// failure it writes the error response and reports false.
func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) (*engine.Snapshot, bool) {
	snap, err := s.engine.Current(r.Context())
	if err != nil {
		s.errorResponse(w, err)
		return nil, false
	}
	return snap, true
}

// intParam parses a non-negative integer query parameter.
func intParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, types.NewError(types.KindInvalidInput, "%s must be a non-negative integer, got %q", name, raw)
	}
	return n, nil
}
