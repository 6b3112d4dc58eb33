// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/pdiddy/internmatch/pkg/types"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    any             `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Kind    types.ErrorKind `json:"kind,omitempty"`
}

// HTTPStatus maps an error class to a status code.
func HTTPStatus(class types.ErrorClass) int {
	switch class {
	case types.ClassInput:
		return http.StatusBadRequest
	case types.ClassNotReady:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("encoding response", zap.Error(err))
	}
}

func (s *Server) dataResponse(w http.ResponseWriter, data any) {
	s.jsonResponse(w, http.StatusOK, envelope{Success: true, Data: data})
}

// errorResponse writes err with the status of its class.
func (s *Server) errorResponse(w http.ResponseWriter, err error) {
	s.detailResponse(w, types.Detail(err))
}

func (s *Server) detailResponse(w http.ResponseWriter, d *types.ErrorDetail) {
	s.jsonResponse(w, HTTPStatus(d.Class), envelope{Error: d.Message, Kind: d.Kind})
}

func (s *Server) statusResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, envelope{Error: message})
}
