package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/akerfield/namewright/pkg/corpus"
)

// SetsAPI holds the dependencies for the generation-set handlers.
type SetsAPI struct {
	sm     *SetManager
	logger *slog.Logger
}

// NewSetsAPI creates a new instance of the SetsAPI.
func NewSetsAPI(sm *SetManager, logger *slog.Logger) *SetsAPI {
	return &SetsAPI{
		sm:     sm,
		logger: logger,
	}
}

// RegisterRoutes sets up the routing for all /api/sets endpoints.
func (s *SetsAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/sets", s.handleSets)
	mux.HandleFunc("/api/sets/link", s.handleLink)
	mux.HandleFunc("/api/sets/refresh", s.handleRefresh)
	mux.HandleFunc("/api/sets/", s.handleSetByName)
}

// CreateSetRequest is the expected JSON body for creating a set.
type CreateSetRequest struct {
	Name string `json:"name"`
	SetOptions
}

// setError maps SetManager errors onto HTTP responses.
func (s *SetsAPI) setError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSetNotFound):
		respondWithError(w, http.StatusNotFound, "Set not found")
	case errors.Is(err, ErrSetExists):
		respondWithError(w, http.StatusConflict, "A set with that name already exists")
	case errors.Is(err, corpus.ErrCorpusNotFound):
		respondWithError(w, http.StatusNotFound, "Corpus not found")
	case errors.Is(err, ErrUnknownLengthMetric), errors.Is(err, ErrUnknownPreference):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Operation failed: %v", err))
	}
}

// handleSets handles GET for listing and POST for creating sets.
func (s *SetsAPI) handleSets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if !hasScope(r, "sets:read") {
			respondWithError(w, http.StatusForbidden, "Forbidden: requires 'sets:read' scope")
			return
		}
		respondWithJSON(w, http.StatusOK, s.sm.List())

	case http.MethodPost:
		if !hasScope(r, "sets:write") {
			respondWithError(w, http.StatusForbidden, "Forbidden: requires 'sets:write' scope")
			return
		}
		var req CreateSetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid JSON request body")
			return
		}
		if req.Name == "" || req.Corpus == "" {
			respondWithError(w, http.StatusBadRequest, "Set name and corpus are required")
			return
		}
		if err := s.sm.Create(r.Context(), req.Name, req.SetOptions); err != nil {
			s.logger.Error("Failed to create set", "set", req.Name, "error", err)
			s.setError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)

	default:
		w.Header().Set("Allow", "GET, POST")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleLink merges the histories of the named sets.
func (s *SetsAPI) handleLink(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if !hasScope(r, "sets:write") {
		respondWithError(w, http.StatusForbidden, "Forbidden: requires 'sets:write' scope")
		return
	}

	var req struct {
		Sets []string `json:"sets"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON request body")
		return
	}
	if err := s.sm.Link(req.Sets); err != nil {
		s.setError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRefresh rebuilds every set from its stored corpus, picking up edits
// made through the corpora API since the sets were created.
func (s *SetsAPI) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if !hasScope(r, "sets:write") {
		respondWithError(w, http.StatusForbidden, "Forbidden: requires 'sets:write' scope")
		return
	}

	if err := s.sm.Refresh(r.Context()); err != nil {
		s.setError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, s.sm.List())
}

// handleSetByName routes actions for a specific set: delete, generate,
// history, stress, unlink.
func (s *SetsAPI) handleSetByName(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/sets/")
	parts := strings.Split(strings.TrimSuffix(path, "/"), "/")
	name := parts[0]
	if name == "" {
		respondWithError(w, http.StatusBadRequest, "Set name not specified")
		return
	}

	if len(parts) == 1 {
		if r.Method == http.MethodDelete {
			if !hasScope(r, "sets:write") {
				respondWithError(w, http.StatusForbidden, "Forbidden: requires 'sets:write' scope")
				return
			}
			if err := s.sm.Delete(name); err != nil {
				s.setError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		} else {
			w.Header().Set("Allow", "DELETE")
			respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	switch parts[1] {
	case "generate":
		s.handleGenerate(w, r, name)
	case "history":
		s.handleHistory(w, r, name)
	case "stress":
		s.handleStress(w, r, name)
	case "unlink":
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", "POST")
			respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		if !hasScope(r, "sets:write") {
			respondWithError(w, http.StatusForbidden, "Forbidden: requires 'sets:write' scope")
			return
		}
		if err := s.sm.Unlink(name); err != nil {
			s.setError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		respondWithError(w, http.StatusNotFound, "Action not found")
	}
}

func (s *SetsAPI) handleGenerate(w http.ResponseWriter, r *http.Request, name string) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if !hasScope(r, "sets:generate") {
		respondWithError(w, http.StatusForbidden, "Forbidden: requires 'sets:generate' scope")
		return
	}

	var params GenerateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON request body")
		return
	}
	result, err := s.sm.Generate(name, params)
	if err != nil {
		s.setError(w, err)
		return
	}
	s.logger.Debug("Names generated",
		"set", name,
		"produced", len(result.Names),
		"exhausted", result.Exhausted,
	)
	respondWithJSON(w, http.StatusOK, result)
}

func (s *SetsAPI) handleHistory(w http.ResponseWriter, r *http.Request, name string) {
	switch r.Method {
	case http.MethodGet:
		if !hasScope(r, "sets:read") {
			respondWithError(w, http.StatusForbidden, "Forbidden: requires 'sets:read' scope")
			return
		}
		history, err := s.sm.History(name)
		if err != nil {
			s.setError(w, err)
			return
		}
		if history == nil {
			history = []string{}
		}
		respondWithJSON(w, http.StatusOK, history)

	case http.MethodPost:
		if !hasScope(r, "sets:write") {
			respondWithError(w, http.StatusForbidden, "Forbidden: requires 'sets:write' scope")
			return
		}
		var req struct {
			Names []string `json:"names"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid JSON request body")
			return
		}
		if err := s.sm.AddHistory(name, req.Names); err != nil {
			s.setError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	case http.MethodDelete:
		if !hasScope(r, "sets:write") {
			respondWithError(w, http.StatusForbidden, "Forbidden: requires 'sets:write' scope")
			return
		}
		if err := s.sm.ClearHistory(name); err != nil {
			s.setError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.Header().Set("Allow", "GET, POST, DELETE")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *SetsAPI) handleStress(w http.ResponseWriter, r *http.Request, name string) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if !hasScope(r, "sets:read") {
		respondWithError(w, http.StatusForbidden, "Forbidden: requires 'sets:read' scope")
		return
	}

	var req struct {
		Limit int `json:"limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON request body")
		return
	}
	report, err := s.sm.Stress(name, req.Limit)
	if err != nil {
		s.setError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, report)
}
