package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/akerfield/namewright/pkg/corpus"
)

// CorporaAPI holds the dependencies for the corpus management handlers.
type CorporaAPI struct {
	store  *corpus.Store
	logger *slog.Logger
}

// NewCorporaAPI creates a new instance of the CorporaAPI.
func NewCorporaAPI(store *corpus.Store, logger *slog.Logger) *CorporaAPI {
	return &CorporaAPI{
		store:  store,
		logger: logger,
	}
}

// RegisterRoutes sets up the routing for all /api/corpora endpoints.
func (c *CorporaAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/corpora", c.handleCorpora)
	mux.HandleFunc("/api/corpora/", c.handleCorpusByName)
}

// readBodyNames parses an uploaded training text body, optionally cleaning
// it. The clean query parameter defaults to true; pass clean=false to store
// the lines untouched.
func readBodyNames(r *http.Request) ([]string, error) {
	names, err := corpus.FromReader(r.Body)
	if err != nil {
		return nil, err
	}
	if r.URL.Query().Get("clean") != "false" {
		names = corpus.Clean(names)
	}
	return names, nil
}

// handleCorpora handles GET for listing and POST for uploading corpora.
func (c *CorporaAPI) handleCorpora(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if !hasScope(r, "corpora:read") {
			respondWithError(w, http.StatusForbidden, "Forbidden: requires 'corpora:read' scope")
			return
		}
		infos, err := c.store.List(r.Context())
		if err != nil {
			c.logger.Error("Failed to list corpora", "error", err)
			respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to list corpora: %v", err))
			return
		}
		if infos == nil {
			infos = []corpus.CorpusInfo{}
		}
		respondWithJSON(w, http.StatusOK, infos)

	case http.MethodPost:
		if !hasScope(r, "corpora:write") {
			respondWithError(w, http.StatusForbidden, "Forbidden: requires 'corpora:write' scope")
			return
		}
		name := r.URL.Query().Get("name")
		if name == "" {
			respondWithError(w, http.StatusBadRequest, "A corpus name is required (?name=)")
			return
		}
		names, err := readBodyNames(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Failed to read training text: %v", err))
			return
		}
		if len(names) == 0 {
			respondWithError(w, http.StatusBadRequest, "The uploaded text contains no usable names")
			return
		}
		if err = c.store.Put(r.Context(), name, names); err != nil {
			c.logger.Error("Failed to store corpus", "corpus", name, "error", err)
			respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to store corpus: %v", err))
			return
		}
		respondWithJSON(w, http.StatusCreated, corpus.CorpusInfo{Name: name, Names: len(names)})

	default:
		w.Header().Set("Allow", "GET, POST")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleCorpusByName routes export, append and delete for a single corpus.
func (c *CorporaAPI) handleCorpusByName(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/corpora/"), "/")
	if name == "" {
		respondWithError(w, http.StatusBadRequest, "Corpus name not specified")
		return
	}

	switch r.Method {
	case http.MethodGet:
		if !hasScope(r, "corpora:read") {
			respondWithError(w, http.StatusForbidden, "Forbidden: requires 'corpora:read' scope")
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".txt"))
		if err := c.store.Export(r.Context(), name, w); err != nil {
			if errors.Is(err, corpus.ErrCorpusNotFound) {
				respondWithError(w, http.StatusNotFound, "Corpus not found")
				return
			}
			c.logger.Error("Failed to export corpus", "corpus", name, "error", err)
		}

	case http.MethodPut:
		if !hasScope(r, "corpora:write") {
			respondWithError(w, http.StatusForbidden, "Forbidden: requires 'corpora:write' scope")
			return
		}
		names, err := readBodyNames(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Failed to read training text: %v", err))
			return
		}
		if err = c.store.AppendNames(r.Context(), name, names); err != nil {
			if errors.Is(err, corpus.ErrCorpusNotFound) {
				respondWithError(w, http.StatusNotFound, "Corpus not found")
				return
			}
			c.logger.Error("Failed to append to corpus", "corpus", name, "error", err)
			respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to append: %v", err))
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]int{"appended": len(names)})

	case http.MethodDelete:
		if !hasScope(r, "corpora:write") {
			respondWithError(w, http.StatusForbidden, "Forbidden: requires 'corpora:write' scope")
			return
		}
		if err := c.store.Delete(r.Context(), name); err != nil {
			if errors.Is(err, corpus.ErrCorpusNotFound) {
				respondWithError(w, http.StatusNotFound, "Corpus not found")
				return
			}
			c.logger.Error("Failed to delete corpus", "corpus", name, "error", err)
			respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to delete: %v", err))
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.Header().Set("Allow", "GET, PUT, DELETE")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
