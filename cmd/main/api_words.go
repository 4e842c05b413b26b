package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/akerfield/namewright/pkg/namegen"
)

// WordsAPI manages the process-wide banned-word registry and mirrors it
// into the persisted configuration so the filter survives restarts.
type WordsAPI struct {
	cm     *ConfigManager
	logger *slog.Logger
}

// NewWordsAPI creates a new instance of the WordsAPI.
func NewWordsAPI(cm *ConfigManager, logger *slog.Logger) *WordsAPI {
	return &WordsAPI{
		cm:     cm,
		logger: logger,
	}
}

// RegisterRoutes sets up the routing for the /api/words endpoint.
func (a *WordsAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/words", a.handleWords)
}

// persistWords saves the current registry contents into the config file.
func (a *WordsAPI) persistWords(w http.ResponseWriter) bool {
	cfg := a.cm.Get()
	cfg.BannedWords = namegen.BannedWords()
	if err := a.cm.Update(cfg); err != nil {
		a.logger.Error("Failed to persist banned words", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Registry updated but persisting it failed")
		return false
	}
	return true
}

func (a *WordsAPI) handleWords(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if !hasScope(r, "words:read") {
			respondWithError(w, http.StatusForbidden, "Forbidden: requires 'words:read' scope")
			return
		}
		respondWithJSON(w, http.StatusOK, namegen.BannedWords())

	case http.MethodPut, http.MethodPost:
		if !hasScope(r, "words:write") {
			respondWithError(w, http.StatusForbidden, "Forbidden: requires 'words:write' scope")
			return
		}
		var req struct {
			Words []string `json:"words"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid JSON request body")
			return
		}
		if r.Method == http.MethodPut {
			namegen.SetBannedWords(req.Words)
		} else {
			namegen.AddBannedWords(req.Words...)
		}
		if !a.persistWords(w) {
			return
		}
		a.logger.Info("Banned words updated", "count", len(namegen.BannedWords()))
		respondWithJSON(w, http.StatusOK, namegen.BannedWords())

	default:
		w.Header().Set("Allow", "GET, PUT, POST")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
