package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/akerfield/namewright/pkg/corpus"
	"github.com/akerfield/namewright/pkg/namegen"
)

// StatsAPI aggregates store and set statistics for the dashboard summary.
type StatsAPI struct {
	store  *corpus.Store
	sm     *SetManager
	logger *slog.Logger
}

// NewStatsAPI creates a new instance of the StatsAPI.
func NewStatsAPI(store *corpus.Store, sm *SetManager, logger *slog.Logger) *StatsAPI {
	return &StatsAPI{
		store:  store,
		sm:     sm,
		logger: logger,
	}
}

// RegisterRoutes sets up the routing for all /api/stats endpoints.
func (a *StatsAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/stats/summary", a.handleSummary)
}

// StatsSummary is the aggregate view of everything the server holds.
type StatsSummary struct {
	Corpora     int                 `json:"corpora"`
	StoredNames int                 `json:"stored_names"`
	Sets        int                 `json:"sets"`
	BannedWords int                 `json:"banned_words"`
	SetList     []SetInfo           `json:"set_list"`
	CorpusList  []corpus.CorpusInfo `json:"corpus_list"`
}

func (a *StatsAPI) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if !hasScope(r, "stats:read") {
		respondWithError(w, http.StatusForbidden, "Forbidden: requires 'stats:read' scope")
		return
	}

	corpora, err := a.store.List(r.Context())
	if err != nil {
		a.logger.Error("Failed to list corpora for stats", "error", err)
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to gather stats: %v", err))
		return
	}

	summary := StatsSummary{
		Corpora:     len(corpora),
		CorpusList:  corpora,
		SetList:     a.sm.List(),
		BannedWords: len(namegen.BannedWords()),
	}
	for _, info := range corpora {
		summary.StoredNames += info.Names
	}
	summary.Sets = len(summary.SetList)
	if summary.CorpusList == nil {
		summary.CorpusList = []corpus.CorpusInfo{}
	}

	respondWithJSON(w, http.StatusOK, summary)
}
