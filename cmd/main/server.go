package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/akerfield/namewright/pkg/corpus"
)

// Server wires the corpus store, the set manager, and the API groups onto
// one authenticated mux.
type Server struct {
	cm         *ConfigManager
	db         *sql.DB
	store      *corpus.Store
	sm         *SetManager
	logger     *slog.Logger
	authAPI    *AuthAPI
	corporaAPI *CorporaAPI
	setsAPI    *SetsAPI
	wordsAPI   *WordsAPI
	statsAPI   *StatsAPI
	serverAPI  *ServerAPI
	apiMux     *http.ServeMux
}

func NewServer(cm *ConfigManager, logger *slog.Logger, db *sql.DB, actionChan chan string) (*Server, error) {
	cfg := cm.Get()

	store, err := corpus.NewStore(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create corpus store: %w", err)
	}
	store.SetLogger(logger)

	sm := NewSetManager(store, cfg.Generation, logger)

	// api initialization
	authAPI := NewAuthAPI(db, logger)
	corporaAPI := NewCorporaAPI(store, logger)
	setsAPI := NewSetsAPI(sm, logger)
	wordsAPI := NewWordsAPI(cm, logger)
	statsAPI := NewStatsAPI(store, sm, logger)
	serverAPI := NewServerAPI(cm, actionChan, logger)

	// create object, register routes to the mux, and return it
	server := &Server{
		cm:         cm,
		db:         db,
		store:      store,
		sm:         sm,
		logger:     logger,
		authAPI:    authAPI,
		corporaAPI: corporaAPI,
		setsAPI:    setsAPI,
		wordsAPI:   wordsAPI,
		statsAPI:   statsAPI,
		serverAPI:  serverAPI,
		apiMux:     http.NewServeMux(),
	}

	apiMux := http.NewServeMux()

	server.authAPI.RegisterRoutes(apiMux)
	server.corporaAPI.RegisterRoutes(apiMux)
	server.setsAPI.RegisterRoutes(apiMux)
	server.wordsAPI.RegisterRoutes(apiMux)
	server.statsAPI.RegisterRoutes(apiMux)
	server.serverAPI.RegisterRoutes(apiMux)

	// Make sure api functions must pass through authentication first
	authedAPI := server.authAPI.Authenticate(apiMux)
	// ... except for the health check, which is unauthed so something like docker can use it
	server.apiMux.HandleFunc("/api/health", server.serverAPI.handleHealthCheck)

	server.apiMux.Handle("/api/", server.logRequests(authedAPI))

	return server, nil
}

// logRequests wraps the API mux with debug-level request logging.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("API request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr),
		)
		next.ServeHTTP(w, r)
	})
}

// Close releases the server's store resources. The database connection is
// owned by the run loop.
func (s *Server) Close() {
	s.store.Close()
}
