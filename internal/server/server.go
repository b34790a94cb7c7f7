package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"CrossWatch/internal/collector"
	"CrossWatch/internal/watchlist"

	"github.com/gorilla/mux"
)

// Server exposes the dashboard and JSON API.
type Server struct {
	Router    *mux.Router
	Collector *collector.Collector
	Watchlist *watchlist.Store

	httpServer *http.Server
}

// NewServer creates the server and registers all routes.
func NewServer(col *collector.Collector, wl *watchlist.Store, port int) *Server {
	s := &Server{
		Router:    mux.NewRouter(),
		Collector: col,
		Watchlist: wl,
	}

	s.Router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.Router.HandleFunc("/add_stock", s.handleAddStock).Methods(http.MethodPost)
	s.Router.HandleFunc("/remove_stock", s.handleRemoveStock).Methods(http.MethodPost)
	s.Router.HandleFunc("/api/signal/{symbol}", s.handleSignal).Methods(http.MethodGet)
	s.Router.HandleFunc("/api/watchlist", s.handleWatchlist).Methods(http.MethodGet)
	s.Router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.Router.HandleFunc("/api", s.handleAPIIndex).Methods(http.MethodGet)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.Router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}
	return s
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	log.Printf("[INFO] http server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeSuccess(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, map[string]string{"success": msg})
}
