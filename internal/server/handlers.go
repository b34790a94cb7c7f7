package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"CrossWatch/internal/model"
	"CrossWatch/internal/watchlist"

	"github.com/gorilla/mux"
)

// signalResponse is the /api/signal payload: fresh daily and hourly
// evaluations plus the latest price (null when the source cannot answer).
type signalResponse struct {
	Symbol string                 `json:"symbol"`
	Price  *float64               `json:"price"`
	Daily  *model.CrossoverResult `json:"daily"`
	Hourly *model.CrossoverResult `json:"hourly"`
}

func (s *Server) handleAddStock(w http.ResponseWriter, r *http.Request) {
	sym := watchlist.Normalize(r.FormValue("symbol"))
	if sym == "" {
		writeError(w, http.StatusBadRequest, "Symbol is required")
		return
	}

	switch err := s.Watchlist.Add(sym); {
	case err == nil:
		writeSuccess(w, fmt.Sprintf("Added %s to watchlist", sym))
	case errors.Is(err, watchlist.ErrDuplicateSymbol):
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%s is already in watchlist", sym))
	default:
		log.Printf("[ERROR] add %s: %v", sym, err)
		writeError(w, http.StatusInternalServerError, "Failed to save watchlist")
	}
}

func (s *Server) handleRemoveStock(w http.ResponseWriter, r *http.Request) {
	sym := watchlist.Normalize(r.FormValue("symbol"))
	if sym == "" {
		writeError(w, http.StatusBadRequest, "Symbol is required")
		return
	}

	switch err := s.Watchlist.Remove(sym); {
	case err == nil:
		writeSuccess(w, fmt.Sprintf("Removed %s from watchlist", sym))
	case errors.Is(err, watchlist.ErrNotFound):
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%s not found in watchlist", sym))
	default:
		log.Printf("[ERROR] remove %s: %v", sym, err)
		writeError(w, http.StatusInternalServerError, "Failed to save watchlist")
	}
}

func (s *Server) handleSignal(w http.ResponseWriter, r *http.Request) {
	sym := watchlist.Normalize(mux.Vars(r)["symbol"])
	if sym == "" {
		writeError(w, http.StatusBadRequest, "Symbol is required")
		return
	}

	// Signals are always derived fresh; nothing is cached between requests.
	snap := s.Collector.Snapshot(sym)
	writeJSON(w, http.StatusOK, signalResponse{
		Symbol: sym,
		Price:  snap.Price,
		Daily:  snap.Daily,
		Hourly: snap.Hourly,
	})
}

func (s *Server) handleWatchlist(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"watchlist": s.Watchlist.List()})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "crosswatch",
	})
}

func (s *Server) handleAPIIndex(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": "crosswatch",
		"endpoints": []string{
			"GET  /                      dashboard",
			"POST /add_stock             add symbol (form field: symbol)",
			"POST /remove_stock          remove symbol (form field: symbol)",
			"GET  /api/signal/{symbol}   fresh daily+hourly crossover signals",
			"GET  /api/watchlist         current watchlist",
			"GET  /health                health check",
		},
	})
}
