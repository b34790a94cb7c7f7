package model

import "time"

// WatchlistEntry is one tracked symbol. Symbols are exchange-suffixed
// tickers (e.g. RELIANCE.NS) and appear at most once.
type WatchlistEntry struct {
	Symbol  string    `json:"symbol"`
	AddedAt time.Time `json:"added_at"`
}
