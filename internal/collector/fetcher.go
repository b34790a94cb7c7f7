package collector

import (
	"errors"

	"CrossWatch/internal/model"
)

// ErrDataUnavailable means the market-data source could not answer at all:
// network failure, unknown symbol, or an empty response. Distinct from a
// series that is merely too short for the configured windows.
var ErrDataUnavailable = errors.New("market data unavailable")

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchBars returns up to lookback bars for the symbol at the given
	// interval, ascending by time.
	FetchBars(symbol string, interval model.Interval, lookback int) ([]model.OHLCV, error)
	FetchCurrentPrice(symbol string) (float64, error)
	Name() string
}
