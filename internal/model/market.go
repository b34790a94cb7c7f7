package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Interval identifies the bar timeframe of a price series.
type Interval string

const (
	IntervalDaily  Interval = "1d"
	IntervalHourly Interval = "1h"
)

// Valid reports whether the interval is one the system knows how to fetch.
func (i Interval) Valid() bool {
	return i == IntervalDaily || i == IntervalHourly
}
