package collector

import (
	"fmt"
	"log"
	"time"

	"CrossWatch/internal/model"
	"CrossWatch/internal/strategy"
)

// Collector evaluates crossover signals for watched symbols. Every
// evaluation fetches a fresh series; nothing is cached between calls.
type Collector struct {
	Fetcher        Fetcher
	ShortWindow    int
	LongWindow     int
	Method         strategy.Method
	DailyLookback  int
	HourlyLookback int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, shortWindow, longWindow int, method strategy.Method, dailyLookback, hourlyLookback int) *Collector {
	return &Collector{
		Fetcher:        fetcher,
		ShortWindow:    shortWindow,
		LongWindow:     longWindow,
		Method:         method,
		DailyLookback:  dailyLookback,
		HourlyLookback: hourlyLookback,
	}
}

func (c *Collector) lookback(interval model.Interval) int {
	if interval == model.IntervalHourly {
		return c.HourlyLookback
	}
	return c.DailyLookback
}

// Evaluate fetches the symbol's series at the given interval and runs the
// crossover detector. When the source cannot answer, the returned result
// carries InsufficientData for presentation and the error surfaces the
// distinction to the caller.
func (c *Collector) Evaluate(symbol string, interval model.Interval) (model.CrossoverResult, error) {
	res := model.CrossoverResult{
		Symbol:   symbol,
		Interval: interval,
		Signal:   model.InsufficientData,
		AsOf:     time.Now(),
	}

	bars, err := c.Fetcher.FetchBars(symbol, interval, c.lookback(interval))
	if err != nil {
		return res, fmt.Errorf("fetch %s %s bars: %w", symbol, interval, err)
	}
	if len(bars) > 0 {
		res.AsOf = bars[len(bars)-1].Time
	}
	res.Signal = strategy.DetectWithMethod(bars, c.ShortWindow, c.LongWindow, c.Method)
	return res, nil
}

// CurrentPrice returns the latest closing price for the symbol.
func (c *Collector) CurrentPrice(symbol string) (float64, error) {
	price, err := c.Fetcher.FetchCurrentPrice(symbol)
	if err != nil {
		return 0, fmt.Errorf("fetch %s price: %w", symbol, err)
	}
	return price, nil
}

// Snapshot assembles one dashboard row: latest price plus daily and hourly
// signals. Each field degrades independently so a failed price lookup does
// not hide a computable signal.
func (c *Collector) Snapshot(symbol string) model.SymbolSnapshot {
	snap := model.SymbolSnapshot{Symbol: symbol}

	if price, err := c.CurrentPrice(symbol); err != nil {
		log.Printf("[WARN] price for %s: %v", symbol, err)
	} else {
		snap.Price = &price
	}

	daily, err := c.Evaluate(symbol, model.IntervalDaily)
	if err != nil {
		log.Printf("[WARN] daily signal for %s: %v", symbol, err)
	}
	snap.Daily = &daily

	hourly, err := c.Evaluate(symbol, model.IntervalHourly)
	if err != nil {
		log.Printf("[WARN] hourly signal for %s: %v", symbol, err)
	}
	snap.Hourly = &hourly

	return snap
}
