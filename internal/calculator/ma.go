package calculator

import (
	"errors"

	"CrossWatch/internal/model"
)

// ErrInsufficientData is returned when a series is shorter than the window.
var ErrInsufficientData = errors.New("not enough data for moving average")

// SMASeries computes the simple moving average of prices over the given window.
// The result is aligned so that result[j] covers prices[j .. j+window-1];
// its length is len(prices)-window+1.
func SMASeries(prices []float64, window int) ([]float64, error) {
	if window < 1 {
		return nil, errors.New("window must be positive")
	}
	if len(prices) < window {
		return nil, ErrInsufficientData
	}

	out := make([]float64, 0, len(prices)-window+1)
	sum := 0.0
	for i, p := range prices {
		sum += p
		if i >= window {
			sum -= prices[i-window]
		}
		if i >= window-1 {
			out = append(out, sum/float64(window))
		}
	}
	return out, nil
}

// EMASeries computes the exponential moving average of prices over the given
// window, seeded with the SMA of the first window and smoothed with
// alpha = 2/(window+1). Alignment matches SMASeries.
func EMASeries(prices []float64, window int) ([]float64, error) {
	if window < 1 {
		return nil, errors.New("window must be positive")
	}
	if len(prices) < window {
		return nil, ErrInsufficientData
	}

	seed := 0.0
	for _, p := range prices[:window] {
		seed += p
	}
	seed /= float64(window)

	out := make([]float64, 0, len(prices)-window+1)
	out = append(out, seed)
	alpha := 2.0 / float64(window+1)
	ema := seed
	for _, p := range prices[window:] {
		ema = (p-ema)*alpha + ema
		out = append(out, ema)
	}
	return out, nil
}

// LatestSMA returns the most recent simple moving average value.
func LatestSMA(prices []float64, window int) (float64, error) {
	series, err := SMASeries(prices, window)
	if err != nil {
		return 0, err
	}
	return series[len(series)-1], nil
}

// ExtractCloses pulls the closing prices out of a bar series.
func ExtractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
