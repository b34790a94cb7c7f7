package strategy

import (
	"CrossWatch/internal/calculator"
	"CrossWatch/internal/model"
)

// Method selects how the two moving averages are computed.
type Method string

const (
	MethodSMA Method = "sma"
	MethodEMA Method = "ema"
)

// Detect classifies the most recent bar of the series as a Golden Cross,
// Death Cross, or neither, using simple moving averages over the short and
// long windows. Equality on the previous bar counts as not-yet-crossed, so
// moving from equal to strictly above is a valid Golden Cross. The detector
// is stateless; identical input always yields the identical signal.
func Detect(bars []model.OHLCV, shortWindow, longWindow int) model.Signal {
	return DetectWithMethod(bars, shortWindow, longWindow, MethodSMA)
}

// DetectWithMethod is Detect with a configurable averaging method.
func DetectWithMethod(bars []model.OHLCV, shortWindow, longWindow int, method Method) model.Signal {
	if shortWindow < 1 || longWindow < 1 || shortWindow >= longWindow {
		return model.InsufficientData
	}
	if len(bars) < longWindow {
		return model.InsufficientData
	}

	closes := calculator.ExtractCloses(bars)
	shortMA, err := average(closes, shortWindow, method)
	if err != nil {
		return model.InsufficientData
	}
	longMA, err := average(closes, longWindow, method)
	if err != nil {
		return model.InsufficientData
	}

	// Align the short series to the long one; both end at the latest bar.
	shortMA = shortMA[len(shortMA)-len(longMA):]

	n := len(longMA)
	if n < 2 {
		// Only one aligned pair: no previous state to cross from.
		return model.NoCrossover
	}

	prevShort, prevLong := shortMA[n-2], longMA[n-2]
	curShort, curLong := shortMA[n-1], longMA[n-1]

	switch {
	case prevShort <= prevLong && curShort > curLong:
		return model.GoldenCross
	case prevShort >= prevLong && curShort < curLong:
		return model.DeathCross
	}
	return model.NoCrossover
}

func average(closes []float64, window int, method Method) ([]float64, error) {
	if method == MethodEMA {
		return calculator.EMASeries(closes, window)
	}
	return calculator.SMASeries(closes, window)
}
