package model

import (
	"fmt"
	"time"
)

// Signal is the four-way crossover classification.
type Signal int

const (
	NoCrossover Signal = iota
	GoldenCross
	DeathCross
	InsufficientData
)

// String returns the wire form used by the JSON API.
func (s Signal) String() string {
	switch s {
	case GoldenCross:
		return "golden_cross"
	case DeathCross:
		return "death_cross"
	case InsufficientData:
		return "insufficient_data"
	default:
		return "no_crossover"
	}
}

// IsCross reports whether the signal is an actual crossover event.
func (s Signal) IsCross() bool {
	return s == GoldenCross || s == DeathCross
}

// MarshalJSON emits the string form.
func (s Signal) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON parses the string form.
func (s *Signal) UnmarshalJSON(data []byte) error {
	v, err := ParseSignal(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSignal converts a wire string back to a Signal.
func ParseSignal(v string) (Signal, error) {
	switch v {
	case "golden_cross":
		return GoldenCross, nil
	case "death_cross":
		return DeathCross, nil
	case "no_crossover":
		return NoCrossover, nil
	case "insufficient_data":
		return InsufficientData, nil
	}
	return NoCrossover, fmt.Errorf("unknown signal %q", v)
}

// CrossoverResult is the outcome of one detector run.
type CrossoverResult struct {
	Symbol   string    `json:"symbol"`
	Interval Interval  `json:"interval"`
	Signal   Signal    `json:"signal"`
	AsOf     time.Time `json:"as_of"`
}

// SymbolSnapshot is one dashboard row: latest price plus both timeframe signals.
type SymbolSnapshot struct {
	Symbol string           `json:"symbol"`
	Price  *float64         `json:"price"`
	Daily  *CrossoverResult `json:"daily"`
	Hourly *CrossoverResult `json:"hourly"`
}
