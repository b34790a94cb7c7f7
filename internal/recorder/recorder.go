package recorder

import (
	"time"

	"CrossWatch/internal/model"
)

// SignalEvent is one detector evaluation worth keeping.
type SignalEvent struct {
	Symbol   string
	Interval model.Interval
	Signal   model.Signal
	Price    float64
	AsOf     time.Time
}

// Recorder persists signal history and the last-seen signal per
// (symbol, interval), which the alert sweep uses to notify only on changes.
type Recorder interface {
	RecordSignal(evt *SignalEvent) error
	LastSignal(symbol string, interval model.Interval) (model.Signal, bool, error)
	SetLastSignal(symbol string, interval model.Interval, signal model.Signal) error
	Close() error
}
