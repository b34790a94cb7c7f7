package recorder

import "CrossWatch/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordSignal(_ *SignalEvent) error { return nil }
func (n *NoopRecorder) LastSignal(_ string, _ model.Interval) (model.Signal, bool, error) {
	return model.NoCrossover, false, nil
}
func (n *NoopRecorder) SetLastSignal(_ string, _ model.Interval, _ model.Signal) error { return nil }
func (n *NoopRecorder) Close() error                                                   { return nil }
