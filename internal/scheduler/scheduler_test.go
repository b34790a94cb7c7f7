package scheduler

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"CrossWatch/internal/collector"
	"CrossWatch/internal/model"
	"CrossWatch/internal/recorder"
	"CrossWatch/internal/strategy"
	"CrossWatch/internal/watchlist"
)

type captureSender struct {
	messages []string
}

func (c *captureSender) SendWithRetry(_ context.Context, text string, _ int) error {
	c.messages = append(c.messages, text)
	return nil
}

func goldenBars() []model.OHLCV {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	closes := []float64{100, 99, 101}
	bars := make([]model.OHLCV, len(closes))
	for i, cl := range closes {
		bars[i] = model.OHLCV{Time: base.AddDate(0, 0, i), Close: cl}
	}
	return bars
}

func flatBars() []model.OHLCV {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, 3)
	for i := range bars {
		bars[i] = model.OHLCV{Time: base.AddDate(0, 0, i), Close: 100}
	}
	return bars
}

func newTestScheduler(t *testing.T, fetcher collector.Fetcher, seed string) (*Scheduler, *captureSender) {
	t.Helper()
	wl, err := watchlist.NewStore(filepath.Join(t.TempDir(), "watchlist.json"), seed)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	col := collector.NewCollector(fetcher, 1, 2, strategy.MethodSMA, 365, 1440)
	sender := &captureSender{}
	s := NewScheduler(context.Background(), col, wl, sender, recorder.NewNoopRecorder())
	return s, sender
}

func TestSweep_NotifiesOnlyNewCrosses(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Price:      101,
		DailyData:  goldenBars(),
		HourlyData: flatBars(),
	}
	s, sender := newTestScheduler(t, fetcher, "AAPL")

	s.RunSweepNow()
	if len(sender.messages) != 1 {
		t.Fatalf("expected one alert, got %d", len(sender.messages))
	}
	if !strings.Contains(sender.messages[0], "AAPL (1d)") {
		t.Errorf("alert missing daily cross: %q", sender.messages[0])
	}
	if strings.Contains(sender.messages[0], "1h") {
		t.Errorf("flat hourly series must not alert: %q", sender.messages[0])
	}

	// Same signal again: deduplicated, no second alert.
	s.RunSweepNow()
	if len(sender.messages) != 1 {
		t.Fatalf("repeated signal re-alerted: %d messages", len(sender.messages))
	}

	// Signal flips to a death cross: alert again.
	fetcher.DailyData = []model.OHLCV{
		{Time: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Close: 100},
		{Time: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), Close: 101},
		{Time: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC), Close: 99},
	}
	s.RunSweepNow()
	if len(sender.messages) != 2 {
		t.Fatalf("changed signal should alert, got %d messages", len(sender.messages))
	}
	if !strings.Contains(sender.messages[1], "Death Cross") {
		t.Errorf("expected death cross alert: %q", sender.messages[1])
	}
}

func TestSweep_SourceFailureStaysSilent(t *testing.T) {
	fetcher := &collector.MockFetcher{Err: collector.ErrDataUnavailable}
	s, sender := newTestScheduler(t, fetcher, "AAPL")

	s.RunSweepNow()
	if len(sender.messages) != 0 {
		t.Errorf("unavailable source must not alert: %v", sender.messages)
	}
}

func TestHandleCommand_WatchlistLifecycle(t *testing.T) {
	s, _ := newTestScheduler(t, &collector.MockFetcher{Price: 100}, "")

	if got := s.HandleCommand("/watchlist"); got != "Watchlist is empty." {
		t.Errorf("empty watchlist: %q", got)
	}
	if got := s.HandleCommand("/addstock reliance.ns"); got != "Added RELIANCE.NS to watchlist." {
		t.Errorf("add: %q", got)
	}
	if got := s.HandleCommand("/addstock RELIANCE.NS"); got != "RELIANCE.NS is already in watchlist." {
		t.Errorf("duplicate add: %q", got)
	}
	if got := s.HandleCommand("/removestock TSLA"); got != "TSLA not found in watchlist." {
		t.Errorf("remove missing: %q", got)
	}
	if got := s.HandleCommand("/removestock reliance.ns"); got != "Removed RELIANCE.NS from watchlist." {
		t.Errorf("remove: %q", got)
	}
}

func TestHandleCommand_SignalAndPrice(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Price:      101.5,
		DailyData:  goldenBars(),
		HourlyData: flatBars(),
	}
	s, _ := newTestScheduler(t, fetcher, "")

	got := s.HandleCommand("/signal aapl")
	if !strings.Contains(got, "AAPL") || !strings.Contains(got, "Golden Cross") {
		t.Errorf("signal reply: %q", got)
	}

	got = s.HandleCommand("/price aapl")
	if !strings.Contains(got, "101.50") {
		t.Errorf("price reply: %q", got)
	}
}

func TestHandleCommand_UsageAndUnknown(t *testing.T) {
	s, _ := newTestScheduler(t, &collector.MockFetcher{}, "")

	if got := s.HandleCommand("/addstock"); got != "Usage: /addstock SYMBOL" {
		t.Errorf("missing arg: %q", got)
	}
	if got := s.HandleCommand("/signal"); got != "Usage: /signal SYMBOL" {
		t.Errorf("missing arg: %q", got)
	}
	if got := s.HandleCommand("/price"); got != "Usage: /price SYMBOL" {
		t.Errorf("missing arg: %q", got)
	}
	if got := s.HandleCommand("/bogus"); !strings.Contains(got, "/start") {
		t.Errorf("unknown command: %q", got)
	}
	if got := s.HandleCommand("/start"); !strings.Contains(got, "/addstock") {
		t.Errorf("help text: %q", got)
	}
}

func TestHandleCommand_PriceUnavailable(t *testing.T) {
	s, _ := newTestScheduler(t, &collector.MockFetcher{Err: collector.ErrDataUnavailable}, "")

	got := s.HandleCommand("/price NOPE")
	if !strings.Contains(got, "Could not fetch data for NOPE") {
		t.Errorf("price failure reply: %q", got)
	}
}
