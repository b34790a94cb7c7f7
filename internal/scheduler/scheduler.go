package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"CrossWatch/internal/collector"
	"CrossWatch/internal/model"
	"CrossWatch/internal/notifier"
	"CrossWatch/internal/recorder"
	"CrossWatch/internal/watchlist"

	"github.com/robfig/cron/v3"
)

// AlertSender delivers sweep alerts. Satisfied by notifier.TelegramNotifier.
type AlertSender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler runs the periodic alert sweep and dispatches bot commands.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Watchlist *watchlist.Store
	Sender    AlertSender
	Recorder  recorder.Recorder
	Ctx       context.Context

	mu       sync.Mutex
	lastSeen map[string]model.Signal
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, wl *watchlist.Store, sender AlertSender, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Watchlist: wl,
		Sender:    sender,
		Recorder:  rec,
		Ctx:       ctx,
		lastSeen:  make(map[string]model.Signal),
	}
}

// RegisterAll registers the hourly and daily sweep tasks.
func (s *Scheduler) RegisterAll(hourlyCron, dailyCron string) error {
	if _, err := s.Cron.AddFunc(hourlyCron, s.sweep); err != nil {
		return fmt.Errorf("register hourly sweep: %w", err)
	}
	if _, err := s.Cron.AddFunc(dailyCron, s.sweep); err != nil {
		return fmt.Errorf("register daily sweep: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunSweepNow executes the alert sweep immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunSweepNow() {
	s.sweep()
}

func lastKey(symbol string, interval model.Interval) string {
	return symbol + "|" + string(interval)
}

// lastSignal consults the in-memory cache first, then the recorder, so the
// dedup state survives restarts when SQLite is configured.
func (s *Scheduler) lastSignal(symbol string, interval model.Interval) model.Signal {
	s.mu.Lock()
	if sig, ok := s.lastSeen[lastKey(symbol, interval)]; ok {
		s.mu.Unlock()
		return sig
	}
	s.mu.Unlock()

	sig, ok, err := s.Recorder.LastSignal(symbol, interval)
	if err != nil {
		log.Printf("[WARN] last signal for %s %s: %v", symbol, interval, err)
		return model.NoCrossover
	}
	if !ok {
		return model.NoCrossover
	}
	return sig
}

func (s *Scheduler) markSignal(symbol string, interval model.Interval, sig model.Signal) {
	s.mu.Lock()
	s.lastSeen[lastKey(symbol, interval)] = sig
	s.mu.Unlock()
	if err := s.Recorder.SetLastSignal(symbol, interval, sig); err != nil {
		log.Printf("[ERROR] persist last signal for %s %s: %v", symbol, interval, err)
	}
}

// sweep walks the watchlist, evaluates both timeframes per symbol, records
// every evaluation, and notifies only new crossovers: the signal changed
// since last seen and is an actual cross.
func (s *Scheduler) sweep() {
	symbols := s.Watchlist.List()
	log.Printf("[INFO] running alert sweep over %d symbols", len(symbols))

	var alerts []model.CrossoverResult
	for _, symbol := range symbols {
		price, err := s.Collector.CurrentPrice(symbol)
		if err != nil {
			log.Printf("[WARN] sweep price for %s: %v", symbol, err)
		}

		for _, interval := range []model.Interval{model.IntervalDaily, model.IntervalHourly} {
			res, err := s.Collector.Evaluate(symbol, interval)
			if err != nil {
				// Source could not answer; no state change, no alert.
				log.Printf("[WARN] sweep %s %s: %v", symbol, interval, err)
				continue
			}

			if err := s.Recorder.RecordSignal(&recorder.SignalEvent{
				Symbol:   symbol,
				Interval: interval,
				Signal:   res.Signal,
				Price:    price,
				AsOf:     res.AsOf,
			}); err != nil {
				log.Printf("[ERROR] record signal for %s %s: %v", symbol, interval, err)
			}

			if res.Signal.IsCross() && res.Signal != s.lastSignal(symbol, interval) {
				alerts = append(alerts, res)
				s.markSignal(symbol, interval, res.Signal)
			}
		}
	}

	if len(alerts) == 0 {
		return
	}
	if err := s.Sender.SendWithRetry(s.Ctx, notifier.FormatAlert(alerts), 3); err != nil {
		log.Printf("[ERROR] send alert: %v", err)
	}
}

// HandleCommand processes a bot command and returns the reply text.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	cmd := strings.ToLower(fields[0])
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch cmd {
	case "/start":
		return notifier.FormatHelp()

	case "/watchlist":
		return notifier.FormatWatchlist(s.Watchlist.List())

	case "/addstock":
		if arg == "" {
			return "Usage: /addstock SYMBOL"
		}
		sym := watchlist.Normalize(arg)
		switch err := s.Watchlist.Add(sym); {
		case err == nil:
			return fmt.Sprintf("Added %s to watchlist.", sym)
		case errors.Is(err, watchlist.ErrDuplicateSymbol):
			return fmt.Sprintf("%s is already in watchlist.", sym)
		default:
			log.Printf("[ERROR] add %s: %v", sym, err)
			return fmt.Sprintf("Failed to add %s — check logs", sym)
		}

	case "/removestock":
		if arg == "" {
			return "Usage: /removestock SYMBOL"
		}
		sym := watchlist.Normalize(arg)
		switch err := s.Watchlist.Remove(sym); {
		case err == nil:
			return fmt.Sprintf("Removed %s from watchlist.", sym)
		case errors.Is(err, watchlist.ErrNotFound):
			return fmt.Sprintf("%s not found in watchlist.", sym)
		default:
			log.Printf("[ERROR] remove %s: %v", sym, err)
			return fmt.Sprintf("Failed to remove %s — check logs", sym)
		}

	case "/signal":
		if arg == "" {
			return "Usage: /signal SYMBOL"
		}
		sym := watchlist.Normalize(arg)
		daily, err := s.Collector.Evaluate(sym, model.IntervalDaily)
		if err != nil {
			log.Printf("[WARN] signal %s daily: %v", sym, err)
		}
		hourly, err := s.Collector.Evaluate(sym, model.IntervalHourly)
		if err != nil {
			log.Printf("[WARN] signal %s hourly: %v", sym, err)
		}
		return notifier.FormatSignalReport(sym, daily, hourly)

	case "/price":
		if arg == "" {
			return "Usage: /price SYMBOL"
		}
		sym := watchlist.Normalize(arg)
		price, err := s.Collector.CurrentPrice(sym)
		if err != nil {
			log.Printf("[WARN] price %s: %v", sym, err)
			return fmt.Sprintf("❌ Could not fetch data for %s", sym)
		}
		return notifier.FormatPrice(sym, price)

	default:
		return "Unknown command. Send /start for help."
	}
}
