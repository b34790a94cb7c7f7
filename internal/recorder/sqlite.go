package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"CrossWatch/internal/model"
)

// SQLiteRecorder persists signal history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboard reads don't block sweep writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS signal_events (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			symbol    TEXT NOT NULL,
			interval  TEXT NOT NULL,
			signal    TEXT NOT NULL,
			price     REAL,
			as_of     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_symbol ON signal_events(symbol, interval, timestamp)`,

		`CREATE TABLE IF NOT EXISTS last_signals (
			symbol     TEXT NOT NULL,
			interval   TEXT NOT NULL,
			signal     TEXT NOT NULL,
			updated_at INTEGER NOT NULL,
			PRIMARY KEY (symbol, interval)
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordSignal(evt *SignalEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO signal_events
		(timestamp, symbol, interval, signal, price, as_of)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), evt.Symbol, string(evt.Interval),
		evt.Signal.String(), evt.Price, evt.AsOf.Unix(),
	)
	return err
}

func (r *SQLiteRecorder) LastSignal(symbol string, interval model.Interval) (model.Signal, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var raw string
	err := r.db.QueryRow(`SELECT signal FROM last_signals WHERE symbol = ? AND interval = ?`,
		symbol, string(interval)).Scan(&raw)
	if err == sql.ErrNoRows {
		return model.NoCrossover, false, nil
	}
	if err != nil {
		return model.NoCrossover, false, err
	}
	sig, err := model.ParseSignal(raw)
	if err != nil {
		return model.NoCrossover, false, err
	}
	return sig, true, nil
}

func (r *SQLiteRecorder) SetLastSignal(symbol string, interval model.Interval, signal model.Signal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO last_signals (symbol, interval, signal, updated_at)
		VALUES (?,?,?,?)
		ON CONFLICT(symbol, interval) DO UPDATE SET signal = excluded.signal, updated_at = excluded.updated_at`,
		symbol, string(interval), signal.String(), time.Now().Unix(),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
