package watchlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"CrossWatch/internal/model"
)

var (
	// ErrDuplicateSymbol is returned when adding a symbol already tracked.
	ErrDuplicateSymbol = errors.New("symbol already in watchlist")
	// ErrNotFound is returned when removing a symbol that is not tracked.
	ErrNotFound = errors.New("symbol not in watchlist")
	// ErrEmptySymbol is returned when a symbol normalizes to nothing.
	ErrEmptySymbol = errors.New("symbol is required")
)

// Store persists the set of tracked symbols to a JSON file holding a flat
// ordered array of strings. Add/Remove serialize the read-modify-write so
// concurrent requests cannot lose updates.
type Store struct {
	mu       sync.Mutex
	filePath string
	symbols  []string
	addedAt  map[string]time.Time
}

// Normalize canonicalizes a symbol the way the watchlist stores it.
func Normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// NewStore loads the watchlist file, or seeds it from the comma-separated
// envSeed list when the file does not exist yet.
func NewStore(filePath, envSeed string) (*Store, error) {
	s := &Store{
		filePath: filePath,
		addedAt:  make(map[string]time.Time),
	}

	data, err := os.ReadFile(filePath)
	switch {
	case err == nil:
		var symbols []string
		if err := json.Unmarshal(data, &symbols); err != nil {
			return nil, fmt.Errorf("parse watchlist file: %w", err)
		}
		for _, sym := range symbols {
			sym = Normalize(sym)
			if sym == "" {
				continue
			}
			if _, dup := s.addedAt[sym]; dup {
				continue
			}
			s.symbols = append(s.symbols, sym)
			s.addedAt[sym] = time.Now()
		}
	case os.IsNotExist(err):
		for _, sym := range strings.Split(envSeed, ",") {
			sym = Normalize(sym)
			if sym == "" {
				continue
			}
			if _, dup := s.addedAt[sym]; dup {
				continue
			}
			s.symbols = append(s.symbols, sym)
			s.addedAt[sym] = time.Now()
		}
		if err := s.save(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("read watchlist file: %w", err)
	}

	return s, nil
}

// Add tracks a new symbol. The store is unchanged when the symbol is empty
// or already present.
func (s *Store) Add(symbol string) error {
	sym := Normalize(symbol)
	if sym == "" {
		return ErrEmptySymbol
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.addedAt[sym]; dup {
		return ErrDuplicateSymbol
	}
	s.symbols = append(s.symbols, sym)
	s.addedAt[sym] = time.Now()
	if err := s.save(); err != nil {
		// roll back so memory matches disk
		s.symbols = s.symbols[:len(s.symbols)-1]
		delete(s.addedAt, sym)
		return err
	}
	return nil
}

// Remove stops tracking a symbol. The store is unchanged when absent.
func (s *Store) Remove(symbol string) error {
	sym := Normalize(symbol)
	if sym == "" {
		return ErrEmptySymbol
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, v := range s.symbols {
		if v == sym {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	added := s.addedAt[sym]
	s.symbols = append(s.symbols[:idx:idx], s.symbols[idx+1:]...)
	delete(s.addedAt, sym)
	if err := s.save(); err != nil {
		rest := s.symbols[idx:]
		s.symbols = append(append(s.symbols[:idx:idx], sym), rest...)
		s.addedAt[sym] = added
		return err
	}
	return nil
}

// List returns the tracked symbols in insertion order.
func (s *Store) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.symbols))
	copy(out, s.symbols)
	return out
}

// Entries returns the tracked symbols with their added-at times.
func (s *Store) Entries() []model.WatchlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.WatchlistEntry, len(s.symbols))
	for i, sym := range s.symbols {
		out[i] = model.WatchlistEntry{Symbol: sym, AddedAt: s.addedAt[sym]}
	}
	return out
}

func (s *Store) save() error {
	if dir := filepath.Dir(s.filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create watchlist dir: %w", err)
		}
	}
	symbols := s.symbols
	if symbols == nil {
		symbols = []string{}
	}
	data, err := json.MarshalIndent(symbols, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.filePath, data, 0644); err != nil {
		return fmt.Errorf("write watchlist file: %w", err)
	}
	return nil
}
