package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Store is the repository for the whole platform document. Every call
// loads a fresh snapshot from disk, runs the callback, and (for Update)
// rewrites the full document on success. A single mutex serializes all
// access so concurrent requests cannot interleave partial writes.
type Store struct {
	mu   sync.Mutex
	path string
}

// Open validates the database file at path. A missing file is fine; it
// is created on the first Update.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if _, err := s.read(); err != nil {
		return nil, fmt.Errorf("failed to open store at %s: %w", path, err)
	}
	return s, nil
}

// View runs fn against a read-only snapshot of the document.
func (s *Store) View(fn func(db *Database) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.read()
	if err != nil {
		return err
	}
	return fn(db)
}

// Update runs fn against a snapshot and persists the whole document if
// fn succeeds. On error the snapshot is discarded, so partially applied
// mutations never reach disk.
func (s *Store) Update(fn func(db *Database) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.read()
	if err != nil {
		return err
	}
	if err := fn(db); err != nil {
		return err
	}
	return s.write(db)
}

func (s *Store) read() (*Database, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return newDatabase(), nil
		}
		return nil, fmt.Errorf("failed to read database file: %w", err)
	}

	db := newDatabase()
	if err := json.Unmarshal(data, db); err != nil {
		return nil, fmt.Errorf("failed to parse database file: %w", err)
	}
	db.normalize()
	return db, nil
}

// write rewrites the document through a temp file and rename so a crash
// mid-write cannot leave a truncated database behind.
func (s *Store) write(db *Database) error {
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode database: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".greengoals-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp database file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write database: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp database file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace database file: %w", err)
	}
	return nil
}

// Seed populates the challenge catalog with the stock eco-challenges
// when the store is empty.
func (s *Store) Seed() error {
	return s.Update(func(db *Database) error {
		if len(db.Challenges) > 0 {
			return nil
		}
		db.Challenges = stockChallenges()
		log.WithField("challenges", len(db.Challenges)).Info("Seeded challenge catalog")
		return nil
	})
}
