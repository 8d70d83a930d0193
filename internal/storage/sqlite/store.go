package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store is the default on-device Provider, one SQLite file per care
// recipient.
type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS care_plan (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		data TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS plan_snapshots (
		date TEXT PRIMARY KEY,
		data TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS medications (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		dosage TEXT NOT NULL DEFAULT '',
		time_slot TEXT NOT NULL DEFAULT '',
		active INTEGER NOT NULL DEFAULT 1,
		deleted_at TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		time TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		provider TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		completed INTEGER NOT NULL DEFAULT 0,
		deleted_at TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS dose_events (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		medication_id TEXT NOT NULL,
		taken INTEGER NOT NULL,
		time TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS vitals_entries (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		time TEXT NOT NULL DEFAULT '',
		systolic INTEGER,
		diastolic INTEGER,
		heart_rate INTEGER,
		glucose REAL,
		weight REAL
	)`,
	`CREATE TABLE IF NOT EXISTS meal_entries (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		time TEXT NOT NULL DEFAULT '',
		meal_type TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS mood_entries (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		time TEXT NOT NULL DEFAULT '',
		rating INTEGER NOT NULL,
		note TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS hydration_entries (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		glasses INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sleep_entries (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		hours REAL NOT NULL,
		quality TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS overrides (
		date TEXT NOT NULL,
		routine_id TEXT NOT NULL,
		item_id TEXT NOT NULL,
		done INTEGER NOT NULL,
		timestamp TEXT NOT NULL DEFAULT '',
		snooze_until_min INTEGER,
		PRIMARY KEY (date, routine_id, item_id)
	)`,
	`CREATE TABLE IF NOT EXISTS contacts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		relationship TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'helper'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_date ON appointments(date)`,
	`CREATE INDEX IF NOT EXISTS idx_dose_events_date ON dose_events(date)`,
	`CREATE INDEX IF NOT EXISTS idx_vitals_entries_date ON vitals_entries(date)`,
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return s.createSchema()
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'caretend init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Idempotent: brings older databases up to the current table set.
	return s.createSchema()
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

func (s *Store) createSchema() error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
