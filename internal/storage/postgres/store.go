package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Store backs a care circle that syncs through one shared PostgreSQL
// database instead of a local file. The schema mirrors the on-device
// store so the two stay interchangeable behind the Provider interface.
type Store struct {
	connString string
	db         *sql.DB
}

func NewStore(connString string) *Store {
	return &Store{connString: connString}
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
		active BOOLEAN NOT NULL DEFAULT TRUE,
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
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		deleted_at TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS dose_events (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		medication_id TEXT NOT NULL,
		taken BOOLEAN NOT NULL,
		time TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS vitals_entries (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		time TEXT NOT NULL DEFAULT '',
		systolic INTEGER,
		diastolic INTEGER,
		heart_rate INTEGER,
		glucose DOUBLE PRECISION,
		weight DOUBLE PRECISION
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
		hours DOUBLE PRECISION NOT NULL,
		quality TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS overrides (
		date TEXT NOT NULL,
		routine_id TEXT NOT NULL,
		item_id TEXT NOT NULL,
		done BOOLEAN NOT NULL,
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
	if err := s.connect(); err != nil {
		return err
	}
	return s.createSchema()
}

// Load for the shared store is the same as Init: the server is the
// source of truth and the schema bootstrap is idempotent.
func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	return s.Init()
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.connString
}

func (s *Store) connect() error {
	db, err := sql.Open("postgres", s.connString)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to reach care circle database: %w", err)
	}
	s.db = db
	return nil
}

func (s *Store) createSchema() error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
