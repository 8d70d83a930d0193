package sqlite

import (
	"database/sql"

	"github.com/caretend/caretend/internal/models"
)

// Log tables are append-only; there are no update or delete paths.

func (s *Store) AddDoseEvent(ev models.DoseEvent) error {
	_, err := s.db.Exec(`
		INSERT INTO dose_events (id, date, medication_id, taken, time)
		VALUES (?, ?, ?, ?, ?)`,
		ev.ID, ev.Date, ev.MedicationID, ev.Taken, ev.Time)
	return err
}

func (s *Store) GetDoseEvents(date string) ([]models.DoseEvent, error) {
	rows, err := s.db.Query(`
		SELECT id, date, medication_id, taken, time
		FROM dose_events WHERE date = ? ORDER BY time`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.DoseEvent
	for rows.Next() {
		var ev models.DoseEvent
		if err := rows.Scan(&ev.ID, &ev.Date, &ev.MedicationID, &ev.Taken, &ev.Time); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (s *Store) AddVitalsEntry(entry models.VitalsEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO vitals_entries (id, date, time, systolic, diastolic, heart_rate, glucose, weight)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Date, entry.Time,
		nullInt(entry.Systolic), nullInt(entry.Diastolic), nullInt(entry.HeartRate),
		nullFloat(entry.Glucose), nullFloat(entry.Weight))
	return err
}

func (s *Store) GetVitalsEntries(date string) ([]models.VitalsEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, date, time, systolic, diastolic, heart_rate, glucose, weight
		FROM vitals_entries WHERE date = ? ORDER BY time`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.VitalsEntry
	for rows.Next() {
		var entry models.VitalsEntry
		var systolic, diastolic, heartRate sql.NullInt64
		var glucose, weight sql.NullFloat64

		err := rows.Scan(&entry.ID, &entry.Date, &entry.Time,
			&systolic, &diastolic, &heartRate, &glucose, &weight)
		if err != nil {
			return nil, err
		}

		entry.Systolic = intFromNull(systolic)
		entry.Diastolic = intFromNull(diastolic)
		entry.HeartRate = intFromNull(heartRate)
		entry.Glucose = floatFromNull(glucose)
		entry.Weight = floatFromNull(weight)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *Store) AddMealEntry(entry models.MealEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO meal_entries (id, date, time, meal_type, description)
		VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.Date, entry.Time, entry.MealType, entry.Description)
	return err
}

func (s *Store) GetMealEntries(date string) ([]models.MealEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, date, time, meal_type, description
		FROM meal_entries WHERE date = ? ORDER BY time`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.MealEntry
	for rows.Next() {
		var entry models.MealEntry
		if err := rows.Scan(&entry.ID, &entry.Date, &entry.Time, &entry.MealType, &entry.Description); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *Store) AddMoodEntry(entry models.MoodEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO mood_entries (id, date, time, rating, note)
		VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.Date, entry.Time, entry.Rating, entry.Note)
	return err
}

func (s *Store) GetMoodEntries(date string) ([]models.MoodEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, date, time, rating, note
		FROM mood_entries WHERE date = ? ORDER BY time`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.MoodEntry
	for rows.Next() {
		var entry models.MoodEntry
		if err := rows.Scan(&entry.ID, &entry.Date, &entry.Time, &entry.Rating, &entry.Note); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *Store) AddHydrationEntry(entry models.HydrationEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO hydration_entries (id, date, glasses)
		VALUES (?, ?, ?)`,
		entry.ID, entry.Date, entry.Glasses)
	return err
}

func (s *Store) GetHydrationEntries(date string) ([]models.HydrationEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, date, glasses
		FROM hydration_entries WHERE date = ?`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.HydrationEntry
	for rows.Next() {
		var entry models.HydrationEntry
		if err := rows.Scan(&entry.ID, &entry.Date, &entry.Glasses); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *Store) AddSleepEntry(entry models.SleepEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO sleep_entries (id, date, hours, quality)
		VALUES (?, ?, ?, ?)`,
		entry.ID, entry.Date, entry.Hours, entry.Quality)
	return err
}

func (s *Store) GetSleepEntries(date string) ([]models.SleepEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, date, hours, quality
		FROM sleep_entries WHERE date = ?`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.SleepEntry
	for rows.Next() {
		var entry models.SleepEntry
		if err := rows.Scan(&entry.ID, &entry.Date, &entry.Hours, &entry.Quality); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func intFromNull(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func floatFromNull(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
