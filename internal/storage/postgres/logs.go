package postgres

import (
	"database/sql"

	"github.com/caretend/caretend/internal/models"
)

func (s *Store) AddDoseEvent(ev models.DoseEvent) error {
	_, err := s.db.Exec(`
		INSERT INTO dose_events (id, date, medication_id, taken, time)
		VALUES ($1, $2, $3, $4, $5)`,
		ev.ID, ev.Date, ev.MedicationID, ev.Taken, ev.Time)
	return err
}

func (s *Store) GetDoseEvents(date string) ([]models.DoseEvent, error) {
	rows, err := s.db.Query(`
		SELECT id, date, medication_id, taken, time
		FROM dose_events WHERE date = $1 ORDER BY time`, date)
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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.Date, entry.Time,
		nullInt(entry.Systolic), nullInt(entry.Diastolic), nullInt(entry.HeartRate),
		nullFloat(entry.Glucose), nullFloat(entry.Weight))
	return err
}

func (s *Store) GetVitalsEntries(date string) ([]models.VitalsEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, date, time, systolic, diastolic, heart_rate, glucose, weight
		FROM vitals_entries WHERE date = $1 ORDER BY time`, date)
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
		VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, entry.Date, entry.Time, entry.MealType, entry.Description)
	return err
}

func (s *Store) GetMealEntries(date string) ([]models.MealEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, date, time, meal_type, description
		FROM meal_entries WHERE date = $1 ORDER BY time`, date)
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
		VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, entry.Date, entry.Time, entry.Rating, entry.Note)
	return err
}

func (s *Store) GetMoodEntries(date string) ([]models.MoodEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, date, time, rating, note
		FROM mood_entries WHERE date = $1 ORDER BY time`, date)
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
		VALUES ($1, $2, $3)`,
		entry.ID, entry.Date, entry.Glasses)
	return err
}

func (s *Store) GetHydrationEntries(date string) ([]models.HydrationEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, date, glasses
		FROM hydration_entries WHERE date = $1`, date)
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
		VALUES ($1, $2, $3, $4)`,
		entry.ID, entry.Date, entry.Hours, entry.Quality)
	return err
}

func (s *Store) GetSleepEntries(date string) ([]models.SleepEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, date, hours, quality
		FROM sleep_entries WHERE date = $1`, date)
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

func (s *Store) SaveOverride(ov models.Override) error {
	_, err := s.db.Exec(`
		INSERT INTO overrides (date, routine_id, item_id, done, timestamp, snooze_until_min)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (date, routine_id, item_id) DO UPDATE SET
			done = EXCLUDED.done,
			timestamp = EXCLUDED.timestamp,
			snooze_until_min = EXCLUDED.snooze_until_min`,
		ov.Date, ov.RoutineID, ov.ItemID, ov.Done, ov.Timestamp, nullInt(ov.SnoozeUntilMin))
	return err
}

func (s *Store) GetOverrides(date string) ([]models.Override, error) {
	rows, err := s.db.Query(`
		SELECT date, routine_id, item_id, done, timestamp, snooze_until_min
		FROM overrides WHERE date = $1`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var overrides []models.Override
	for rows.Next() {
		var ov models.Override
		var snooze sql.NullInt64
		if err := rows.Scan(&ov.Date, &ov.RoutineID, &ov.ItemID, &ov.Done, &ov.Timestamp, &snooze); err != nil {
			return nil, err
		}
		ov.SnoozeUntilMin = intFromNull(snooze)
		overrides = append(overrides, ov)
	}
	return overrides, rows.Err()
}

func (s *Store) ClearOverride(date, routineID, itemID string) error {
	_, err := s.db.Exec(`
		DELETE FROM overrides WHERE date = $1 AND routine_id = $2 AND item_id = $3`,
		date, routineID, itemID)
	return err
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
