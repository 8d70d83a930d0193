package sqlite

import (
	"database/sql"

	"github.com/caretend/caretend/internal/models"
)

func (s *Store) SaveOverride(ov models.Override) error {
	_, err := s.db.Exec(`
		INSERT INTO overrides (date, routine_id, item_id, done, timestamp, snooze_until_min)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(date, routine_id, item_id) DO UPDATE SET
			done = excluded.done,
			timestamp = excluded.timestamp,
			snooze_until_min = excluded.snooze_until_min`,
		ov.Date, ov.RoutineID, ov.ItemID, ov.Done, ov.Timestamp, nullInt(ov.SnoozeUntilMin))
	return err
}

func (s *Store) GetOverrides(date string) ([]models.Override, error) {
	rows, err := s.db.Query(`
		SELECT date, routine_id, item_id, done, timestamp, snooze_until_min
		FROM overrides WHERE date = ?`, date)
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
		DELETE FROM overrides WHERE date = ? AND routine_id = ? AND item_id = ?`,
		date, routineID, itemID)
	return err
}
