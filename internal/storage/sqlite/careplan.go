package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/caretend/caretend/internal/models"
)

// The care plan and its daily snapshots are stored as JSON documents:
// the plan is read and written whole, never queried by routine or item.

func (s *Store) GetCarePlan() (models.CarePlan, error) {
	var raw string
	err := s.db.QueryRow(`SELECT data FROM care_plan WHERE id = 1`).Scan(&raw)
	if err == sql.ErrNoRows {
		return models.CarePlan{}, nil
	}
	if err != nil {
		return models.CarePlan{}, err
	}

	var plan models.CarePlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return models.CarePlan{}, fmt.Errorf("failed to parse care plan: %w", err)
	}
	return plan, nil
}

func (s *Store) SaveCarePlan(plan models.CarePlan) error {
	raw, err := json.Marshal(plan)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO care_plan (id, data) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data`, string(raw))
	return err
}

func (s *Store) GetPlanSnapshot(date string) (models.CarePlan, bool, error) {
	var raw string
	err := s.db.QueryRow(`SELECT data FROM plan_snapshots WHERE date = ?`, date).Scan(&raw)
	if err == sql.ErrNoRows {
		return models.CarePlan{}, false, nil
	}
	if err != nil {
		return models.CarePlan{}, false, err
	}

	var plan models.CarePlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return models.CarePlan{}, false, fmt.Errorf("failed to parse plan snapshot: %w", err)
	}
	return plan, true, nil
}

func (s *Store) SavePlanSnapshot(date string, plan models.CarePlan) error {
	raw, err := json.Marshal(plan)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO plan_snapshots (date, data) VALUES (?, ?)
		ON CONFLICT(date) DO UPDATE SET data = excluded.data`, date, string(raw))
	return err
}
