package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/caretend/caretend/internal/models"
)

func (s *Store) AddMedication(med models.Medication) error {
	_, err := s.db.Exec(`
		INSERT INTO medications (id, name, dosage, time_slot, active, deleted_at)
		VALUES (?, ?, ?, ?, ?, NULL)`,
		med.ID, med.Name, med.Dosage, med.TimeSlot, med.Active)
	return err
}

func (s *Store) GetMedication(id string) (models.Medication, error) {
	row := s.db.QueryRow(`
		SELECT id, name, dosage, time_slot, active, deleted_at
		FROM medications WHERE id = ? AND deleted_at IS NULL`, id)

	med, err := scanMedication(row)
	if err == sql.ErrNoRows {
		return models.Medication{}, fmt.Errorf("medication %s not found", id)
	}
	return med, err
}

func (s *Store) GetMedications(includeInactive bool) ([]models.Medication, error) {
	query := `
		SELECT id, name, dosage, time_slot, active, deleted_at
		FROM medications WHERE deleted_at IS NULL`
	if !includeInactive {
		query += ` AND active = 1`
	}
	query += ` ORDER BY name`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meds []models.Medication
	for rows.Next() {
		med, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		meds = append(meds, med)
	}
	return meds, rows.Err()
}

func (s *Store) UpdateMedication(med models.Medication) error {
	res, err := s.db.Exec(`
		UPDATE medications SET name = ?, dosage = ?, time_slot = ?, active = ?
		WHERE id = ? AND deleted_at IS NULL`,
		med.Name, med.Dosage, med.TimeSlot, med.Active, med.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("medication %s not found", med.ID)
	}
	return err
}

func (s *Store) DeleteMedication(id string) error {
	res, err := s.db.Exec(`
		UPDATE medications SET deleted_at = ?, active = 0
		WHERE id = ? AND deleted_at IS NULL`,
		time.Now().Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("medication %s not found", id)
	}
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMedication(row rowScanner) (models.Medication, error) {
	var med models.Medication
	var deletedAt sql.NullString

	err := row.Scan(&med.ID, &med.Name, &med.Dosage, &med.TimeSlot, &med.Active, &deletedAt)
	if err != nil {
		return models.Medication{}, err
	}
	if deletedAt.Valid {
		med.DeletedAt = &deletedAt.String
	}
	return med, nil
}
