package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/caretend/caretend/internal/models"
)

const appointmentColumns = `id, date, time, title, location, provider, notes, completed, deleted_at`

func (s *Store) AddAppointment(appt models.Appointment) error {
	_, err := s.db.Exec(`
		INSERT INTO appointments (id, date, time, title, location, provider, notes, completed, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NULL)`,
		appt.ID, appt.Date, appt.Time, appt.Title, appt.Location, appt.Provider, appt.Notes, appt.Completed)
	return err
}

func (s *Store) GetAppointment(id string) (models.Appointment, error) {
	row := s.db.QueryRow(`
		SELECT `+appointmentColumns+`
		FROM appointments WHERE id = ? AND deleted_at IS NULL`, id)

	appt, err := scanAppointment(row)
	if err == sql.ErrNoRows {
		return models.Appointment{}, fmt.Errorf("appointment %s not found", id)
	}
	return appt, err
}

func (s *Store) GetAppointmentsForDate(date string) ([]models.Appointment, error) {
	return s.queryAppointments(`
		SELECT `+appointmentColumns+`
		FROM appointments WHERE date = ? AND deleted_at IS NULL
		ORDER BY date, time`, date)
}

func (s *Store) GetUpcomingAppointments(fromDate string) ([]models.Appointment, error) {
	return s.queryAppointments(`
		SELECT `+appointmentColumns+`
		FROM appointments WHERE date >= ? AND deleted_at IS NULL
		ORDER BY date, time`, fromDate)
}

func (s *Store) UpdateAppointment(appt models.Appointment) error {
	res, err := s.db.Exec(`
		UPDATE appointments SET date = ?, time = ?, title = ?, location = ?, provider = ?, notes = ?, completed = ?
		WHERE id = ? AND deleted_at IS NULL`,
		appt.Date, appt.Time, appt.Title, appt.Location, appt.Provider, appt.Notes, appt.Completed, appt.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("appointment %s not found", appt.ID)
	}
	return err
}

func (s *Store) DeleteAppointment(id string) error {
	res, err := s.db.Exec(`
		UPDATE appointments SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		time.Now().Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("appointment %s not found", id)
	}
	return err
}

func (s *Store) queryAppointments(query string, args ...any) ([]models.Appointment, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appts []models.Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appts = append(appts, appt)
	}
	return appts, rows.Err()
}

func scanAppointment(row rowScanner) (models.Appointment, error) {
	var appt models.Appointment
	var deletedAt sql.NullString

	err := row.Scan(&appt.ID, &appt.Date, &appt.Time, &appt.Title,
		&appt.Location, &appt.Provider, &appt.Notes, &appt.Completed, &deletedAt)
	if err != nil {
		return models.Appointment{}, err
	}
	if deletedAt.Valid {
		appt.DeletedAt = &deletedAt.String
	}
	return appt, nil
}
