package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/caretend/caretend/internal/models"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) AddMedication(med models.Medication) error {
	_, err := s.db.Exec(`
		INSERT INTO medications (id, name, dosage, time_slot, active, deleted_at)
		VALUES ($1, $2, $3, $4, $5, NULL)`,
		med.ID, med.Name, med.Dosage, med.TimeSlot, med.Active)
	return err
}

func (s *Store) GetMedication(id string) (models.Medication, error) {
	row := s.db.QueryRow(`
		SELECT id, name, dosage, time_slot, active, deleted_at
		FROM medications WHERE id = $1 AND deleted_at IS NULL`, id)

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
		query += ` AND active`
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
		UPDATE medications SET name = $1, dosage = $2, time_slot = $3, active = $4
		WHERE id = $5 AND deleted_at IS NULL`,
		med.Name, med.Dosage, med.TimeSlot, med.Active, med.ID)
	return requireRow(res, err, "medication", med.ID)
}

func (s *Store) DeleteMedication(id string) error {
	res, err := s.db.Exec(`
		UPDATE medications SET deleted_at = $1, active = FALSE
		WHERE id = $2 AND deleted_at IS NULL`,
		time.Now().Format(time.RFC3339), id)
	return requireRow(res, err, "medication", id)
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

func (s *Store) AddAppointment(appt models.Appointment) error {
	_, err := s.db.Exec(`
		INSERT INTO appointments (id, date, time, title, location, provider, notes, completed, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULL)`,
		appt.ID, appt.Date, appt.Time, appt.Title, appt.Location, appt.Provider, appt.Notes, appt.Completed)
	return err
}

func (s *Store) GetAppointment(id string) (models.Appointment, error) {
	row := s.db.QueryRow(`
		SELECT id, date, time, title, location, provider, notes, completed, deleted_at
		FROM appointments WHERE id = $1 AND deleted_at IS NULL`, id)

	appt, err := scanAppointment(row)
	if err == sql.ErrNoRows {
		return models.Appointment{}, fmt.Errorf("appointment %s not found", id)
	}
	return appt, err
}

func (s *Store) GetAppointmentsForDate(date string) ([]models.Appointment, error) {
	return s.queryAppointments(`
		SELECT id, date, time, title, location, provider, notes, completed, deleted_at
		FROM appointments WHERE date = $1 AND deleted_at IS NULL
		ORDER BY date, time`, date)
}

func (s *Store) GetUpcomingAppointments(fromDate string) ([]models.Appointment, error) {
	return s.queryAppointments(`
		SELECT id, date, time, title, location, provider, notes, completed, deleted_at
		FROM appointments WHERE date >= $1 AND deleted_at IS NULL
		ORDER BY date, time`, fromDate)
}

func (s *Store) UpdateAppointment(appt models.Appointment) error {
	res, err := s.db.Exec(`
		UPDATE appointments SET date = $1, time = $2, title = $3, location = $4, provider = $5, notes = $6, completed = $7
		WHERE id = $8 AND deleted_at IS NULL`,
		appt.Date, appt.Time, appt.Title, appt.Location, appt.Provider, appt.Notes, appt.Completed, appt.ID)
	return requireRow(res, err, "appointment", appt.ID)
}

func (s *Store) DeleteAppointment(id string) error {
	res, err := s.db.Exec(`
		UPDATE appointments SET deleted_at = $1
		WHERE id = $2 AND deleted_at IS NULL`,
		time.Now().Format(time.RFC3339), id)
	return requireRow(res, err, "appointment", id)
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

func (s *Store) AddContact(contact models.CareContact) error {
	_, err := s.db.Exec(`
		INSERT INTO contacts (id, name, relationship, phone, email, role)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		contact.ID, contact.Name, contact.Relationship, contact.Phone, contact.Email, string(contact.Role))
	return err
}

func (s *Store) GetContacts() ([]models.CareContact, error) {
	rows, err := s.db.Query(`
		SELECT id, name, relationship, phone, email, role
		FROM contacts ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []models.CareContact
	for rows.Next() {
		var c models.CareContact
		var role string
		if err := rows.Scan(&c.ID, &c.Name, &c.Relationship, &c.Phone, &c.Email, &role); err != nil {
			return nil, err
		}
		c.Role = models.ContactRole(role)
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (s *Store) DeleteContact(id string) error {
	res, err := s.db.Exec(`DELETE FROM contacts WHERE id = $1`, id)
	return requireRow(res, err, "contact", id)
}

// requireRow turns a zero-row update or delete into a not-found error.
func requireRow(res sql.Result, err error, kind, id string) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("%s %s not found", kind, id)
	}
	return err
}
