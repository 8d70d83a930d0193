package sqlite

import (
	"fmt"

	"github.com/caretend/caretend/internal/models"
)

func (s *Store) AddContact(contact models.CareContact) error {
	_, err := s.db.Exec(`
		INSERT INTO contacts (id, name, relationship, phone, email, role)
		VALUES (?, ?, ?, ?, ?, ?)`,
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
	res, err := s.db.Exec(`DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("contact %s not found", id)
	}
	return err
}
