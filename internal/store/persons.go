package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Person is a tracked contact.
type Person struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Notes     string `json:"notes"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// AddPerson creates a contact and returns it with its assigned id.
func (db *DB) AddPerson(name, email, notes string) (*Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: person name required", ErrInvalid)
	}

	now := time.Now().UnixMilli()
	result, err := db.Exec(`
		INSERT INTO persons (name, email, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, name, email, notes, now, now)
	if err != nil {
		return nil, fmt.Errorf("insert person: %w", err)
	}

	id, _ := result.LastInsertId()
	return &Person{
		ID:        id,
		Name:      name,
		Email:     email,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// UpdatePerson replaces all mutable fields of a contact.
func (db *DB) UpdatePerson(id int64, name, email, notes string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: person name required", ErrInvalid)
	}

	now := time.Now().UnixMilli()
	result, err := db.Exec(`
		UPDATE persons SET name = ?, email = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`, name, email, notes, now, id)
	if err != nil {
		return fmt.Errorf("update person: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("person %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeletePerson removes a contact and every meeting that references it.
// The cascade and the person deletion commit as one transaction: either
// both happen or neither does.
func (db *DB) DeletePerson(id int64) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin delete person: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM meetings WHERE person_id = ?`, id); err != nil {
		tx.Rollback()
		return fmt.Errorf("delete meetings of person %d: %w", id, err)
	}

	result, err := tx.Exec(`DELETE FROM persons WHERE id = ?`, id)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("delete person %d: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		tx.Rollback()
		return fmt.Errorf("person %d: %w", id, ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete person: %w", err)
	}
	return nil
}

// GetPerson returns a contact by id, or nil if it does not exist.
func (db *DB) GetPerson(id int64) (*Person, error) {
	var p Person
	err := db.QueryRow(`
		SELECT id, name, email, notes, created_at, updated_at
		FROM persons WHERE id = ?
	`, id).Scan(&p.ID, &p.Name, &p.Email, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get person: %w", err)
	}
	return &p, nil
}

// AllPersons returns every contact, ordered by id.
func (db *DB) AllPersons() ([]Person, error) {
	rows, err := db.Query(`
		SELECT id, name, email, notes, created_at, updated_at
		FROM persons ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("all persons: %w", err)
	}
	defer rows.Close()

	var persons []Person
	for rows.Next() {
		var p Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		persons = append(persons, p)
	}
	return persons, rows.Err()
}
