package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Meeting is a scheduled interaction with one contact. Date is a plain
// ISO calendar date (YYYY-MM-DD, no time zone). ReminderDays of zero
// means no reminder.
type Meeting struct {
	ID           int64  `json:"id"`
	PersonID     int64  `json:"personId"`
	Type         string `json:"type"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Notes        string `json:"notes"`
	ReminderDays int    `json:"reminderDays"`
	CreatedAt    int64  `json:"createdAt"`
	UpdatedAt    int64  `json:"updatedAt"`
}

func validateMeeting(db *DB, m Meeting) error {
	if !ValidType(m.Type) {
		return fmt.Errorf("%w: meeting type %q", ErrInvalid, m.Type)
	}
	if _, err := time.Parse("2006-01-02", m.Date); err != nil {
		return fmt.Errorf("%w: meeting date %q", ErrInvalid, m.Date)
	}
	if m.ReminderDays < 0 {
		return fmt.Errorf("%w: reminder days %d", ErrInvalid, m.ReminderDays)
	}
	p, err := db.GetPerson(m.PersonID)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("%w: meeting references unknown person %d", ErrInvalid, m.PersonID)
	}
	return nil
}

// AddMeeting creates a meeting from m's mutable fields and returns it with
// its assigned id. The referenced contact must exist.
func (db *DB) AddMeeting(m Meeting) (*Meeting, error) {
	if err := validateMeeting(db, m); err != nil {
		return nil, err
	}

	now := time.Now().UnixMilli()
	result, err := db.Exec(`
		INSERT INTO meetings (person_id, type, date, time, notes, reminder_days, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, m.PersonID, m.Type, m.Date, m.Time, m.Notes, m.ReminderDays, now, now)
	if err != nil {
		return nil, fmt.Errorf("insert meeting: %w", err)
	}

	id, _ := result.LastInsertId()
	m.ID = id
	m.CreatedAt = now
	m.UpdatedAt = now
	return &m, nil
}

// UpdateMeeting replaces all mutable fields of a meeting.
func (db *DB) UpdateMeeting(id int64, m Meeting) error {
	if err := validateMeeting(db, m); err != nil {
		return err
	}

	now := time.Now().UnixMilli()
	result, err := db.Exec(`
		UPDATE meetings SET person_id = ?, type = ?, date = ?, time = ?, notes = ?, reminder_days = ?, updated_at = ?
		WHERE id = ?
	`, m.PersonID, m.Type, m.Date, m.Time, m.Notes, m.ReminderDays, now, id)
	if err != nil {
		return fmt.Errorf("update meeting: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("meeting %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteMeeting removes a single meeting. Nothing cascades.
func (db *DB) DeleteMeeting(id int64) error {
	result, err := db.Exec(`DELETE FROM meetings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete meeting: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("meeting %d: %w", id, ErrNotFound)
	}
	return nil
}

// GetMeeting returns a meeting by id, or nil if it does not exist.
func (db *DB) GetMeeting(id int64) (*Meeting, error) {
	var m Meeting
	err := db.QueryRow(`
		SELECT id, person_id, type, date, time, notes, reminder_days, created_at, updated_at
		FROM meetings WHERE id = ?
	`, id).Scan(&m.ID, &m.PersonID, &m.Type, &m.Date, &m.Time, &m.Notes, &m.ReminderDays, &m.CreatedAt, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get meeting: %w", err)
	}
	return &m, nil
}

// AllMeetings returns every meeting, ordered by id.
func (db *DB) AllMeetings() ([]Meeting, error) {
	return db.queryMeetings(`
		SELECT id, person_id, type, date, time, notes, reminder_days, created_at, updated_at
		FROM meetings ORDER BY id
	`)
}

// MeetingsByPerson returns every meeting of one contact, ordered by id.
func (db *DB) MeetingsByPerson(personID int64) ([]Meeting, error) {
	return db.queryMeetings(`
		SELECT id, person_id, type, date, time, notes, reminder_days, created_at, updated_at
		FROM meetings WHERE person_id = ? ORDER BY id
	`, personID)
}

// MeetingsByDateRange returns meetings with start <= date <= end
// (ISO dates compare correctly as strings), ordered by date.
func (db *DB) MeetingsByDateRange(start, end string) ([]Meeting, error) {
	return db.queryMeetings(`
		SELECT id, person_id, type, date, time, notes, reminder_days, created_at, updated_at
		FROM meetings WHERE date >= ? AND date <= ? ORDER BY date, id
	`, start, end)
}

func (db *DB) queryMeetings(query string, args ...any) ([]Meeting, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query meetings: %w", err)
	}
	defer rows.Close()

	var meetings []Meeting
	for rows.Next() {
		var m Meeting
		if err := rows.Scan(&m.ID, &m.PersonID, &m.Type, &m.Date, &m.Time, &m.Notes, &m.ReminderDays, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan meeting: %w", err)
		}
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}
