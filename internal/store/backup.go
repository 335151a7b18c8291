package store

import (
	"encoding/json"
	"fmt"
	"time"
)

// BackupVersion is the format version written into exports.
const BackupVersion = "1.0"

// Backup is the export/import file format: a full snapshot of both
// collections, ids included.
type Backup struct {
	Version    string    `json:"version"`
	ExportDate string    `json:"exportDate"`
	Persons    []Person  `json:"persons"`
	Meetings   []Meeting `json:"meetings"`
}

// BackupFilename returns the download filename for an export taken on the
// given day: meetingmanager-backup-YYYY-MM-DD.json
func BackupFilename(today time.Time) string {
	return fmt.Sprintf("meetingmanager-backup-%s.json", today.Format("2006-01-02"))
}

// Export snapshots both collections verbatim.
func (db *DB) Export(now time.Time) (*Backup, error) {
	persons, err := db.AllPersons()
	if err != nil {
		return nil, err
	}
	meetings, err := db.AllMeetings()
	if err != nil {
		return nil, err
	}
	if persons == nil {
		persons = []Person{}
	}
	if meetings == nil {
		meetings = []Meeting{}
	}
	return &Backup{
		Version:    BackupVersion,
		ExportDate: now.UTC().Format(time.RFC3339),
		Persons:    persons,
		Meetings:   meetings,
	}, nil
}

// ParseBackup decodes and shape-checks an import payload. Both the persons
// and meetings fields must be present (empty arrays are fine).
func ParseBackup(data []byte) (*Backup, error) {
	var raw struct {
		Persons  json.RawMessage `json:"persons"`
		Meetings json.RawMessage `json:"meetings"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: backup is not valid JSON: %v", ErrInvalid, err)
	}
	if raw.Persons == nil || raw.Meetings == nil {
		return nil, fmt.Errorf("%w: backup must contain persons and meetings", ErrInvalid)
	}

	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("%w: backup records malformed: %v", ErrInvalid, err)
	}
	return &b, nil
}

// ImportReplace replaces all existing data with the backup's records in a
// single transaction: clear both collections, re-create every person with a
// fresh id, then re-create every meeting with its personId remapped from the
// imported person's old id to the new one. A meeting whose imported personId
// matches no imported person keeps the stale value; it renders as "Unknown".
// Referential validation is deliberately skipped here so old backups with
// dangling meetings remain loadable.
func (db *DB) ImportReplace(b *Backup) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM meetings`); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear meetings: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM persons`); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear persons: %w", err)
	}

	now := time.Now().UnixMilli()

	remap := make(map[int64]int64, len(b.Persons))
	for _, p := range b.Persons {
		result, err := tx.Exec(`
			INSERT INTO persons (name, email, notes, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
		`, p.Name, p.Email, p.Notes, now, now)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("import person %q: %w", p.Name, err)
		}
		newID, _ := result.LastInsertId()
		remap[p.ID] = newID
	}

	for _, m := range b.Meetings {
		personID := m.PersonID
		if newID, ok := remap[personID]; ok {
			personID = newID
		}
		if _, err := tx.Exec(`
			INSERT INTO meetings (person_id, type, date, time, notes, reminder_days, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, personID, m.Type, m.Date, m.Time, m.Notes, m.ReminderDays, now, now); err != nil {
			tx.Rollback()
			return fmt.Errorf("import meeting on %s: %w", m.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}
