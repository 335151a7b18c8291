// Package engine holds the pure derivations over in-memory person and
// meeting snapshots: staleness signals, contact ordering, list filtering,
// and the calendar grid. Nothing in here touches the store or the clock;
// "today" is always passed in.
package engine

import (
	"time"

	"github.com/lazypower/meetkeeper/internal/store"
)

// Midnight truncates t to local midnight. All date arithmetic happens on
// whole calendar days.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysSince returns the number of whole days between the meeting's date and
// today: positive in the past, negative in the future, zero today. The
// second return is false when m is nil or its date does not parse.
func DaysSince(m *store.Meeting, today time.Time) (int, bool) {
	if m == nil {
		return 0, false
	}
	d, err := time.ParseInLocation("2006-01-02", m.Date, today.Location())
	if err != nil {
		return 0, false
	}
	days := int(Midnight(today).Sub(Midnight(d)).Hours() / 24)
	return days, true
}

// IsOverdue reports whether the meeting's reminder has lapsed: a reminder is
// set and at least that many days have passed since the meeting. Meetings
// without a reminder are never overdue.
func IsOverdue(m *store.Meeting, today time.Time) bool {
	if m == nil || m.ReminderDays <= 0 {
		return false
	}
	days, ok := DaysSince(m, today)
	return ok && days >= m.ReminderDays
}

// LastMeeting returns the meeting with the latest date, or nil for an empty
// set. Equal dates tie-break on the highest id, so the most recently created
// record wins deterministically.
func LastMeeting(meetings []store.Meeting) *store.Meeting {
	var last *store.Meeting
	for i := range meetings {
		m := &meetings[i]
		if last == nil || m.Date > last.Date || (m.Date == last.Date && m.ID > last.ID) {
			last = m
		}
	}
	return last
}

// ReminderDue reports whether the next contact with this person is due,
// based on their last meeting. The second return is false when there is no
// last meeting or it carries no reminder.
func ReminderDue(last *store.Meeting, today time.Time) (bool, bool) {
	if last == nil || last.ReminderDays <= 0 {
		return false, false
	}
	return IsOverdue(last, today), true
}
