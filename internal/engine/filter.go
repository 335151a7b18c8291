package engine

import (
	"sort"
	"time"

	"github.com/lazypower/meetkeeper/internal/store"
)

// Status filter values for the meeting list.
const (
	StatusAll      = "all"
	StatusPast     = "past"
	StatusUpcoming = "upcoming"
	StatusOverdue  = "overdue"
)

// Filter selects a subset of the meeting list. Zero values mean "no filter".
type Filter struct {
	Type     string // "coffee", "lunch", or "" / "all"
	PersonID int64  // 0 = any contact
	Status   string // past, upcoming, overdue, or "" / "all"
}

// FilterMeetings applies the type, contact, and status filters in sequence,
// then sorts by date descending (most recent first). Equal dates tie-break
// on descending id.
//
// Status semantics: past is strictly before today, upcoming is today or
// later, overdue means the meeting's own reminder has lapsed.
func FilterMeetings(meetings []store.Meeting, f Filter, today time.Time) []store.Meeting {
	out := make([]store.Meeting, 0, len(meetings))
	for _, m := range meetings {
		if f.Type != "" && f.Type != StatusAll && m.Type != f.Type {
			continue
		}
		if f.PersonID != 0 && m.PersonID != f.PersonID {
			continue
		}
		if !matchStatus(m, f.Status, today) {
			continue
		}
		out = append(out, m)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func matchStatus(m store.Meeting, status string, today time.Time) bool {
	switch status {
	case StatusPast:
		days, ok := DaysSince(&m, today)
		return ok && days > 0
	case StatusUpcoming:
		days, ok := DaysSince(&m, today)
		return ok && days <= 0
	case StatusOverdue:
		return IsOverdue(&m, today)
	default:
		return true
	}
}
