package engine

import (
	"sort"
	"strings"
	"time"

	"github.com/lazypower/meetkeeper/internal/store"
)

// ContactStatus is one sidebar entry: a contact plus the derived signals the
// list renders.
type ContactStatus struct {
	Person      store.Person   `json:"person"`
	CoffeeCount int            `json:"coffeeCount"`
	LunchCount  int            `json:"lunchCount"`
	LastMeeting *store.Meeting `json:"lastMeeting,omitempty"`
	// DaysSince is meaningful only when HasMet is true.
	DaysSince   int  `json:"daysSince"`
	HasMet      bool `json:"hasMet"`
	ReminderDue bool `json:"reminderDue"`
}

// OrderContacts builds the sidebar list: contacts never met first (stable,
// ascending id), then contacts by days-since-last-meeting descending so the
// most neglected surface first. A future-dated next meeting (negative days)
// sorts last among the met. Equal days tie-break on ascending id.
func OrderContacts(persons []store.Person, meetings []store.Meeting, today time.Time) []ContactStatus {
	byPerson := make(map[int64][]store.Meeting)
	for _, m := range meetings {
		byPerson[m.PersonID] = append(byPerson[m.PersonID], m)
	}

	out := make([]ContactStatus, 0, len(persons))
	for _, p := range persons {
		own := byPerson[p.ID]
		cs := ContactStatus{Person: p}
		for _, m := range own {
			switch m.Type {
			case store.TypeCoffee:
				cs.CoffeeCount++
			case store.TypeLunch:
				cs.LunchCount++
			}
		}
		cs.LastMeeting = LastMeeting(own)
		cs.DaysSince, cs.HasMet = DaysSince(cs.LastMeeting, today)
		cs.ReminderDue, _ = ReminderDue(cs.LastMeeting, today)
		out = append(out, cs)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.HasMet != b.HasMet {
			return !a.HasMet // never-met first
		}
		if !a.HasMet {
			return a.Person.ID < b.Person.ID
		}
		if a.DaysSince != b.DaysSince {
			return a.DaysSince > b.DaysSince
		}
		return a.Person.ID < b.Person.ID
	})
	return out
}

// FilterContacts keeps entries whose name contains the query,
// case-insensitive. An empty query keeps everything.
func FilterContacts(contacts []ContactStatus, query string) []ContactStatus {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return contacts
	}
	var out []ContactStatus
	for _, c := range contacts {
		if strings.Contains(strings.ToLower(c.Person.Name), query) {
			out = append(out, c)
		}
	}
	return out
}
