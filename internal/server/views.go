package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/lazypower/meetkeeper/internal/engine"
	"github.com/lazypower/meetkeeper/internal/store"
)

// handleContacts serves the ordered sidebar list: never-met contacts first,
// then most-neglected first. Optional ?q= filters by name substring.
func (s *Server) handleContacts(w http.ResponseWriter, r *http.Request) {
	persons, err := s.db.AllPersons()
	if err != nil {
		writeError(w, err)
		return
	}
	meetings, err := s.db.AllMeetings()
	if err != nil {
		writeError(w, err)
		return
	}

	contacts := engine.OrderContacts(persons, meetings, s.now())
	contacts = engine.FilterContacts(contacts, r.URL.Query().Get("q"))
	if contacts == nil {
		contacts = []engine.ContactStatus{}
	}
	writeJSON(w, http.StatusOK, contacts)
}

// handleCalendar serves the 42-cell month grid. Defaults to the current
// month; ?year= and ?month= navigate.
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	year := now.Year()
	month := now.Month()

	q := r.URL.Query()
	if y := q.Get("year"); y != "" {
		n, err := strconv.Atoi(y)
		if err != nil {
			writeError(w, fmt.Errorf("%w: year %q", store.ErrInvalid, y))
			return
		}
		year = n
	}
	if m := q.Get("month"); m != "" {
		n, err := strconv.Atoi(m)
		if err != nil || n < 1 || n > 12 {
			writeError(w, fmt.Errorf("%w: month %q", store.ErrInvalid, m))
			return
		}
		month = time.Month(n)
	}

	// Only the visible window is loaded; the date index covers the query.
	start, end := engine.GridRange(year, month, now.Location())
	meetings, err := s.db.MeetingsByDateRange(start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		writeError(w, err)
		return
	}

	names, err := s.personNames()
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"year":    year,
		"month":   int(month),
		"days":    engine.MonthGrid(year, month, meetings, now),
		"persons": names,
	})
}
