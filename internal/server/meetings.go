package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/lazypower/meetkeeper/internal/engine"
	"github.com/lazypower/meetkeeper/internal/store"
)

// meetingJSON is a meeting plus the resolved contact name. A meeting whose
// personId matches no contact renders as "Unknown" rather than failing.
type meetingJSON struct {
	store.Meeting
	PersonName string `json:"personName"`
}

func (s *Server) personNames() (map[int64]string, error) {
	persons, err := s.db.AllPersons()
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(persons))
	for _, p := range persons {
		names[p.ID] = p.Name
	}
	return names, nil
}

func resolveNames(meetings []store.Meeting, names map[int64]string) []meetingJSON {
	out := make([]meetingJSON, 0, len(meetings))
	for _, m := range meetings {
		name, ok := names[m.PersonID]
		if !ok {
			name = "Unknown"
		}
		out = append(out, meetingJSON{Meeting: m, PersonName: name})
	}
	return out
}

// handleListMeetings serves the filterable list view. Query parameters:
// type, status, person, and an optional from/to date window.
func (s *Server) handleListMeetings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var meetings []store.Meeting
	var err error
	if from, to := q.Get("from"), q.Get("to"); from != "" && to != "" {
		meetings, err = s.db.MeetingsByDateRange(from, to)
	} else {
		meetings, err = s.db.AllMeetings()
	}
	if err != nil {
		writeError(w, err)
		return
	}

	f := engine.Filter{
		Type:   q.Get("type"),
		Status: q.Get("status"),
	}
	if p := q.Get("person"); p != "" {
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			writeError(w, fmt.Errorf("%w: person %q", store.ErrInvalid, p))
			return
		}
		f.PersonID = id
	}

	filtered := engine.FilterMeetings(meetings, f, s.now())

	names, err := s.personNames()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resolveNames(filtered, names))
}

func (s *Server) handleCreateMeeting(w http.ResponseWriter, r *http.Request) {
	var m store.Meeting
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeError(w, fmt.Errorf("%w: invalid json", store.ErrInvalid))
		return
	}

	created, err := s.db.AddMeeting(m)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetMeeting(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	m, err := s.db.GetMeeting(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if m == nil {
		writeError(w, fmt.Errorf("meeting %d: %w", id, store.ErrNotFound))
		return
	}

	names, err := s.personNames()
	if err != nil {
		writeError(w, err)
		return
	}
	out := resolveNames([]store.Meeting{*m}, names)
	writeJSON(w, http.StatusOK, out[0])
}

func (s *Server) handleUpdateMeeting(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var m store.Meeting
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeError(w, fmt.Errorf("%w: invalid json", store.ErrInvalid))
		return
	}

	if err := s.db.UpdateMeeting(id, m); err != nil {
		writeError(w, err)
		return
	}

	updated, err := s.db.GetMeeting(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteMeeting(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.db.DeleteMeeting(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
