package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/lazypower/meetkeeper/internal/store"
)

// handleExport serves the full backup snapshot as a JSON download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	b, err := s.db.Export(s.now())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", store.BackupFilename(s.now())))
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(b)
}

// handleImport replaces all data with the posted backup. The payload is
// shape-checked before anything is deleted, and the clear-and-repopulate
// runs as one transaction, so a bad file never leaves partial state.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, fmt.Errorf("%w: read body: %v", store.ErrInvalid, err))
		return
	}

	b, err := store.ParseBackup(data)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.db.ImportReplace(b); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "imported",
		"persons":  len(b.Persons),
		"meetings": len(b.Meetings),
	})
}
