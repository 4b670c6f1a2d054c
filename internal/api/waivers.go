package api

import (
	"net/http"

	"github.com/codewithboateng/l10nfilter/internal/storage"
)

func (s *Server) handleListWaivers(w http.ResponseWriter, r *http.Request) {
	active := r.URL.Query().Get("active")
	only := active == "1" || active == "true" || active == "yes"
	ws, err := s.DB.ListWaivers(only)
	if err != nil {
		s.dbErr(w, err)
		return
	}
	if ws == nil {
		ws = []storage.Waiver{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": ws, "active_only": only})
}
