package api

import "net/http"

// handleGetCatalog returns the hub's current catalog in index order.
// It reflects registrations not yet pushed to observers by Notify.
func (s *Server) handleGetCatalog(w http.ResponseWriter, _ *http.Request) {
	entries := s.hub.Catalog().Entries()
	writeJSON(w, http.StatusOK, map[string]any{
		"commands":  entries,
		"count":     len(entries),
		"observers": s.hub.ObserverCount(),
	})
}
