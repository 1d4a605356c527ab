package handlers

import (
	"net/http"
)

func (h *Handlers) HomeHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]string{"service": "Minneapolis Connect API"}, http.StatusOK)
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// GetFeed returns the aggregator's unified snapshot: all five entity slices
// plus the loading and error flags.
func (h *Handlers) GetFeed(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, h.Feed.Snapshot(), http.StatusOK)
}

// Migrate runs the one-shot seed copy. Re-running duplicates documents;
// that is the migration's documented behavior.
func (h *Handlers) Migrate(w http.ResponseWriter, r *http.Request) {
	report := h.Migration.MigrateAll(r.Context())
	WriteSuccess(w, report, http.StatusOK)
}
