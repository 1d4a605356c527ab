package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"mplsconnect/internal/docstore"
	"mplsconnect/internal/models"
)

type CreateEventRequest struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Date         string   `json:"date" validate:"required"`
	Time         string   `json:"time" validate:"required"`
	Location     string   `json:"location" validate:"required"`
	Category     string   `json:"category" validate:"required,oneof=Community Volunteering 'Small Business' 'Social Dinners' Networking Fundraising Environmental 'Social Justice'"`
	Image        string   `json:"image"`
	MaxAttendees int      `json:"maxAttendees"`
	OrganizerID  string   `json:"organizerId"`
	Tags         []string `json:"tags"`
}

func (h *Handlers) GetEvents(w http.ResponseWriter, r *http.Request) {
	if category := r.URL.Query().Get("category"); category != "" {
		events, err := h.Repo.Event.GetByCategory(r.Context(), models.EventCategory(category))
		if err != nil {
			WriteError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		WriteSuccess(w, events, http.StatusOK)
		return
	}

	events, err := h.Repo.Event.GetAll(r.Context())
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	WriteSuccess(w, events, http.StatusOK)
}

func (h *Handlers) GetEvent(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	event, err := h.Repo.Event.GetByID(r.Context(), id)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if event == nil {
		WriteError(w, "Event not found", http.StatusNotFound)
		return
	}
	WriteSuccess(w, event, http.StatusOK)
}

func (h *Handlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Invalid event data", http.StatusBadRequest)
		return
	}

	organizerID := req.OrganizerID
	if organizerID == "" {
		if uid, ok := UIDFromContext(r.Context()); ok {
			if user, err := h.Repo.User.GetByUID(r.Context(), uid); err == nil && user != nil {
				organizerID = user.ID
			}
		}
	}

	event := &models.Event{
		Title:        req.Title,
		Description:  req.Description,
		Date:         req.Date,
		Time:         req.Time,
		Location:     req.Location,
		Category:     models.EventCategory(req.Category),
		Image:        req.Image,
		MaxAttendees: req.MaxAttendees,
		OrganizerID:  organizerID,
		Tags:         req.Tags,
	}

	id, err := h.Repo.Event.Create(r.Context(), event)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	WriteSuccess(w, map[string]string{"id": id}, http.StatusCreated)
}

func (h *Handlers) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var fields docstore.Document
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	delete(fields, "id")

	if err := h.Repo.Event.Update(r.Context(), id, fields); err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	WriteSuccess(w, map[string]bool{"ok": true}, http.StatusOK)
}
