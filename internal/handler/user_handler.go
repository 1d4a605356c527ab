package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"mplsconnect/internal/docstore"
)

func (h *Handlers) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Repo.User.GetAll(r.Context())
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	WriteSuccess(w, users, http.StatusOK)
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	user, err := h.Repo.User.GetByID(r.Context(), id)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if user == nil {
		WriteError(w, "User not found", http.StatusNotFound)
		return
	}
	WriteSuccess(w, user, http.StatusOK)
}

// GetCurrentUser resolves the signed-in account to its profile document.
func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	uid, ok := UIDFromContext(r.Context())
	if !ok {
		WriteError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	user, err := h.Repo.User.GetByUID(r.Context(), uid)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if user == nil {
		WriteError(w, "Profile not found", http.StatusNotFound)
		return
	}
	WriteSuccess(w, user, http.StatusOK)
}

// UpdateUser merge-patches the named fields into the profile document.
func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var fields docstore.Document
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	delete(fields, "id")
	delete(fields, "uid")

	if err := h.Repo.User.Update(r.Context(), id, fields); err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	WriteSuccess(w, map[string]bool{"ok": true}, http.StatusOK)
}
