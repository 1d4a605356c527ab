package handlers

import (
	"encoding/json"
	"net/http"

	"mplsconnect/internal/models"
)

type CreateResourceRequest struct {
	Title       string `json:"title" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=Article Video Podcast Guide Toolkit"`
	Duration    string `json:"duration" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Image       string `json:"image"`
	Category    string `json:"category" validate:"required"`
}

func (h *Handlers) GetResources(w http.ResponseWriter, r *http.Request) {
	if category := r.URL.Query().Get("category"); category != "" {
		resources, err := h.Repo.Resource.GetByCategory(r.Context(), category)
		if err != nil {
			WriteError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		WriteSuccess(w, resources, http.StatusOK)
		return
	}

	resources, err := h.Repo.Resource.GetAll(r.Context())
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	WriteSuccess(w, resources, http.StatusOK)
}

func (h *Handlers) CreateResource(w http.ResponseWriter, r *http.Request) {
	var req CreateResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Invalid resource data", http.StatusBadRequest)
		return
	}

	resource := &models.Resource{
		Title:       req.Title,
		Type:        models.ResourceType(req.Type),
		Duration:    req.Duration,
		Category:    req.Category,
		Description: req.Description,
		URL:         req.URL,
	}

	id, err := h.Repo.Resource.Create(r.Context(), resource)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	WriteSuccess(w, map[string]string{"id": id}, http.StatusCreated)
}

func (h *Handlers) GetGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Repo.Group.GetAll(r.Context())
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	WriteSuccess(w, groups, http.StatusOK)
}

func (h *Handlers) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Invalid group data", http.StatusBadRequest)
		return
	}

	group := &models.Group{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Category:    req.Category,
		MemberCount: 1,
	}

	id, err := h.Repo.Group.Create(r.Context(), group)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	WriteSuccess(w, map[string]string{"id": id}, http.StatusCreated)
}
