package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"mplsconnect/internal/docstore"
	"mplsconnect/internal/models"
)

type CreatePostRequest struct {
	Content string `json:"content" validate:"required"`
	Image   string `json:"image"`
	EventID string `json:"eventId"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Repo.Post.GetAll(r.Context())
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	WriteSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	post, err := h.Repo.Post.GetByID(r.Context(), id)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if post == nil {
		WriteError(w, "Post not found", http.StatusNotFound)
		return
	}
	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Content is required", http.StatusBadRequest)
		return
	}

	author, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	post := &models.Post{
		AuthorID:  author.ID,
		Content:   req.Content,
		Image:     req.Image,
		EventID:   req.EventID,
		CreatedAt: time.Now(),
	}

	id, err := h.Repo.Post.Create(r.Context(), post)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	WriteSuccess(w, map[string]string{"id": id}, http.StatusCreated)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var fields docstore.Document
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	delete(fields, "id")
	delete(fields, "authorId")

	if err := h.Repo.Post.Update(r.Context(), id, fields); err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	WriteSuccess(w, map[string]bool{"ok": true}, http.StatusOK)
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Content is required", http.StatusBadRequest)
		return
	}

	author, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	comment := &models.Comment{
		PostID:    postID,
		AuthorID:  author.ID,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}

	id, err := h.Repo.Comment.Create(r.Context(), comment)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	WriteSuccess(w, map[string]string{"id": id}, http.StatusCreated)
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.Repo.Comment.Delete(r.Context(), id); err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	WriteSuccess(w, map[string]bool{"ok": true}, http.StatusOK)
}

// UploadPostImage stores the multipart image and patches its URL onto the
// post document.
func (h *Handlers) UploadPostImage(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "Image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	_, imageURL, err := h.Storage.UploadImage(r.Context(), postID, header.Filename, file, header.Size)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.Repo.Post.Update(r.Context(), postID, docstore.Document{"image": imageURL}); err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	WriteSuccess(w, map[string]string{"image": imageURL}, http.StatusOK)
}

// currentUser maps the session uid to its profile document, writing the
// error response itself when that fails.
func (h *Handlers) currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	uid, ok := UIDFromContext(r.Context())
	if !ok {
		WriteError(w, "Authorization required", http.StatusUnauthorized)
		return nil, false
	}

	user, err := h.Repo.User.GetByUID(r.Context(), uid)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	if user == nil {
		WriteError(w, "Profile not found", http.StatusNotFound)
		return nil, false
	}
	return user, true
}
