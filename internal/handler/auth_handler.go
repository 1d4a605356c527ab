package handlers

import (
	"encoding/json"
	"net/http"

	"mplsconnect/internal/models"
	"mplsconnect/internal/service"
)

type SignUpRequest struct {
	Email        string   `json:"email" validate:"required,email"`
	Password     string   `json:"password" validate:"required,min=6"`
	Name         string   `json:"name" validate:"required"`
	Age          int      `json:"age" validate:"omitempty,gt=0"`
	Location     string   `json:"location" validate:"required"`
	Occupation   string   `json:"occupation"`
	Sexuality    string   `json:"sexuality"`
	Bio          string   `json:"bio"`
	ProfileImage string   `json:"profileImage"`
	Interests    []string `json:"interests"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         *models.User `json:"user"`
}

func (h *Handlers) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Invalid sign-up data", http.StatusBadRequest)
		return
	}

	result := h.Auth.SignUp(r.Context(), toServiceSignUp(req))
	if result.Error != "" {
		WriteError(w, result.Error, http.StatusBadRequest)
		return
	}

	WriteSuccess(w, AuthResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		User:         result.User,
	}, http.StatusCreated)
}

func (h *Handlers) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	result := h.Auth.SignIn(r.Context(), req.Email, req.Password)
	if result.Error != "" {
		WriteError(w, result.Error, http.StatusUnauthorized)
		return
	}

	WriteSuccess(w, AuthResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		User:         result.User,
	}, http.StatusOK)
}

func (h *Handlers) SignOut(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result := h.Auth.SignOut(r.Context(), req.RefreshToken)
	if result.Error != "" {
		WriteError(w, result.Error, http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]bool{"ok": true}, http.StatusOK)
}

func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Refresh token is required", http.StatusBadRequest)
		return
	}

	result := h.Auth.RefreshTokens(r.Context(), req.RefreshToken)
	if result.Error != "" {
		WriteError(w, result.Error, http.StatusUnauthorized)
		return
	}

	WriteSuccess(w, AuthResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		User:         result.User,
	}, http.StatusOK)
}

func toServiceSignUp(req SignUpRequest) service.SignUpRequest {
	return service.SignUpRequest{
		Email:        req.Email,
		Password:     req.Password,
		Name:         req.Name,
		Age:          req.Age,
		Location:     req.Location,
		Occupation:   req.Occupation,
		Sexuality:    req.Sexuality,
		Bio:          req.Bio,
		ProfileImage: req.ProfileImage,
		Interests:    req.Interests,
	}
}
