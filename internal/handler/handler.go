package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"

	"mplsconnect/internal/config"
	"mplsconnect/internal/repository"
	"mplsconnect/internal/service"
	"mplsconnect/internal/storage"
)

type contextKey string

// Context keys the auth middleware fills in for authenticated requests.
const (
	ContextUID   contextKey = "uid"
	ContextEmail contextKey = "email"
)

// UIDFromContext returns the auth provider account id of the signed-in user.
func UIDFromContext(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(ContextUID).(string)
	return uid, ok
}

type Handlers struct {
	Repo      *repository.Repository
	Auth      service.AuthService
	Feed      *service.Aggregator
	Migration service.MigrationService
	Storage   storage.Storage
	Cfg       *config.Config
	Validate  *validator.Validate
}

func NewHandlers(repo *repository.Repository, services *service.Service, store storage.Storage, cfg *config.Config) *Handlers {
	return &Handlers{
		Repo:      repo,
		Auth:      services.Auth,
		Feed:      services.Feed,
		Migration: services.Migration,
		Storage:   store,
		Cfg:       cfg,
		Validate:  validator.New(),
	}
}
