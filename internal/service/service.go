package service

import (
	"mplsconnect/internal/config"
	"mplsconnect/internal/docstore"
	"mplsconnect/internal/repository"
)

type Service struct {
	Auth      AuthService
	Feed      *Aggregator
	Migration MigrationService
}

func NewService(repo *repository.Repository, store docstore.Store, cfg *config.Config) *Service {
	return &Service{
		Auth:      NewAuthService(store, repo.User, cfg),
		Feed:      NewAggregator(repo),
		Migration: NewMigrationService(repo),
	}
}
