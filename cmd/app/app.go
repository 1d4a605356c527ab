package app

import (
	"github.com/sirupsen/logrus"

	"mplsconnect/internal/config"
	"mplsconnect/internal/database"
	"mplsconnect/internal/docstore"
	"mplsconnect/internal/repository"
	"mplsconnect/internal/service"
	"mplsconnect/internal/storage"
)

// App wires the store, repositories and services from configuration.
func App(cfg *config.Config) (docstore.Store, *repository.Repository, *service.Service, storage.Storage) {
	var store docstore.Store

	switch cfg.StoreDriver {
	case "memory":
		logrus.Warn("using in-memory store; data will not survive a restart")
		store = docstore.NewMemoryStore()
	default:
		db, err := database.ConnectDB(cfg)
		if err != nil {
			logrus.Fatalf("failed to connect to database: %v", err)
		}

		store, err = docstore.NewPostgresStore(db.DB, cfg.DB.DSN())
		if err != nil {
			logrus.Fatalf("failed to initialize document store: %v", err)
		}
	}

	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		logrus.Fatalf("failed to initialize MinIO: %v", err)
	}

	repo := repository.NewRepository(store)
	services := service.NewService(repo, store, cfg)

	return store, repo, services, minioClient
}
