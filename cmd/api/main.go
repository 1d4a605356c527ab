package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"mplsconnect/cmd/app"
	"mplsconnect/internal/config"
	handlers "mplsconnect/internal/handler"
	"mplsconnect/internal/middleware"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		logrus.Fatal("JWT_SECRET_KEY is not set")
	}

	store, repo, services, minioClient := app.App(cfg)
	defer store.Close()

	// The aggregator loads in the background; /api/feed reports loading
	// until the initial fetches settle.
	go services.Feed.Start(context.Background())
	defer services.Feed.Close()

	handler := handlers.NewHandlers(repo, services, minioClient, cfg)

	router := mux.NewRouter()

	router.HandleFunc("/", handler.HomeHandler).Methods(http.MethodGet)
	router.HandleFunc("/health", handler.HealthHandler).Methods(http.MethodGet)

	router.HandleFunc("/api/auth/signup", handler.SignUp).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/signin", handler.SignIn).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/signout", handler.SignOut).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/refresh-token", handler.RefreshToken).Methods(http.MethodPost)

	router.HandleFunc("/api/me", handler.GetCurrentUser).Methods(http.MethodGet)
	router.HandleFunc("/api/users", handler.GetUsers).Methods(http.MethodGet)
	router.HandleFunc("/api/users/{id}", handler.GetUser).Methods(http.MethodGet)
	router.HandleFunc("/api/users/{id}", handler.UpdateUser).Methods(http.MethodPatch)

	router.HandleFunc("/api/events", handler.GetEvents).Methods(http.MethodGet)
	router.HandleFunc("/api/events", handler.CreateEvent).Methods(http.MethodPost)
	router.HandleFunc("/api/events/{id}", handler.GetEvent).Methods(http.MethodGet)
	router.HandleFunc("/api/events/{id}", handler.UpdateEvent).Methods(http.MethodPatch)

	router.HandleFunc("/api/posts", handler.GetPosts).Methods(http.MethodGet)
	router.HandleFunc("/api/posts", handler.CreatePost).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/{id}", handler.GetPost).Methods(http.MethodGet)
	router.HandleFunc("/api/posts/{id}", handler.UpdatePost).Methods(http.MethodPatch)
	router.HandleFunc("/api/posts/{id}/comments", handler.CreateComment).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/{id}/images", handler.UploadPostImage).Methods(http.MethodPost)
	router.HandleFunc("/api/comments/{id}", handler.DeleteComment).Methods(http.MethodDelete)

	router.HandleFunc("/api/resources", handler.GetResources).Methods(http.MethodGet)
	router.HandleFunc("/api/resources", handler.CreateResource).Methods(http.MethodPost)
	router.HandleFunc("/api/groups", handler.GetGroups).Methods(http.MethodGet)
	router.HandleFunc("/api/groups", handler.CreateGroup).Methods(http.MethodPost)

	router.HandleFunc("/api/feed", handler.GetFeed).Methods(http.MethodGet)
	router.HandleFunc("/api/admin/migrate", handler.Migrate).Methods(http.MethodPost)

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
		middleware.AuthMiddleware(cfg),
	)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	logrus.WithField("addr", addr).Info("server listening")

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		logrus.Fatalf("server failed: %v", err)
	}
}
