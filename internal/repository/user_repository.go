package repository

import (
	"context"
	"errors"
	"fmt"

	"mplsconnect/internal/docstore"
	"mplsconnect/internal/models"
)

type userRepository struct {
	col docstore.Collection
}

func NewUserRepository(store docstore.Store) UserRepository {
	return &userRepository{col: store.Collection(docstore.CollectionUsers)}
}

func (r *userRepository) GetAll(ctx context.Context) ([]models.User, error) {
	records, err := r.col.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	users := make([]models.User, 0, len(records))
	for _, rec := range records {
		var user models.User
		if err := models.FromRecord(rec, &user); err != nil {
			return nil, fmt.Errorf("failed to decode user %s: %w", rec.ID, err)
		}
		users = append(users, user)
	}

	return users, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	doc, err := r.col.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user %s: %w", id, err)
	}

	var user models.User
	if err := models.FromRecord(docstore.Record{ID: id, Doc: doc}, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", id, err)
	}

	return &user, nil
}

// GetByUID looks a user up by the auth provider account id stored at sign-up.
func (r *userRepository) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	records, err := r.col.GetByField(ctx, "uid", uid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user by uid: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var user models.User
	if err := models.FromRecord(records[0], &user); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", records[0].ID, err)
	}

	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) (string, error) {
	doc, err := models.ToDocument(user)
	if err != nil {
		return "", err
	}
	return r.CreateFromDocument(ctx, doc)
}

// CreateFromDocument inserts a raw user document. The auth service builds
// these by hand so that optional fields left empty stay absent from the
// stored document instead of being written as empty values.
func (r *userRepository) CreateFromDocument(ctx context.Context, doc docstore.Document) (string, error) {
	id, err := r.col.Create(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

func (r *userRepository) Update(ctx context.Context, id string, fields docstore.Document) error {
	if err := r.col.Update(ctx, id, fields); err != nil {
		return fmt.Errorf("failed to update user %s: %w", id, err)
	}
	return nil
}

func (r *userRepository) Subscribe(fn func([]models.User)) (func(), error) {
	return r.col.Subscribe(func() {
		users, err := r.GetAll(context.Background())
		if err != nil {
			logResolveFailure("users", err)
			return
		}
		fn(users)
	})
}
