// Package repository maps the document collections to typed entity access
// services. Each repository performs read/write mapping between stored
// documents and entities and resolves cross-collection references at read
// time.
//
// Contract shared by every repository:
//   - GetByID returns (nil, nil) when the id does not exist; absence is an
//     explicit result, never an error.
//   - A failed reference resolution never aborts a read. The entity is
//     returned with whatever reference value was embedded in the stored
//     document, and the failure is logged.
//   - Write failures are returned to the caller untouched.
//   - Subscribe re-fetches and re-resolves the full collection on every
//     change and hands the complete list to the callback. The returned
//     detach function is idempotent.
package repository

import (
	"context"

	"mplsconnect/internal/docstore"
	"mplsconnect/internal/models"
)

type UserRepository interface {
	GetAll(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUID(ctx context.Context, uid string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (string, error)
	CreateFromDocument(ctx context.Context, doc docstore.Document) (string, error)
	Update(ctx context.Context, id string, fields docstore.Document) error
	Subscribe(fn func([]models.User)) (func(), error)
}

type EventRepository interface {
	GetAll(ctx context.Context) ([]models.Event, error)
	GetByID(ctx context.Context, id string) (*models.Event, error)
	GetByCategory(ctx context.Context, category models.EventCategory) ([]models.Event, error)
	Create(ctx context.Context, event *models.Event) (string, error)
	Update(ctx context.Context, id string, fields docstore.Document) error
	Subscribe(fn func([]models.Event)) (func(), error)
}

type PostRepository interface {
	GetAll(ctx context.Context) ([]models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) (string, error)
	Update(ctx context.Context, id string, fields docstore.Document) error
	Subscribe(fn func([]models.Post)) (func(), error)
}

type CommentRepository interface {
	GetAll(ctx context.Context) ([]models.Comment, error)
	GetByPostID(ctx context.Context, postID string) ([]models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) (string, error)
	Update(ctx context.Context, id string, fields docstore.Document) error
	Delete(ctx context.Context, id string) error
	Subscribe(fn func([]models.Comment)) (func(), error)
}

type ResourceRepository interface {
	GetAll(ctx context.Context) ([]models.Resource, error)
	GetByID(ctx context.Context, id string) (*models.Resource, error)
	GetByCategory(ctx context.Context, category string) ([]models.Resource, error)
	Create(ctx context.Context, resource *models.Resource) (string, error)
	Update(ctx context.Context, id string, fields docstore.Document) error
	Subscribe(fn func([]models.Resource)) (func(), error)
}

type GroupRepository interface {
	GetAll(ctx context.Context) ([]models.Group, error)
	GetByID(ctx context.Context, id string) (*models.Group, error)
	Create(ctx context.Context, group *models.Group) (string, error)
	Update(ctx context.Context, id string, fields docstore.Document) error
	Subscribe(fn func([]models.Group)) (func(), error)
}

type Repository struct {
	User     UserRepository
	Event    EventRepository
	Post     PostRepository
	Comment  CommentRepository
	Resource ResourceRepository
	Group    GroupRepository
}

func NewRepository(store docstore.Store) *Repository {
	users := NewUserRepository(store)
	events := NewEventRepository(store, users)
	comments := NewCommentRepository(store, users)
	posts := NewPostRepository(store, users, comments, events)

	return &Repository{
		User:     users,
		Event:    events,
		Post:     posts,
		Comment:  comments,
		Resource: NewResourceRepository(store),
		Group:    NewGroupRepository(store),
	}
}
