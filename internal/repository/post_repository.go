package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"mplsconnect/internal/docstore"
	"mplsconnect/internal/models"
)

type postRepository struct {
	col      docstore.Collection
	users    UserRepository
	comments CommentRepository
	events   EventRepository
}

func NewPostRepository(store docstore.Store, users UserRepository, comments CommentRepository, events EventRepository) PostRepository {
	return &postRepository{
		col:      store.Collection(docstore.CollectionPosts),
		users:    users,
		comments: comments,
		events:   events,
	}
}

// GetAll returns the feed newest first with author, comments and the
// optional linked event joined in.
func (r *postRepository) GetAll(ctx context.Context) ([]models.Post, error) {
	records, err := r.col.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}

	posts := make([]models.Post, 0, len(records))
	for _, rec := range records {
		post, err := r.resolve(ctx, rec)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	doc, err := r.col.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch post %s: %w", id, err)
	}

	post, err := r.resolve(ctx, docstore.Record{ID: id, Doc: doc})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) (string, error) {
	doc, err := models.ToDocument(post)
	if err != nil {
		return "", err
	}

	id, err := r.col.Create(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to create post: %w", err)
	}
	return id, nil
}

func (r *postRepository) Update(ctx context.Context, id string, fields docstore.Document) error {
	if err := r.col.Update(ctx, id, fields); err != nil {
		return fmt.Errorf("failed to update post %s: %w", id, err)
	}
	return nil
}

func (r *postRepository) Subscribe(fn func([]models.Post)) (func(), error) {
	return r.col.Subscribe(func() {
		posts, err := r.GetAll(context.Background())
		if err != nil {
			logResolveFailure("posts", err)
			return
		}
		fn(posts)
	})
}

// resolve joins the post's author, its comments, and the optional event.
// Every join is best effort: a missing author or event leaves the embedded
// document value in place, and a comment fetch failure leaves the embedded
// comment list.
func (r *postRepository) resolve(ctx context.Context, rec docstore.Record) (models.Post, error) {
	var post models.Post
	if err := models.FromRecord(rec, &post); err != nil {
		return models.Post{}, fmt.Errorf("failed to decode post %s: %w", rec.ID, err)
	}

	if post.AuthorID != "" {
		author, err := r.users.GetByID(ctx, post.AuthorID)
		if err != nil {
			logResolveFailure("posts", fmt.Errorf("author %s of post %s: %w", post.AuthorID, rec.ID, err))
		} else if author != nil {
			post.Author = author
		}
	}

	comments, err := r.comments.GetByPostID(ctx, rec.ID)
	if err != nil {
		logResolveFailure("posts", fmt.Errorf("comments of post %s: %w", rec.ID, err))
	} else {
		post.Comments = comments
	}

	if post.EventID != "" {
		event, err := r.events.GetByID(ctx, post.EventID)
		if err != nil {
			logResolveFailure("posts", fmt.Errorf("event %s of post %s: %w", post.EventID, rec.ID, err))
		} else if event != nil {
			post.Event = event
		}
	}

	post.Timestamp = models.DisplayTime(post.CreatedAt, post.Timestamp)
	return post, nil
}
