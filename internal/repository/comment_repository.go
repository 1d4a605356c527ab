package repository

import (
	"context"
	"fmt"
	"sort"

	"mplsconnect/internal/docstore"
	"mplsconnect/internal/models"
)

type commentRepository struct {
	col   docstore.Collection
	users UserRepository
}

func NewCommentRepository(store docstore.Store, users UserRepository) CommentRepository {
	return &commentRepository{
		col:   store.Collection(docstore.CollectionComments),
		users: users,
	}
}

func (r *commentRepository) GetAll(ctx context.Context) ([]models.Comment, error) {
	records, err := r.col.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}
	return r.resolveAll(ctx, records), nil
}

// GetByPostID returns a post's comments newest first, ordered by the stored
// instant rather than the display string.
func (r *commentRepository) GetByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	records, err := r.col.GetByField(ctx, "postId", postID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments for post %s: %w", postID, err)
	}

	comments := r.resolveAll(ctx, records)
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) (string, error) {
	doc, err := models.ToDocument(comment)
	if err != nil {
		return "", err
	}

	id, err := r.col.Create(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to create comment: %w", err)
	}
	return id, nil
}

func (r *commentRepository) Update(ctx context.Context, id string, fields docstore.Document) error {
	if err := r.col.Update(ctx, id, fields); err != nil {
		return fmt.Errorf("failed to update comment %s: %w", id, err)
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	if err := r.col.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete comment %s: %w", id, err)
	}
	return nil
}

func (r *commentRepository) Subscribe(fn func([]models.Comment)) (func(), error) {
	return r.col.Subscribe(func() {
		comments, err := r.GetAll(context.Background())
		if err != nil {
			logResolveFailure("comments", err)
			return
		}
		fn(comments)
	})
}

func (r *commentRepository) resolveAll(ctx context.Context, records []docstore.Record) []models.Comment {
	comments := make([]models.Comment, 0, len(records))
	for _, rec := range records {
		var comment models.Comment
		if err := models.FromRecord(rec, &comment); err != nil {
			logResolveFailure("comments", fmt.Errorf("decode %s: %w", rec.ID, err))
			continue
		}

		if comment.AuthorID != "" {
			author, err := r.users.GetByID(ctx, comment.AuthorID)
			if err != nil {
				logResolveFailure("comments", fmt.Errorf("author %s of comment %s: %w", comment.AuthorID, rec.ID, err))
			} else if author != nil {
				comment.Author = author
			}
		}

		comment.Timestamp = models.DisplayTime(comment.CreatedAt, comment.Timestamp)
		comments = append(comments, comment)
	}
	return comments
}
