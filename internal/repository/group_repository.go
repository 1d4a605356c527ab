package repository

import (
	"context"
	"errors"
	"fmt"

	"mplsconnect/internal/docstore"
	"mplsconnect/internal/models"
)

type groupRepository struct {
	col docstore.Collection
}

func NewGroupRepository(store docstore.Store) GroupRepository {
	return &groupRepository{col: store.Collection(docstore.CollectionGroups)}
}

func (r *groupRepository) GetAll(ctx context.Context) ([]models.Group, error) {
	records, err := r.col.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch groups: %w", err)
	}

	groups := make([]models.Group, 0, len(records))
	for _, rec := range records {
		var group models.Group
		if err := models.FromRecord(rec, &group); err != nil {
			return nil, fmt.Errorf("failed to decode group %s: %w", rec.ID, err)
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func (r *groupRepository) GetByID(ctx context.Context, id string) (*models.Group, error) {
	doc, err := r.col.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch group %s: %w", id, err)
	}

	var group models.Group
	if err := models.FromRecord(docstore.Record{ID: id, Doc: doc}, &group); err != nil {
		return nil, fmt.Errorf("failed to decode group %s: %w", id, err)
	}
	return &group, nil
}

func (r *groupRepository) Create(ctx context.Context, group *models.Group) (string, error) {
	doc, err := models.ToDocument(group)
	if err != nil {
		return "", err
	}

	id, err := r.col.Create(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to create group: %w", err)
	}
	return id, nil
}

func (r *groupRepository) Update(ctx context.Context, id string, fields docstore.Document) error {
	if err := r.col.Update(ctx, id, fields); err != nil {
		return fmt.Errorf("failed to update group %s: %w", id, err)
	}
	return nil
}

func (r *groupRepository) Subscribe(fn func([]models.Group)) (func(), error) {
	return r.col.Subscribe(func() {
		groups, err := r.GetAll(context.Background())
		if err != nil {
			logResolveFailure("groups", err)
			return
		}
		fn(groups)
	})
}
