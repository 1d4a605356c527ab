package repository

import (
	"context"
	"errors"
	"fmt"

	"mplsconnect/internal/docstore"
	"mplsconnect/internal/models"
)

type resourceRepository struct {
	col docstore.Collection
}

func NewResourceRepository(store docstore.Store) ResourceRepository {
	return &resourceRepository{col: store.Collection(docstore.CollectionResources)}
}

func (r *resourceRepository) GetAll(ctx context.Context) ([]models.Resource, error) {
	records, err := r.col.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch resources: %w", err)
	}
	return decodeResources(records)
}

func (r *resourceRepository) GetByID(ctx context.Context, id string) (*models.Resource, error) {
	doc, err := r.col.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch resource %s: %w", id, err)
	}

	var resource models.Resource
	if err := models.FromRecord(docstore.Record{ID: id, Doc: doc}, &resource); err != nil {
		return nil, fmt.Errorf("failed to decode resource %s: %w", id, err)
	}
	return &resource, nil
}

func (r *resourceRepository) GetByCategory(ctx context.Context, category string) ([]models.Resource, error) {
	records, err := r.col.GetByField(ctx, "category", category)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch resources by category: %w", err)
	}
	return decodeResources(records)
}

func (r *resourceRepository) Create(ctx context.Context, resource *models.Resource) (string, error) {
	doc, err := models.ToDocument(resource)
	if err != nil {
		return "", err
	}

	id, err := r.col.Create(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to create resource: %w", err)
	}
	return id, nil
}

func (r *resourceRepository) Update(ctx context.Context, id string, fields docstore.Document) error {
	if err := r.col.Update(ctx, id, fields); err != nil {
		return fmt.Errorf("failed to update resource %s: %w", id, err)
	}
	return nil
}

func (r *resourceRepository) Subscribe(fn func([]models.Resource)) (func(), error) {
	return r.col.Subscribe(func() {
		resources, err := r.GetAll(context.Background())
		if err != nil {
			logResolveFailure("resources", err)
			return
		}
		fn(resources)
	})
}

func decodeResources(records []docstore.Record) ([]models.Resource, error) {
	resources := make([]models.Resource, 0, len(records))
	for _, rec := range records {
		var resource models.Resource
		if err := models.FromRecord(rec, &resource); err != nil {
			return nil, fmt.Errorf("failed to decode resource %s: %w", rec.ID, err)
		}
		resources = append(resources, resource)
	}
	return resources, nil
}
