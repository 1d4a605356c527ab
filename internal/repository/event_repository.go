package repository

import (
	"context"
	"errors"
	"fmt"

	"mplsconnect/internal/docstore"
	"mplsconnect/internal/models"
)

type eventRepository struct {
	col   docstore.Collection
	users UserRepository
}

func NewEventRepository(store docstore.Store, users UserRepository) EventRepository {
	return &eventRepository{
		col:   store.Collection(docstore.CollectionEvents),
		users: users,
	}
}

func (r *eventRepository) GetAll(ctx context.Context) ([]models.Event, error) {
	records, err := r.col.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	return r.resolveAll(ctx, records)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	doc, err := r.col.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch event %s: %w", id, err)
	}

	event, err := r.resolve(ctx, docstore.Record{ID: id, Doc: doc})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) GetByCategory(ctx context.Context, category models.EventCategory) ([]models.Event, error) {
	records, err := r.col.GetByField(ctx, "category", string(category))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events by category: %w", err)
	}
	return r.resolveAll(ctx, records)
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) (string, error) {
	doc, err := models.ToDocument(event)
	if err != nil {
		return "", err
	}

	id, err := r.col.Create(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to create event: %w", err)
	}
	return id, nil
}

func (r *eventRepository) Update(ctx context.Context, id string, fields docstore.Document) error {
	if err := r.col.Update(ctx, id, fields); err != nil {
		return fmt.Errorf("failed to update event %s: %w", id, err)
	}
	return nil
}

func (r *eventRepository) Subscribe(fn func([]models.Event)) (func(), error) {
	return r.col.Subscribe(func() {
		events, err := r.GetAll(context.Background())
		if err != nil {
			logResolveFailure("events", err)
			return
		}
		fn(events)
	})
}

func (r *eventRepository) resolveAll(ctx context.Context, records []docstore.Record) ([]models.Event, error) {
	events := make([]models.Event, 0, len(records))
	for _, rec := range records {
		event, err := r.resolve(ctx, rec)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

// resolve decodes a stored event and joins in its organizer. When the
// organizer id does not resolve, the event keeps whatever organizer value
// was embedded in the document; a missing target never fails the read.
func (r *eventRepository) resolve(ctx context.Context, rec docstore.Record) (models.Event, error) {
	var event models.Event
	if err := models.FromRecord(rec, &event); err != nil {
		return models.Event{}, fmt.Errorf("failed to decode event %s: %w", rec.ID, err)
	}

	if event.OrganizerID != "" {
		organizer, err := r.users.GetByID(ctx, event.OrganizerID)
		if err != nil {
			logResolveFailure("events", fmt.Errorf("organizer %s of event %s: %w", event.OrganizerID, rec.ID, err))
		} else if organizer != nil {
			event.Organizer = organizer
		}
	}

	return event, nil
}
