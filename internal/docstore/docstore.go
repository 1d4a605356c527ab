// Package docstore exposes the hosted-document-database contract the rest of
// the application is written against: collection-scoped CRUD, equality
// queries, and change subscriptions. Records are schemaless; field shapes are
// enforced by the repository layer only.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNotFound is returned by GetByID when the id does not exist. Repositories
// translate it into an explicit absent result rather than an error.
var ErrNotFound = errors.New("document not found")

// Collection names, 1:1 with entity types. The accounts collection backs the
// auth provider and is never exposed through the entity repositories.
const (
	CollectionUsers     = "users"
	CollectionEvents    = "events"
	CollectionPosts     = "posts"
	CollectionComments  = "comments"
	CollectionResources = "resources"
	CollectionGroups    = "groups"
	CollectionAccounts  = "accounts"
)

// Document is a schemaless record body.
type Document map[string]any

// Record pairs a store-assigned id with its document.
type Record struct {
	ID  string
	Doc Document
}

// Collection is one named set of documents.
//
// Subscribe registers a listener invoked after every change to the collection.
// The returned detach function is idempotent and stops all future
// invocations; it does not cancel work already in flight.
type Collection interface {
	GetAll(ctx context.Context) ([]Record, error)
	GetByID(ctx context.Context, id string) (Document, error)
	GetByField(ctx context.Context, field, value string) ([]Record, error)
	Create(ctx context.Context, doc Document) (string, error)
	Update(ctx context.Context, id string, fields Document) error
	Delete(ctx context.Context, id string) error
	Subscribe(fn func()) (func(), error)
}

// Store hands out collections by name.
type Store interface {
	Collection(name string) Collection
	Close() error
}

// Clone deep-copies a document through a JSON round trip. This also
// normalizes values to their JSON types, matching what a real remote store
// hands back.
func Clone(doc Document) Document {
	if doc == nil {
		return nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return Document{}
	}
	var out Document
	if err := json.Unmarshal(raw, &out); err != nil {
		return Document{}
	}
	return out
}
