package docstore

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store with the same contract as the Postgres
// implementation, including synchronous change notification fan-out. It backs
// the STORE_DRIVER=memory dev mode and is the injectable test double used
// across the repository and service tests.
type MemoryStore struct {
	mu   sync.Mutex
	cols map[string]*memoryCollection
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cols: make(map[string]*memoryCollection)}
}

func (s *MemoryStore) Collection(name string) Collection {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.cols[name]
	if !ok {
		col = &memoryCollection{
			docs: make(map[string]Document),
			subs: make(map[int64]func()),
		}
		s.cols[name] = col
	}
	return col
}

func (s *MemoryStore) Close() error {
	return nil
}

type memoryCollection struct {
	mu      sync.Mutex
	docs    map[string]Document
	order   []string // insertion order, stands in for created_at ordering
	subs    map[int64]func()
	nextSub int64
}

func (c *memoryCollection) GetAll(_ context.Context) ([]Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := make([]Record, 0, len(c.order))
	for _, id := range c.order {
		if doc, ok := c.docs[id]; ok {
			records = append(records, Record{ID: id, Doc: Clone(doc)})
		}
	}
	return records, nil
}

func (c *memoryCollection) GetByID(_ context.Context, id string) (Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc, ok := c.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return Clone(doc), nil
}

func (c *memoryCollection) GetByField(_ context.Context, field, value string) ([]Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var records []Record
	for _, id := range c.order {
		doc, ok := c.docs[id]
		if !ok {
			continue
		}
		if s, ok := doc[field].(string); ok && s == value {
			records = append(records, Record{ID: id, Doc: Clone(doc)})
		}
	}
	return records, nil
}

func (c *memoryCollection) Create(_ context.Context, doc Document) (string, error) {
	c.mu.Lock()
	id := uuid.New().String()
	c.docs[id] = Clone(doc)
	c.order = append(c.order, id)
	c.mu.Unlock()

	c.notify()
	return id, nil
}

func (c *memoryCollection) Update(_ context.Context, id string, fields Document) error {
	c.mu.Lock()
	doc, ok := c.docs[id]
	if !ok {
		c.mu.Unlock()
		return ErrNotFound
	}
	patch := Clone(fields)
	for k, v := range patch {
		doc[k] = v
	}
	c.mu.Unlock()

	c.notify()
	return nil
}

func (c *memoryCollection) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	if _, ok := c.docs[id]; !ok {
		c.mu.Unlock()
		return ErrNotFound
	}
	delete(c.docs, id)
	c.mu.Unlock()

	c.notify()
	return nil
}

func (c *memoryCollection) Subscribe(fn func()) (func(), error) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
		})
	}, nil
}

// notify invokes subscribers outside the collection lock so callbacks are
// free to read the collection again.
func (c *memoryCollection) notify() {
	c.mu.Lock()
	ids := make([]int64, 0, len(c.subs))
	for id := range c.subs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, c.subs[id])
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
