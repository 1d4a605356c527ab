package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const changeChannel = "docstore_changes"

// Collections the Postgres store will serve. Table names are interpolated
// into SQL, so anything outside this set is rejected.
var knownCollections = map[string]bool{
	CollectionUsers:     true,
	CollectionEvents:    true,
	CollectionPosts:     true,
	CollectionComments:  true,
	CollectionResources: true,
	CollectionGroups:    true,
	CollectionAccounts:  true,
}

// PostgresStore keeps one jsonb table per collection and delivers change
// notifications through LISTEN/NOTIFY. Triggers installed by the schema
// migration send the table name on the docstore_changes channel after every
// statement.
type PostgresStore struct {
	db       *sqlx.DB
	listener *pq.Listener

	mu      sync.Mutex
	subs    map[string]map[int64]func()
	nextSub int64
	closed  bool
	done    chan struct{}
}

// NewPostgresStore wraps db as a document store. conninfo is the lib/pq DSN
// used for the notification listener; when empty, subscriptions are disabled
// (CRUD still works, which is what the sqlmock tests rely on).
func NewPostgresStore(db *sqlx.DB, conninfo string) (*PostgresStore, error) {
	s := &PostgresStore{
		db:   db,
		subs: make(map[string]map[int64]func()),
		done: make(chan struct{}),
	}

	if conninfo != "" {
		listener := pq.NewListener(conninfo, 10*time.Second, time.Minute,
			func(ev pq.ListenerEventType, err error) {
				if err != nil {
					logrus.WithError(err).Warn("docstore listener event")
				}
			})
		if err := listener.Listen(changeChannel); err != nil {
			listener.Close()
			return nil, fmt.Errorf("failed to listen on %s: %w", changeChannel, err)
		}
		s.listener = listener
		go s.dispatch()
	}

	return s, nil
}

func (s *PostgresStore) Collection(name string) Collection {
	return &postgresCollection{store: s, name: name}
}

func (s *PostgresStore) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	s.mu.Unlock()

	if s.listener != nil {
		return s.listener.Close()
	}
	return nil
}

func (s *PostgresStore) dispatch() {
	for {
		select {
		case <-s.done:
			return
		case n, ok := <-s.listener.Notify:
			if !ok {
				return
			}
			// nil notification means the connection was re-established;
			// changes may have been missed, so wake every subscriber.
			if n == nil {
				s.notifyAll()
				continue
			}
			s.notify(n.Extra)
		}
	}
}

func (s *PostgresStore) notify(collection string) {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs[collection]))
	for _, fn := range s.subs[collection] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (s *PostgresStore) notifyAll() {
	s.mu.Lock()
	var fns []func()
	for _, col := range s.subs {
		for _, fn := range col {
			fns = append(fns, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (s *PostgresStore) subscribe(collection string, fn func()) (func(), error) {
	if s.listener == nil {
		return nil, errors.New("change notifications are not enabled for this store")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	if s.subs[collection] == nil {
		s.subs[collection] = make(map[int64]func())
	}
	s.subs[collection][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs[collection], id)
			s.mu.Unlock()
		})
	}, nil
}

type postgresCollection struct {
	store *PostgresStore
	name  string
}

func (c *postgresCollection) table() (string, error) {
	if !knownCollections[c.name] {
		return "", fmt.Errorf("unknown collection: %s", c.name)
	}
	return c.name, nil
}

func (c *postgresCollection) GetAll(ctx context.Context) ([]Record, error) {
	table, err := c.table()
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, doc FROM %s ORDER BY created_at, id`, table)

	rows, err := c.store.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", c.name, err)
	}
	defer rows.Close()

	return scanRecords(rows, c.name)
}

func (c *postgresCollection) GetByID(ctx context.Context, id string) (Document, error) {
	table, err := c.table()
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT doc FROM %s WHERE id = $1`, table)

	var raw []byte
	err = c.store.db.GetContext(ctx, &raw, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch %s/%s: %w", c.name, id, err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s/%s: %w", c.name, id, err)
	}

	return doc, nil
}

func (c *postgresCollection) GetByField(ctx context.Context, field, value string) ([]Record, error) {
	table, err := c.table()
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, doc FROM %s WHERE doc->>$1 = $2 ORDER BY created_at, id`, table)

	rows, err := c.store.db.QueryxContext(ctx, query, field, value)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s by %s: %w", c.name, field, err)
	}
	defer rows.Close()

	return scanRecords(rows, c.name)
}

func (c *postgresCollection) Create(ctx context.Context, doc Document) (string, error) {
	table, err := c.table()
	if err != nil {
		return "", err
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s document: %w", c.name, err)
	}

	id := uuid.New().String()
	query := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2)`, table)

	if _, err := c.store.db.ExecContext(ctx, query, id, raw); err != nil {
		return "", fmt.Errorf("failed to create %s document: %w", c.name, err)
	}

	return id, nil
}

func (c *postgresCollection) Update(ctx context.Context, id string, fields Document) error {
	table, err := c.table()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode %s patch: %w", c.name, err)
	}

	// jsonb || merges top-level keys, which is exactly the partial-field
	// merge the update contract asks for.
	query := fmt.Sprintf(`UPDATE %s SET doc = doc || $2, updated_at = now() WHERE id = $1`, table)

	result, err := c.store.db.ExecContext(ctx, query, id, raw)
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", c.name, id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (c *postgresCollection) Delete(ctx context.Context, id string) error {
	table, err := c.table()
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table)

	result, err := c.store.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", c.name, id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (c *postgresCollection) Subscribe(fn func()) (func(), error) {
	if _, err := c.table(); err != nil {
		return nil, err
	}
	return c.store.subscribe(c.name, fn)
}

func scanRecords(rows *sqlx.Rows, collection string) ([]Record, error) {
	var records []Record

	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", collection, err)
		}

		var doc Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s/%s: %w", collection, id, err)
		}

		records = append(records, Record{ID: id, Doc: doc})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s rows: %w", collection, err)
	}

	return records, nil
}
