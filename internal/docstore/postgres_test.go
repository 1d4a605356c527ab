package docstore

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store, err := NewPostgresStore(sqlx.NewDb(db, "sqlmock"), "")
	require.NoError(t, err)

	return store, mock
}

func TestPostgresCollection_GetAll(t *testing.T) {
	store, mock := newTestStore(t)
	col := store.Collection(CollectionUsers)

	rows := sqlmock.NewRows([]string{"id", "doc"}).
		AddRow("id-1", []byte(`{"name":"Sarah Mitchell"}`)).
		AddRow("id-2", []byte(`{"name":"Mike Johnson"}`))
	mock.ExpectQuery(`SELECT id, doc FROM users ORDER BY created_at, id`).
		WillReturnRows(rows)

	records, err := col.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "id-1", records[0].ID)
	assert.Equal(t, "Sarah Mitchell", records[0].Doc["name"])
	assert.Equal(t, "Mike Johnson", records[1].Doc["name"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCollection_GetByID(t *testing.T) {
	store, mock := newTestStore(t)
	col := store.Collection(CollectionEvents)

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"doc"}).
			AddRow([]byte(`{"title":"Lake Harriet Cleanup","category":"Volunteering"}`))
		mock.ExpectQuery(`SELECT doc FROM events WHERE id = $1`).
			WithArgs("ev-1").
			WillReturnRows(rows)

		doc, err := col.GetByID(context.Background(), "ev-1")
		require.NoError(t, err)
		assert.Equal(t, "Lake Harriet Cleanup", doc["title"])
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT doc FROM events WHERE id = $1`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"doc"}))

		_, err := col.GetByID(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCollection_GetByField(t *testing.T) {
	store, mock := newTestStore(t)
	col := store.Collection(CollectionComments)

	rows := sqlmock.NewRows([]string{"id", "doc"}).
		AddRow("c-1", []byte(`{"content":"Count me in!","postId":"p-1"}`))
	mock.ExpectQuery(`SELECT id, doc FROM comments WHERE doc->>$1 = $2 ORDER BY created_at, id`).
		WithArgs("postId", "p-1").
		WillReturnRows(rows)

	records, err := col.GetByField(context.Background(), "postId", "p-1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Count me in!", records[0].Doc["content"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCollection_Create(t *testing.T) {
	store, mock := newTestStore(t)
	col := store.Collection(CollectionPosts)

	mock.ExpectExec(`INSERT INTO posts (id, doc) VALUES ($1, $2)`).
		WithArgs(sqlmock.AnyArg(), []byte(`{"content":"hello"}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := col.Create(context.Background(), Document{"content": "hello"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCollection_Update(t *testing.T) {
	store, mock := newTestStore(t)
	col := store.Collection(CollectionUsers)

	t.Run("merges patch", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET doc = doc || $2, updated_at = now() WHERE id = $1`).
			WithArgs("u-1", []byte(`{"bio":"updated"}`)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := col.Update(context.Background(), "u-1", Document{"bio": "updated"})
		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET doc = doc || $2, updated_at = now() WHERE id = $1`).
			WithArgs("missing", []byte(`{"bio":"x"}`)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := col.Update(context.Background(), "missing", Document{"bio": "x"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCollection_Delete(t *testing.T) {
	store, mock := newTestStore(t)
	col := store.Collection(CollectionComments)

	t.Run("deletes", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM comments WHERE id = $1`).
			WithArgs("c-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, col.Delete(context.Background(), "c-1"))
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM comments WHERE id = $1`).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, col.Delete(context.Background(), "missing"), ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCollection_UnknownCollection(t *testing.T) {
	store, _ := newTestStore(t)
	col := store.Collection("no_such_table")
	ctx := context.Background()

	_, err := col.GetAll(ctx)
	assert.Error(t, err)

	_, err = col.Create(ctx, Document{"a": 1})
	assert.Error(t, err)

	_, err = col.Subscribe(func() {})
	assert.Error(t, err)
}

func TestPostgresStore_SubscribeWithoutListener(t *testing.T) {
	store, _ := newTestStore(t)
	col := store.Collection(CollectionUsers)

	_, err := col.Subscribe(func() {})
	assert.EqualError(t, err, "change notifications are not enabled for this store")
}

func TestPostgresStore_CloseIsIdempotent(t *testing.T) {
	store, _ := newTestStore(t)

	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}
