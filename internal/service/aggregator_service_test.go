package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mplsconnect/internal/docstore"
	"mplsconnect/internal/models"
	"mplsconnect/internal/repository"
)

func seededRepo(t *testing.T) (docstore.Store, *repository.Repository) {
	t.Helper()

	store := docstore.NewMemoryStore()
	repo := repository.NewRepository(store)
	ctx := context.Background()

	userID, err := repo.User.Create(ctx, &models.User{Name: "Sarah Mitchell", Location: "Uptown"})
	require.NoError(t, err)
	_, err = repo.Event.Create(ctx, &models.Event{Title: "Cleanup", Category: models.CategoryVolunteering, OrganizerID: userID})
	require.NoError(t, err)
	_, err = repo.Post.Create(ctx, &models.Post{AuthorID: userID, Content: "hello", CreatedAt: time.Now()})
	require.NoError(t, err)
	_, err = repo.Resource.Create(ctx, &models.Resource{Title: "Guide", Type: models.ResourceGuide, Category: "Networking"})
	require.NoError(t, err)
	_, err = repo.Group.Create(ctx, &models.Group{Name: "MPLS Environmental Group", Category: "Environmental"})
	require.NoError(t, err)

	return store, repo
}

func TestAggregator_StartLoadsAllSlices(t *testing.T) {
	_, repo := seededRepo(t)

	agg := NewAggregator(repo)
	assert.True(t, agg.Snapshot().Loading, "loading until the initial fetches settle")

	agg.Start(context.Background())
	defer agg.Close()

	snap := agg.Snapshot()
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Error)
	assert.Len(t, snap.Users, 1)
	assert.Len(t, snap.Events, 1)
	assert.Len(t, snap.Posts, 1)
	assert.Len(t, snap.Resources, 1)
	assert.Len(t, snap.Groups, 1)
}

// failingEventRepo stands in for an entity backend that is down.
type failingEventRepo struct{}

func (failingEventRepo) GetAll(ctx context.Context) ([]models.Event, error) {
	return nil, errors.New("events backend down")
}

func (failingEventRepo) GetByID(ctx context.Context, id string) (*models.Event, error) {
	return nil, errors.New("events backend down")
}

func (failingEventRepo) GetByCategory(ctx context.Context, category models.EventCategory) ([]models.Event, error) {
	return nil, errors.New("events backend down")
}

func (failingEventRepo) Create(ctx context.Context, event *models.Event) (string, error) {
	return "", errors.New("events backend down")
}

func (failingEventRepo) Update(ctx context.Context, id string, fields docstore.Document) error {
	return errors.New("events backend down")
}

func (failingEventRepo) Subscribe(fn func([]models.Event)) (func(), error) {
	return nil, errors.New("events backend down")
}

func TestAggregator_PartialFailureKeepsLoadedSlices(t *testing.T) {
	_, repo := seededRepo(t)
	repo.Event = failingEventRepo{}

	agg := NewAggregator(repo)
	agg.Start(context.Background())
	defer agg.Close()

	snap := agg.Snapshot()
	assert.False(t, snap.Loading, "loading settles even when a fetch fails")
	assert.Equal(t, "events backend down", snap.Error)
	assert.Empty(t, snap.Events)
	assert.Len(t, snap.Users, 1, "slices that did load stay available")
	assert.Len(t, snap.Posts, 1)
}

func TestAggregator_LiveUpdatesReplaceSlices(t *testing.T) {
	_, repo := seededRepo(t)
	ctx := context.Background()

	agg := NewAggregator(repo)
	agg.Start(ctx)
	defer agg.Close()

	_, err := repo.Post.Create(ctx, &models.Post{Content: "breaking news", CreatedAt: time.Now()})
	require.NoError(t, err)

	snap := agg.Snapshot()
	require.Len(t, snap.Posts, 2)
	assert.Equal(t, "breaking news", snap.Posts[0].Content, "feed stays newest first")
}

func TestAggregator_CloseDetachesSubscriptions(t *testing.T) {
	_, repo := seededRepo(t)
	ctx := context.Background()

	agg := NewAggregator(repo)
	agg.Start(ctx)

	agg.Close()
	agg.Close() // idempotent

	_, err := repo.Post.Create(ctx, &models.Post{Content: "unseen", CreatedAt: time.Now()})
	require.NoError(t, err)

	assert.Len(t, agg.Snapshot().Posts, 1, "no updates after Close")
}

func TestAggregator_CloseBeforeStartIsSafe(t *testing.T) {
	_, repo := seededRepo(t)

	agg := NewAggregator(repo)
	agg.Close()
}

func TestAggregator_DerivedAccessors(t *testing.T) {
	_, repo := seededRepo(t)
	ctx := context.Background()

	agg := NewAggregator(repo)
	agg.Start(ctx)
	defer agg.Close()

	snap := agg.Snapshot()
	require.Len(t, snap.Users, 1)
	user := snap.Users[0]

	t.Run("by id", func(t *testing.T) {
		found := agg.UserByID(user.ID)
		require.NotNil(t, found)
		assert.Equal(t, "Sarah Mitchell", found.Name)

		assert.Nil(t, agg.UserByID("missing"))
		assert.Nil(t, agg.EventByID("missing"))
		assert.Nil(t, agg.PostByID("missing"))
	})

	t.Run("events by category", func(t *testing.T) {
		assert.Len(t, agg.EventsByCategory(models.CategoryVolunteering), 1)
		assert.Empty(t, agg.EventsByCategory(models.CategoryFundraising))
	})

	t.Run("resources by category", func(t *testing.T) {
		assert.Len(t, agg.ResourcesByCategory("Networking"), 1)
		assert.Empty(t, agg.ResourcesByCategory("Cooking"))
	})

	t.Run("posts by author", func(t *testing.T) {
		assert.Len(t, agg.PostsByAuthor(user.ID), 1)
		assert.Empty(t, agg.PostsByAuthor("missing"))
	})
}
