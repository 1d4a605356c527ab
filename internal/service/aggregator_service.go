package service

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"mplsconnect/internal/models"
	"mplsconnect/internal/repository"
)

// Snapshot is the unified in-memory view the screens consume. Slices are
// updated independently by the live subscriptions and are not transactionally
// consistent with each other.
type Snapshot struct {
	Users     []models.User     `json:"users"`
	Events    []models.Event    `json:"events"`
	Posts     []models.Post     `json:"posts"`
	Resources []models.Resource `json:"resources"`
	Groups    []models.Group    `json:"groups"`
	Loading   bool              `json:"loading"`
	Error     string            `json:"error,omitempty"`
}

// Aggregator composes the five read-heavy repositories into one snapshot:
// a concurrent initial load plus one live subscription per entity type.
type Aggregator struct {
	repo *repository.Repository

	mu        sync.RWMutex
	snap      Snapshot
	unsubs    []func()
	closeOnce sync.Once
}

func NewAggregator(repo *repository.Repository) *Aggregator {
	return &Aggregator{
		repo: repo,
		snap: Snapshot{Loading: true},
	}
}

// Start registers the live subscriptions and then runs the five initial
// fetches concurrently, returning once all have settled. A failed fetch
// records the first failure's message as the snapshot error; slices that did
// load stay available. There is no ordering guarantee between the initial
// load finishing and the first subscription callback, so both paths write
// through the same setters.
func (a *Aggregator) Start(ctx context.Context) {
	a.subscribeAll()

	var wg sync.WaitGroup
	wg.Add(5)

	go func() {
		defer wg.Done()
		users, err := a.repo.User.GetAll(ctx)
		if err != nil {
			a.recordError(err)
			return
		}
		a.setUsers(users)
	}()
	go func() {
		defer wg.Done()
		events, err := a.repo.Event.GetAll(ctx)
		if err != nil {
			a.recordError(err)
			return
		}
		a.setEvents(events)
	}()
	go func() {
		defer wg.Done()
		posts, err := a.repo.Post.GetAll(ctx)
		if err != nil {
			a.recordError(err)
			return
		}
		a.setPosts(posts)
	}()
	go func() {
		defer wg.Done()
		resources, err := a.repo.Resource.GetAll(ctx)
		if err != nil {
			a.recordError(err)
			return
		}
		a.setResources(resources)
	}()
	go func() {
		defer wg.Done()
		groups, err := a.repo.Group.GetAll(ctx)
		if err != nil {
			a.recordError(err)
			return
		}
		a.setGroups(groups)
	}()

	wg.Wait()

	a.mu.Lock()
	a.snap.Loading = false
	a.mu.Unlock()
}

// Close detaches all subscriptions exactly once. It is safe to call before
// Start has completed; it does not cancel fetches already in flight.
func (a *Aggregator) Close() {
	a.closeOnce.Do(func() {
		a.mu.Lock()
		unsubs := a.unsubs
		a.unsubs = nil
		a.mu.Unlock()

		for _, unsub := range unsubs {
			unsub()
		}
	})
}

// Snapshot returns a copy of the current unified state.
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	snap := a.snap
	snap.Users = append([]models.User(nil), a.snap.Users...)
	snap.Events = append([]models.Event(nil), a.snap.Events...)
	snap.Posts = append([]models.Post(nil), a.snap.Posts...)
	snap.Resources = append([]models.Resource(nil), a.snap.Resources...)
	snap.Groups = append([]models.Group(nil), a.snap.Groups...)
	return snap
}

func (a *Aggregator) UserByID(id string) *models.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for i := range a.snap.Users {
		if a.snap.Users[i].ID == id {
			u := a.snap.Users[i]
			return &u
		}
	}
	return nil
}

func (a *Aggregator) EventByID(id string) *models.Event {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for i := range a.snap.Events {
		if a.snap.Events[i].ID == id {
			e := a.snap.Events[i]
			return &e
		}
	}
	return nil
}

func (a *Aggregator) PostByID(id string) *models.Post {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for i := range a.snap.Posts {
		if a.snap.Posts[i].ID == id {
			p := a.snap.Posts[i]
			return &p
		}
	}
	return nil
}

func (a *Aggregator) ResourceByID(id string) *models.Resource {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for i := range a.snap.Resources {
		if a.snap.Resources[i].ID == id {
			r := a.snap.Resources[i]
			return &r
		}
	}
	return nil
}

func (a *Aggregator) GroupByID(id string) *models.Group {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for i := range a.snap.Groups {
		if a.snap.Groups[i].ID == id {
			g := a.snap.Groups[i]
			return &g
		}
	}
	return nil
}

func (a *Aggregator) EventsByCategory(category models.EventCategory) []models.Event {
	a.mu.RLock()
	defer a.mu.RUnlock()
	var out []models.Event
	for _, e := range a.snap.Events {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

func (a *Aggregator) ResourcesByCategory(category string) []models.Resource {
	a.mu.RLock()
	defer a.mu.RUnlock()
	var out []models.Resource
	for _, r := range a.snap.Resources {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}

func (a *Aggregator) PostsByAuthor(authorID string) []models.Post {
	a.mu.RLock()
	defer a.mu.RUnlock()
	var out []models.Post
	for _, p := range a.snap.Posts {
		if p.AuthorID == authorID || (p.Author != nil && p.Author.ID == authorID) {
			out = append(out, p)
		}
	}
	return out
}

func (a *Aggregator) subscribeAll() {
	subscribe := func(name string, sub func() (func(), error)) {
		unsub, err := sub()
		if err != nil {
			logrus.WithError(err).WithField("collection", name).Warn("live subscription unavailable")
			return
		}
		a.mu.Lock()
		a.unsubs = append(a.unsubs, unsub)
		a.mu.Unlock()
	}

	subscribe("users", func() (func(), error) {
		return a.repo.User.Subscribe(a.setUsers)
	})
	subscribe("events", func() (func(), error) {
		return a.repo.Event.Subscribe(a.setEvents)
	})
	subscribe("posts", func() (func(), error) {
		return a.repo.Post.Subscribe(a.setPosts)
	})
	subscribe("resources", func() (func(), error) {
		return a.repo.Resource.Subscribe(a.setResources)
	})
	subscribe("groups", func() (func(), error) {
		return a.repo.Group.Subscribe(a.setGroups)
	})
}

func (a *Aggregator) recordError(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.snap.Error == "" {
		a.snap.Error = err.Error()
	}
}

func (a *Aggregator) setUsers(users []models.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.snap.Users = users
}

func (a *Aggregator) setEvents(events []models.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.snap.Events = events
}

func (a *Aggregator) setPosts(posts []models.Post) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.snap.Posts = posts
}

func (a *Aggregator) setResources(resources []models.Resource) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.snap.Resources = resources
}

func (a *Aggregator) setGroups(groups []models.Group) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.snap.Groups = groups
}
