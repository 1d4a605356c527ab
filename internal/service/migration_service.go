package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"mplsconnect/internal/models"
	"mplsconnect/internal/repository"
	"mplsconnect/internal/seed"
)

// MigrationReport counts what a run created and what it skipped.
type MigrationReport struct {
	Created map[string]int `json:"created"`
	Failed  map[string]int `json:"failed"`
}

// MigrationService copies the fixed seed dataset into the store. Inserts run
// strictly sequentially, in dependency order (users before everything that
// references them), so foreign ids in later entities can be remapped to the
// just-assigned user ids. Each item is best effort: a failure is logged and
// skipped, never fatal to the batch. Re-running performs unconditional
// creates with no existence check and therefore duplicates every document;
// that is the documented behavior, not a bug.
type MigrationService interface {
	MigrateAll(ctx context.Context) *MigrationReport
}

type migrationService struct {
	repo *repository.Repository
	data func() seed.Dataset
}

func NewMigrationService(repo *repository.Repository) MigrationService {
	return &migrationService{repo: repo, data: seed.Data}
}

// NewMigrationServiceWithData lets tests substitute the dataset.
func NewMigrationServiceWithData(repo *repository.Repository, data func() seed.Dataset) MigrationService {
	return &migrationService{repo: repo, data: data}
}

func (m *migrationService) MigrateAll(ctx context.Context) *MigrationReport {
	report := &MigrationReport{
		Created: make(map[string]int),
		Failed:  make(map[string]int),
	}
	data := m.data()

	logrus.Info("starting data migration")

	userIDs := m.migrateUsers(ctx, data.Users, report)
	eventIDs := m.migrateEvents(ctx, data.Events, userIDs, report)
	m.migrateComments(ctx, data.Comments, userIDs, report)
	m.migratePosts(ctx, data.Posts, userIDs, eventIDs, report)
	m.migrateResources(ctx, data.Resources, report)
	m.migrateGroups(ctx, data.Groups, report)

	logrus.WithFields(logrus.Fields{
		"created": report.Created,
		"failed":  report.Failed,
	}).Info("data migration completed")

	return report
}

func (m *migrationService) migrateUsers(ctx context.Context, users []models.User, report *MigrationReport) map[string]string {
	idMap := make(map[string]string, len(users))

	for _, user := range users {
		seedID := user.ID
		user.ID = ""

		id, err := m.repo.User.Create(ctx, &user)
		if err != nil {
			logrus.WithError(err).WithField("name", user.Name).Error("failed to migrate user")
			report.Failed["users"]++
			continue
		}

		idMap[seedID] = id
		report.Created["users"]++
		logrus.WithField("name", user.Name).Info("created user")
	}

	return idMap
}

func (m *migrationService) migrateEvents(ctx context.Context, events []models.Event, userIDs map[string]string, report *MigrationReport) map[string]string {
	idMap := make(map[string]string, len(events))

	for _, event := range events {
		seedID := event.ID
		event.ID = ""
		event.OrganizerID = remap(userIDs, event.OrganizerID)

		id, err := m.repo.Event.Create(ctx, &event)
		if err != nil {
			logrus.WithError(err).WithField("title", event.Title).Error("failed to migrate event")
			report.Failed["events"]++
			continue
		}

		idMap[seedID] = id
		report.Created["events"]++
		logrus.WithField("title", event.Title).Info("created event")
	}

	return idMap
}

// migrateComments runs before posts, matching the fixed migration order, so
// the stored postId still carries the seed value. Dangling post references
// are a tolerated condition on the read path.
func (m *migrationService) migrateComments(ctx context.Context, comments []models.Comment, userIDs map[string]string, report *MigrationReport) {
	for _, comment := range comments {
		comment.ID = ""
		comment.AuthorID = remap(userIDs, comment.AuthorID)

		if _, err := m.repo.Comment.Create(ctx, &comment); err != nil {
			logrus.WithError(err).Error("failed to migrate comment")
			report.Failed["comments"]++
			continue
		}
		report.Created["comments"]++
	}
}

func (m *migrationService) migratePosts(ctx context.Context, posts []models.Post, userIDs, eventIDs map[string]string, report *MigrationReport) {
	for _, post := range posts {
		post.ID = ""
		post.AuthorID = remap(userIDs, post.AuthorID)
		post.EventID = remap(eventIDs, post.EventID)
		post.Comments = nil

		if _, err := m.repo.Post.Create(ctx, &post); err != nil {
			logrus.WithError(err).Error("failed to migrate post")
			report.Failed["posts"]++
			continue
		}
		report.Created["posts"]++
	}
}

func (m *migrationService) migrateResources(ctx context.Context, resources []models.Resource, report *MigrationReport) {
	for _, resource := range resources {
		resource.ID = ""

		if _, err := m.repo.Resource.Create(ctx, &resource); err != nil {
			logrus.WithError(err).WithField("title", resource.Title).Error("failed to migrate resource")
			report.Failed["resources"]++
			continue
		}
		report.Created["resources"]++
	}
}

func (m *migrationService) migrateGroups(ctx context.Context, groups []models.Group, report *MigrationReport) {
	for _, group := range groups {
		group.ID = ""

		if _, err := m.repo.Group.Create(ctx, &group); err != nil {
			logrus.WithError(err).WithField("name", group.Name).Error("failed to migrate group")
			report.Failed["groups"]++
			continue
		}
		report.Created["groups"]++
	}
}

// remap swaps a seed-local id for its store-assigned one; unknown ids are
// kept as stored (a dangling reference the read path tolerates).
func remap(idMap map[string]string, id string) string {
	if mapped, ok := idMap[id]; ok {
		return mapped
	}
	return id
}
