package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"mplsconnect/internal/docstore"
)

// EventCategory is the closed set of event categories.
type EventCategory string

const (
	CategoryCommunity     EventCategory = "Community"
	CategoryVolunteering  EventCategory = "Volunteering"
	CategorySmallBusiness EventCategory = "Small Business"
	CategorySocialDinners EventCategory = "Social Dinners"
	CategoryNetworking    EventCategory = "Networking"
	CategoryFundraising   EventCategory = "Fundraising"
	CategoryEnvironmental EventCategory = "Environmental"
	CategorySocialJustice EventCategory = "Social Justice"
)

// ResourceType is the closed set of library resource types.
type ResourceType string

const (
	ResourceArticle ResourceType = "Article"
	ResourceVideo   ResourceType = "Video"
	ResourcePodcast ResourceType = "Podcast"
	ResourceGuide   ResourceType = "Guide"
	ResourceToolkit ResourceType = "Toolkit"
)

type User struct {
	ID           string   `json:"id,omitempty"`
	UID          string   `json:"uid,omitempty"` // auth provider account id
	Name         string   `json:"name"`
	Age          int      `json:"age,omitempty"`
	Location     string   `json:"location"`
	Occupation   string   `json:"occupation,omitempty"`
	Sexuality    string   `json:"sexuality,omitempty"`
	ProfileImage string   `json:"profileImage,omitempty"`
	Bio          string   `json:"bio,omitempty"`
	Interests    []string `json:"interests"`
	Verified     bool     `json:"verified"`
}

type Event struct {
	ID           string        `json:"id,omitempty"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Date         string        `json:"date"`
	Time         string        `json:"time"`
	Location     string        `json:"location"`
	Category     EventCategory `json:"category"`
	Image        string        `json:"image,omitempty"`
	Attendees    int           `json:"attendees"`
	MaxAttendees int           `json:"maxAttendees,omitempty"`
	// OrganizerID is the stored foreign id; Organizer is resolved at read
	// time and falls back to whatever was embedded in the document.
	OrganizerID string   `json:"organizerId,omitempty"`
	Organizer   *User    `json:"organizer,omitempty"`
	Tags        []string `json:"tags"`
}

type Post struct {
	ID       string `json:"id,omitempty"`
	AuthorID string `json:"authorId,omitempty"`
	Author   *User  `json:"author,omitempty"`
	Content  string `json:"content"`
	Image    string `json:"image,omitempty"`
	// CreatedAt orders the feed; Timestamp is the derived display string.
	CreatedAt time.Time `json:"createdAt,omitzero"`
	Timestamp string    `json:"timestamp,omitempty"`
	Likes     int       `json:"likes"`
	EventID   string    `json:"eventId,omitempty"`
	Event     *Event    `json:"event,omitempty"`
	Comments  []Comment `json:"comments,omitempty"`
}

type Comment struct {
	ID        string    `json:"id,omitempty"`
	PostID    string    `json:"postId,omitempty"`
	AuthorID  string    `json:"authorId,omitempty"`
	Author    *User     `json:"author,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	Timestamp string    `json:"timestamp,omitempty"`
	Likes     int       `json:"likes"`
}

type Resource struct {
	ID          string       `json:"id,omitempty"`
	Title       string       `json:"title"`
	Type        ResourceType `json:"type"`
	Duration    string       `json:"duration"`
	Category    string       `json:"category"`
	Description string       `json:"description,omitempty"`
	URL         string       `json:"url,omitempty"`
}

type Group struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MemberCount int    `json:"memberCount"`
	NewMessages int    `json:"newMessages"`
	Image       string `json:"image,omitempty"`
	Category    string `json:"category"`
}

// ToDocument converts an entity into a schemaless document. The id never
// lives inside the document; the store assigns and carries it.
func ToDocument(v any) (docstore.Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode entity: %w", err)
	}

	var doc docstore.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to build document: %w", err)
	}

	delete(doc, "id")
	return doc, nil
}

// FromRecord decodes a stored record into a typed entity, injecting the
// store-assigned id.
func FromRecord(rec docstore.Record, v any) error {
	doc := docstore.Clone(rec.Doc)
	if doc == nil {
		doc = docstore.Document{}
	}
	doc["id"] = rec.ID

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return nil
}

// DisplayTime renders a stored instant as the relative string the feed
// shows ("1 hour ago"). Zero instants keep whatever display string was
// stored with the document.
func DisplayTime(t time.Time, stored string) string {
	if t.IsZero() {
		return stored
	}
	return humanize.Time(t)
}
