// Package repository defines persistence-facing interfaces for the story read path.
package repository

import (
	"context"

	"github.com/google/uuid"

	"storyfeed/internal/domain/entity"
)

// StoryWithUser represents a story along with its owning user and the
// request-time existence flags computed for that user.
type StoryWithUser struct {
	Story      *entity.Story
	User       *entity.User
	HasStories bool
	HasHistory bool
}

// UserFlags holds the derived booleans annotated onto embedded users.
// They are computed per request via batched EXISTS queries, never stored.
type UserFlags struct {
	HasStories bool
	HasHistory bool
}

// Keyset identifies a position in the created_at DESC, id DESC ordering.
// Reverse selects rows after the position in ascending order, which is how
// a "previous" page is served.
type Keyset struct {
	CreatedAtMicro int64
	ID             int64
	Reverse        bool
}

// ListParams contains the selection criteria for the story list query.
type ListParams struct {
	// Search matches case-insensitively as a substring against the owning
	// user's username, full_name, or biography (OR across the three fields).
	Search string
	// UserUUID, if set, restricts results to stories owned by that user.
	UserUUID *uuid.UUID
	// Keyset, if set, resumes the listing from a cursor position.
	Keyset *Keyset
	// Limit is the maximum number of rows to return. Callers pass one more
	// than the page size to detect whether another page exists.
	Limit int
}

type StoryRepository interface {
	// List retrieves stories ordered by created_at DESC, id DESC with their
	// owning users eagerly resolved and flag-annotated.
	List(ctx context.Context, params ListParams) ([]StoryWithUser, error)
	// GetByStoryID retrieves a single story by its public story_id.
	// Returns (nil, nil) if the story is not found.
	GetByStoryID(ctx context.Context, storyID string) (*StoryWithUser, error)
	// ListSimilar retrieves stories ranked by ascending L2 distance between
	// their embedding and the source story's embedding. The source story is
	// always excluded. An unknown story_id or a source without an embedding
	// yields an empty slice, not an error.
	ListSimilar(ctx context.Context, storyID string, offset, limit int) ([]StoryWithUser, error)
	// CountSimilar returns the number of candidates ListSimilar ranks over,
	// using the same predicate. Returns 0 for an unknown or embedding-less
	// source story.
	CountSimilar(ctx context.Context, storyID string) (int64, error)
	// UserFlags computes has_stories/has_history for a batch of users.
	// One existence query per flag per batch, never one per row.
	UserFlags(ctx context.Context, uuids []uuid.UUID) (map[uuid.UUID]UserFlags, error)
	// Count returns the total number of stories. Used by the metrics gauge,
	// never by the paginated endpoints.
	Count(ctx context.Context) (int64, error)
}
