// Package fixtures provides reusable test data generators.
// This package eliminates test data duplication and ensures consistent
// entities across different test suites.
package fixtures

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"storyfeed/internal/domain/entity"
	"storyfeed/internal/repository"
)

// UserOptions configures a generated user.
type UserOptions struct {
	// Username overrides the generated username when non-empty.
	Username string
	// Biography overrides the generated biography when non-empty.
	Biography string
	// Verified marks the user as verified.
	Verified bool
}

// NewUser generates a user with plausible field values.
// Every call returns a distinct UUID.
func NewUser(opts UserOptions) *entity.User {
	id := uuid.New()
	username := opts.Username
	if username == "" {
		username = fmt.Sprintf("user_%s", id.String()[:8])
	}
	biography := opts.Biography
	if biography == "" {
		biography = "Fixture biography for " + username
	}

	now := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	return &entity.User{
		UUID:           id,
		InstagramID:    fmt.Sprintf("%d", rand.Int63n(1_000_000_000)),
		Username:       username,
		FullName:       "Full " + username,
		ProfilePicture: "https://cdn.example.com/profiles/" + username + ".jpg",
		Biography:      biography,
		IsVerified:     opts.Verified,
		MediaCount:     int64(rand.Intn(500)),
		FollowerCount:  int64(rand.Intn(100_000)),
		FollowingCount: int64(rand.Intn(2_000)),
		CreatedAt:      now,
		UpdatedAt:      now,
		APIUpdatedAt:   now,
	}
}

// StoryOptions configures a generated story.
type StoryOptions struct {
	// ID is the surrogate primary key. Callers control it so ordering-sensitive
	// tests can build deterministic sequences.
	ID int64
	// StoryID overrides the derived "story-<ID>" public key when non-empty.
	StoryID string
	// Owner is the owning user. Required.
	Owner *entity.User
	// CreatedAt is the record creation time, the default ordering key.
	CreatedAt time.Time
}

// NewStory generates a story owned by opts.Owner.
func NewStory(opts StoryOptions) *entity.Story {
	storyID := opts.StoryID
	if storyID == "" {
		storyID = fmt.Sprintf("story-%d", opts.ID)
	}
	return &entity.Story{
		ID:             opts.ID,
		StoryID:        storyID,
		UserUUID:       opts.Owner.UUID,
		Thumbnail:      fmt.Sprintf("https://cdn.example.com/thumbs/%d.jpg", opts.ID),
		BlurDataURL:    "data:image/webp;base64,UklGRiQAAABXRUJQ",
		Media:          fmt.Sprintf("https://cdn.example.com/media/%d.mp4", opts.ID),
		CreatedAt:      opts.CreatedAt,
		StoryCreatedAt: opts.CreatedAt.Add(-time.Minute),
	}
}

// StorySequence generates n stories for one owner in display order (newest
// first), one minute apart. IDs run n..1 so the newest story has the
// highest ID.
func StorySequence(n int, owner *entity.User) []repository.StoryWithUser {
	base := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	out := make([]repository.StoryWithUser, 0, n)
	for i := n; i >= 1; i-- {
		story := NewStory(StoryOptions{
			ID:        int64(i),
			Owner:     owner,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		out = append(out, repository.StoryWithUser{Story: story, User: owner})
	}
	return out
}
