package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents the owner of one or more stories.
// User rows are maintained by an external ingestion pipeline; this service
// only reads them alongside stories.
type User struct {
	UUID                        uuid.UUID
	InstagramID                 string
	Username                    string
	FullName                    string
	ProfilePicture              string
	Biography                   string
	IsPrivate                   bool
	IsVerified                  bool
	MediaCount                  int64
	FollowerCount               int64
	FollowingCount              int64
	AllowAutoUpdateStories      bool
	AllowAutoUpdateProfile      bool
	AutoUpdateStoriesLimitCount int64
	AutoUpdateProfileLimitCount int64
	CreatedAt                   time.Time
	UpdatedAt                   time.Time
	APIUpdatedAt                time.Time
}
