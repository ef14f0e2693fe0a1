// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Story and User, along with
// their domain-specific errors.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Story represents a single story record in the system.
// Stories are ingested by an external pipeline and are read-only here.
type Story struct {
	ID             int64
	StoryID        string // public lookup key, distinct from the surrogate ID
	UserUUID       uuid.UUID
	Thumbnail      string
	BlurDataURL    string
	Media          string
	CreatedAt      time.Time // record creation time, default ordering key
	StoryCreatedAt time.Time // creation time reported by the origin system
}
