// Package story provides use cases for the story read API.
// It implements the listing, detail, and similarity queries over the story
// repository and builds the pagination navigation for each page served.
package story

import "errors"

// Sentinel errors for story use case operations.
var (
	// ErrStoryNotFound indicates that the requested story was not found.
	// This error is typically returned when resolving a story_id that does
	// not exist in the repository.
	ErrStoryNotFound = errors.New("story not found")

	// ErrInvalidStoryID indicates that the provided story_id is invalid.
	// Story IDs must be non-empty strings.
	ErrInvalidStoryID = errors.New("invalid story ID")
)
