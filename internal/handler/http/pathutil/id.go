package pathutil

import (
	"errors"
	"net/http"
)

// ErrInvalidStoryID is returned when the story_id in the URL path is invalid.
var ErrInvalidStoryID = errors.New("invalid story id")

// maxStoryIDLen bounds the accepted story_id length. Origin-system IDs are
// short numeric strings; anything longer is rejected before hitting the
// database.
const maxStoryIDLen = 128

// StoryID extracts the story_id path segment from a request routed through a
// "/stories/{story_id}" pattern.
//
// Returns:
//   - string: The story_id value
//   - error: ErrInvalidStoryID if the segment is empty or oversized
//
// Example:
//
//	id, err := StoryID(r) // r.URL.Path == "/stories/314159"
//	// Returns: "314159", nil
func StoryID(r *http.Request) (string, error) {
	id := r.PathValue("story_id")
	if id == "" || len(id) > maxStoryIDLen {
		return "", ErrInvalidStoryID
	}
	return id, nil
}
