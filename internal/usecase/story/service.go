package story

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"storyfeed/internal/common/pagination"
	"storyfeed/internal/repository"
)

// ListInput represents the input parameters for listing stories.
type ListInput struct {
	// Search is matched case-insensitively as a substring against the owning
	// user's username, full name, and biography.
	Search string
	// User is the raw user filter value. A value that is not a valid UUID
	// selects nothing rather than failing the request.
	User string
	// Params carries the parsed cursor and page size.
	Params pagination.CursorParams
}

// ListResult represents one page of the story listing along with its
// navigation links. Next and Previous are nil at the respective boundaries.
type ListResult struct {
	Data     []repository.StoryWithUser
	Next     *string
	Previous *string
}

// SimilarResult represents one page of the similarity ranking. Count is the
// total number of candidates across all pages.
type SimilarResult struct {
	Data     []repository.StoryWithUser
	Count    int64
	Next     *string
	Previous *string
}

// Service provides story read use cases.
// It handles query composition and pagination, and delegates persistence to
// the repository.
type Service struct {
	Repo repository.StoryRepository
}

// ListPage retrieves one page of stories ordered by created_at DESC, id DESC.
//
// The repository is asked for one row beyond the page size to detect whether
// a further page exists. Pages served from a reverse cursor are fetched in
// ascending order and flipped back into display order before returning.
func (s *Service) ListPage(ctx context.Context, requestURL *url.URL, in ListInput) (*ListResult, error) {
	start := time.Now()
	defer func() {
		pagination.RecordDuration("service", time.Since(start).Seconds())
	}()

	strategy := pagination.CursorStrategy{}

	var userUUID *uuid.UUID
	if in.User != "" {
		parsed, err := uuid.Parse(in.User)
		if err != nil {
			// An unparseable user filter matches no stories.
			next, previous := strategy.Nav(requestURL, in.Params.Cursor, false, nil, nil)
			return &ListResult{Data: []repository.StoryWithUser{}, Next: next, Previous: previous}, nil
		}
		userUUID = &parsed
	}

	var keyset *repository.Keyset
	if c := in.Params.Cursor; c != nil {
		keyset = &repository.Keyset{
			CreatedAtMicro: c.CreatedAtMicro,
			ID:             c.ID,
			Reverse:        c.Reverse,
		}
	}

	rows, err := s.Repo.List(ctx, repository.ListParams{
		Search:   in.Search,
		UserUUID: userUUID,
		Keyset:   keyset,
		Limit:    in.Params.PageSize + 1,
	})
	if err != nil {
		pagination.RecordError("database")
		return nil, fmt.Errorf("list stories: %w", err)
	}

	hasMore := len(rows) > in.Params.PageSize
	if hasMore {
		rows = rows[:in.Params.PageSize]
	}
	if keyset != nil && keyset.Reverse {
		reverseRows(rows)
	}

	var first, last *pagination.Edge
	if len(rows) > 0 {
		first = edgeOf(rows[0])
		last = edgeOf(rows[len(rows)-1])
	}
	next, previous := strategy.Nav(requestURL, in.Params.Cursor, hasMore, first, last)

	pagination.RecordResultCount(pagination.StrategyCursor, len(rows))

	return &ListResult{Data: rows, Next: next, Previous: previous}, nil
}

// Get retrieves a single story by its public story_id.
// Returns ErrInvalidStoryID if the ID is empty.
// Returns ErrStoryNotFound if the story does not exist.
func (s *Service) Get(ctx context.Context, storyID string) (*repository.StoryWithUser, error) {
	if storyID == "" {
		return nil, ErrInvalidStoryID
	}

	sw, err := s.Repo.GetByStoryID(ctx, storyID)
	if err != nil {
		return nil, fmt.Errorf("get story: %w", err)
	}
	if sw == nil {
		return nil, ErrStoryNotFound
	}
	return sw, nil
}

// SimilarPage retrieves one page of stories ranked by embedding distance to
// the given source story. An unknown story_id or a source without an
// embedding yields an empty first page, not an error.
// Returns ErrInvalidStoryID if the ID is empty.
// Returns pagination.ErrPageOutOfRange if the page lies beyond the last one.
func (s *Service) SimilarPage(ctx context.Context, requestURL *url.URL, storyID string, params pagination.PageParams) (*SimilarResult, error) {
	if storyID == "" {
		return nil, ErrInvalidStoryID
	}

	start := time.Now()
	defer func() {
		pagination.RecordDuration("service", time.Since(start).Seconds())
	}()

	strategy := pagination.OffsetStrategy{}

	total, err := s.Repo.CountSimilar(ctx, storyID)
	if err != nil {
		pagination.RecordError("database")
		return nil, fmt.Errorf("count similar stories: %w", err)
	}

	if err := strategy.Validate(params, total); err != nil {
		pagination.RecordError("validation")
		return nil, err
	}

	rows, err := s.Repo.ListSimilar(ctx, storyID, strategy.Offset(params), params.PageSize)
	if err != nil {
		pagination.RecordError("database")
		return nil, fmt.Errorf("list similar stories: %w", err)
	}

	next, previous := strategy.Nav(requestURL, params, total)

	pagination.RecordResultCount(pagination.StrategyOffset, len(rows))

	return &SimilarResult{Data: rows, Count: total, Next: next, Previous: previous}, nil
}

func edgeOf(row repository.StoryWithUser) *pagination.Edge {
	return &pagination.Edge{
		CreatedAtMicro: row.Story.CreatedAt.UnixMicro(),
		ID:             row.Story.ID,
	}
}

func reverseRows(rows []repository.StoryWithUser) {
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
}
