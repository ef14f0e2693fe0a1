package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"golang.org/x/sync/errgroup"

	"storyfeed/internal/domain/entity"
	"storyfeed/internal/repository"
)

// DBTX is the read-only query surface the repository needs. It is satisfied
// by *sql.DB and by the circuit-breaker wrapper around it.
type DBTX interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// storyColumns is the SELECT list shared by every story query. The owning
// user is always joined; the embedding is never selected (it only feeds the
// ORDER BY of the similarity query).
const storyColumns = `
s.id, s.story_id, s.user_uuid, s.thumbnail, s.blur_data_url, s.media, s.created_at, s.story_created_at,
u.uuid, u.instagram_id, u.username, u.full_name, u.profile_picture, u.biography,
u.is_private, u.is_verified, u.media_count, u.follower_count, u.following_count,
u.allow_auto_update_stories, u.allow_auto_update_profile,
u.auto_update_stories_limit_count, u.auto_update_profile_limit_count,
u.created_at, u.updated_at, u.api_updated_at`

type StoryRepo struct {
	db           DBTX
	queryBuilder *StoryQueryBuilder
}

func NewStoryRepo(db DBTX) repository.StoryRepository {
	return &StoryRepo{
		db:           db,
		queryBuilder: NewStoryQueryBuilder(),
	}
}

// List retrieves stories ordered by created_at DESC, id DESC with their
// owning users resolved in a single JOIN and flag-annotated per page.
func (repo *StoryRepo) List(ctx context.Context, params repository.ListParams) ([]repository.StoryWithUser, error) {
	whereClause, args := repo.queryBuilder.BuildWhereClause(params.Search, params.UserUUID, params.Keyset)
	orderClause := repo.queryBuilder.BuildOrderClause(params.Keyset)

	args = append(args, params.Limit)
	query := fmt.Sprintf(`
SELECT %s
FROM stories s
INNER JOIN users u ON s.user_uuid = u.uuid
%s
%s
LIMIT $%d`, storyColumns, whereClause, orderClause, len(args))

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]repository.StoryWithUser, 0, params.Limit)
	for rows.Next() {
		item, err := scanStoryWithUser(rows)
		if err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}

	if err := repo.annotate(ctx, result); err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return result, nil
}

// GetByStoryID retrieves a single story by its public story_id.
// Returns (nil, nil) if the story is not found.
func (repo *StoryRepo) GetByStoryID(ctx context.Context, storyID string) (*repository.StoryWithUser, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM stories s
INNER JOIN users u ON s.user_uuid = u.uuid
WHERE s.story_id = $1
LIMIT 1`, storyColumns)

	rows, err := repo.db.QueryContext(ctx, query, storyID)
	if err != nil {
		return nil, fmt.Errorf("GetByStoryID: %w", err)
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("GetByStoryID: %w", err)
		}
		return nil, nil
	}
	item, err := scanStoryWithUser(rows)
	if err != nil {
		return nil, fmt.Errorf("GetByStoryID: %w", err)
	}

	page := []repository.StoryWithUser{item}
	if err := repo.annotate(ctx, page); err != nil {
		return nil, fmt.Errorf("GetByStoryID: %w", err)
	}
	return &page[0], nil
}

// ListSimilar retrieves stories ranked by ascending L2 distance from the
// source story's embedding, ties broken by id for a deterministic order.
// An unknown source or one without an embedding yields an empty slice.
func (repo *StoryRepo) ListSimilar(ctx context.Context, storyID string, offset, limit int) ([]repository.StoryWithUser, error) {
	vector, ok, err := repo.sourceEmbedding(ctx, storyID)
	if err != nil {
		return nil, fmt.Errorf("ListSimilar: %w", err)
	}
	if !ok {
		return []repository.StoryWithUser{}, nil
	}

	query := fmt.Sprintf(`
SELECT %s
FROM stories s
INNER JOIN users u ON s.user_uuid = u.uuid
WHERE s.embedding IS NOT NULL AND s.story_id <> $1
ORDER BY s.embedding <-> $2 ASC, s.id ASC
LIMIT $3 OFFSET $4`, storyColumns)

	rows, err := repo.db.QueryContext(ctx, query, storyID, vector, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListSimilar: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]repository.StoryWithUser, 0, limit)
	for rows.Next() {
		item, err := scanStoryWithUser(rows)
		if err != nil {
			return nil, fmt.Errorf("ListSimilar: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListSimilar: %w", err)
	}

	if err := repo.annotate(ctx, result); err != nil {
		return nil, fmt.Errorf("ListSimilar: %w", err)
	}
	return result, nil
}

// CountSimilar returns the number of candidates ListSimilar ranks over.
func (repo *StoryRepo) CountSimilar(ctx context.Context, storyID string) (int64, error) {
	_, ok, err := repo.sourceEmbedding(ctx, storyID)
	if err != nil {
		return 0, fmt.Errorf("CountSimilar: %w", err)
	}
	if !ok {
		return 0, nil
	}

	const query = `SELECT COUNT(*) FROM stories WHERE embedding IS NOT NULL AND story_id <> $1`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query, storyID).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountSimilar: %w", err)
	}
	return count, nil
}

// Count returns the total number of stories.
func (repo *StoryRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stories`).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

// sourceEmbedding resolves the embedding of the similarity source story.
// ok is false when the story does not exist or has no embedding.
func (repo *StoryRepo) sourceEmbedding(ctx context.Context, storyID string) (pgvector.Vector, bool, error) {
	const query = `SELECT embedding FROM stories WHERE story_id = $1 LIMIT 1`

	var raw sql.NullString
	err := repo.db.QueryRowContext(ctx, query, storyID).Scan(&raw)
	if err == sql.ErrNoRows {
		return pgvector.Vector{}, false, nil
	}
	if err != nil {
		return pgvector.Vector{}, false, fmt.Errorf("sourceEmbedding: %w", err)
	}
	if !raw.Valid {
		return pgvector.Vector{}, false, nil
	}

	var vector pgvector.Vector
	if err := vector.Scan(raw.String); err != nil {
		return pgvector.Vector{}, false, fmt.Errorf("sourceEmbedding: Scan: %w", err)
	}
	return vector, true, nil
}

// UserFlags computes has_stories/has_history for a batch of users.
// One existence query per flag per batch, run concurrently. This is the only
// flag computation path, so pages never degenerate into per-row queries.
func (repo *StoryRepo) UserFlags(ctx context.Context, uuids []uuid.UUID) (map[uuid.UUID]repository.UserFlags, error) {
	flags := make(map[uuid.UUID]repository.UserFlags, len(uuids))
	if len(uuids) == 0 {
		return flags, nil
	}

	seen := make(map[uuid.UUID]struct{}, len(uuids))
	ids := make([]string, 0, len(uuids))
	for _, id := range uuids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id.String())
		flags[id] = repository.UserFlags{}
	}

	var withStories, withHistory map[uuid.UUID]bool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		withStories, err = repo.existingUUIDs(gctx,
			`SELECT DISTINCT user_uuid FROM stories WHERE user_uuid = ANY($1::uuid[])`, ids)
		return err
	})
	g.Go(func() error {
		var err error
		withHistory, err = repo.existingUUIDs(gctx,
			`SELECT DISTINCT uuid FROM user_history WHERE uuid = ANY($1::uuid[])`, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("UserFlags: %w", err)
	}

	for id := range flags {
		flags[id] = repository.UserFlags{
			HasStories: withStories[id],
			HasHistory: withHistory[id],
		}
	}
	return flags, nil
}

// existingUUIDs runs a membership query and returns the set of UUIDs present.
func (repo *StoryRepo) existingUUIDs(ctx context.Context, query string, ids []string) (map[uuid.UUID]bool, error) {
	rows, err := repo.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make(map[uuid.UUID]bool, len(ids))
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		result[id] = true
	}
	return result, rows.Err()
}

// annotate fills the user flags for a page of results.
func (repo *StoryRepo) annotate(ctx context.Context, page []repository.StoryWithUser) error {
	if len(page) == 0 {
		return nil
	}
	uuids := make([]uuid.UUID, 0, len(page))
	for _, item := range page {
		uuids = append(uuids, item.User.UUID)
	}
	flags, err := repo.UserFlags(ctx, uuids)
	if err != nil {
		return err
	}
	for i := range page {
		f := flags[page[i].User.UUID]
		page[i].HasStories = f.HasStories
		page[i].HasHistory = f.HasHistory
	}
	return nil
}

// scanStoryWithUser scans one joined story+user row.
func scanStoryWithUser(rows *sql.Rows) (repository.StoryWithUser, error) {
	var story entity.Story
	var user entity.User
	err := rows.Scan(
		&story.ID, &story.StoryID, &story.UserUUID,
		&story.Thumbnail, &story.BlurDataURL, &story.Media,
		&story.CreatedAt, &story.StoryCreatedAt,
		&user.UUID, &user.InstagramID, &user.Username, &user.FullName,
		&user.ProfilePicture, &user.Biography,
		&user.IsPrivate, &user.IsVerified,
		&user.MediaCount, &user.FollowerCount, &user.FollowingCount,
		&user.AllowAutoUpdateStories, &user.AllowAutoUpdateProfile,
		&user.AutoUpdateStoriesLimitCount, &user.AutoUpdateProfileLimitCount,
		&user.CreatedAt, &user.UpdatedAt, &user.APIUpdatedAt,
	)
	if err != nil {
		return repository.StoryWithUser{}, fmt.Errorf("Scan: %w", err)
	}
	return repository.StoryWithUser{Story: &story, User: &user}, nil
}
