package story_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"storyfeed/internal/common/pagination"
	"storyfeed/internal/domain/entity"
	"storyfeed/internal/handler/http/story"
	"storyfeed/internal/infra/cache"
	"storyfeed/internal/repository"
	storyUC "storyfeed/internal/usecase/story"
	"storyfeed/tests/fixtures"
)

/* ───────── フェイクリポジトリ ───────── */

// fakeRepo serves canned data with real keyset and offset semantics, so the
// handler tests can walk actual pagination flows.
type fakeRepo struct {
	rows    []repository.StoryWithUser            // 表示順 (created_at DESC, id DESC)
	similar map[string][]repository.StoryWithUser // story_id ごとの類似ランキング
	flags   map[uuid.UUID]repository.UserFlags
	err     error
}

func (f *fakeRepo) List(_ context.Context, params repository.ListParams) ([]repository.StoryWithUser, error) {
	if f.err != nil {
		return nil, f.err
	}

	matches := func(row repository.StoryWithUser) bool {
		if params.Search != "" {
			needle := strings.ToLower(params.Search)
			hay := strings.ToLower(row.User.Username + " " + row.User.FullName + " " + row.User.Biography)
			if !strings.Contains(hay, needle) {
				return false
			}
		}
		if params.UserUUID != nil && row.User.UUID != *params.UserUUID {
			return false
		}
		return true
	}

	before := func(row repository.StoryWithUser, k *repository.Keyset) bool {
		c, id := row.Story.CreatedAt.UnixMicro(), row.Story.ID
		return c < k.CreatedAtMicro || (c == k.CreatedAtMicro && id < k.ID)
	}

	var out []repository.StoryWithUser
	if params.Keyset != nil && params.Keyset.Reverse {
		// 境界より新しい行を昇順で返す
		for i := len(f.rows) - 1; i >= 0; i-- {
			row := f.rows[i]
			if !matches(row) || before(row, params.Keyset) {
				continue
			}
			c, id := row.Story.CreatedAt.UnixMicro(), row.Story.ID
			if c == params.Keyset.CreatedAtMicro && id == params.Keyset.ID {
				continue
			}
			out = append(out, row)
			if len(out) == params.Limit {
				break
			}
		}
		return f.annotate(out), nil
	}

	for _, row := range f.rows {
		if !matches(row) {
			continue
		}
		if params.Keyset != nil && !before(row, params.Keyset) {
			continue
		}
		out = append(out, row)
		if len(out) == params.Limit {
			break
		}
	}
	return f.annotate(out), nil
}

func (f *fakeRepo) GetByStoryID(_ context.Context, storyID string) (*repository.StoryWithUser, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, row := range f.rows {
		if row.Story.StoryID == storyID {
			annotated := f.annotate([]repository.StoryWithUser{row})
			return &annotated[0], nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) ListSimilar(_ context.Context, storyID string, offset, limit int) ([]repository.StoryWithUser, error) {
	if f.err != nil {
		return nil, f.err
	}
	ranked := f.similar[storyID]
	if offset >= len(ranked) {
		return []repository.StoryWithUser{}, nil
	}
	end := offset + limit
	if end > len(ranked) {
		end = len(ranked)
	}
	return f.annotate(ranked[offset:end]), nil
}

func (f *fakeRepo) CountSimilar(_ context.Context, storyID string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(f.similar[storyID])), nil
}

func (f *fakeRepo) UserFlags(_ context.Context, uuids []uuid.UUID) (map[uuid.UUID]repository.UserFlags, error) {
	out := make(map[uuid.UUID]repository.UserFlags, len(uuids))
	for _, id := range uuids {
		out[id] = f.flags[id]
	}
	return out, nil
}

func (f *fakeRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.rows)), nil
}

func (f *fakeRepo) annotate(rows []repository.StoryWithUser) []repository.StoryWithUser {
	out := make([]repository.StoryWithUser, len(rows))
	for i, row := range rows {
		fl := f.flags[row.User.UUID]
		row.HasStories = fl.HasStories
		row.HasHistory = fl.HasHistory
		out[i] = row
	}
	return out
}

/* ───────── 共通ヘルパ ───────── */

func makeRow(id int64, storyID string, owner *entity.User, at time.Time) repository.StoryWithUser {
	st := fixtures.NewStory(fixtures.StoryOptions{
		ID:        id,
		StoryID:   storyID,
		Owner:     owner,
		CreatedAt: at,
	})
	return repository.StoryWithUser{Story: st, User: owner}
}

// makeRows builds n rows in display order, newest (id=n) first.
func makeRows(n int, owner *entity.User) []repository.StoryWithUser {
	return fixtures.StorySequence(n, owner)
}

// olderTime is earlier than anything makeRows produces, keeping appended
// rows at the end of the display order.
func olderTime() time.Time {
	return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
}

func testUser(name string) *entity.User {
	return fixtures.NewUser(fixtures.UserOptions{Username: name, Biography: "bio of " + name})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newMux wires the three story routes the same way the server does.
func newMux(t *testing.T, repo repository.StoryRepository, store cache.Store) *http.ServeMux {
	t.Helper()

	mux := http.NewServeMux()
	svc := &storyUC.Service{Repo: repo}
	story.Register(mux, svc, store, 30*time.Second, pagination.DefaultConfig(), pagination.DefaultConfig(), discardLogger())
	return mux
}

/* ───────── 失敗するキャッシュ ───────── */

type failingStore struct{ err error }

func (s failingStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, s.err }
func (s failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return s.err
}
func (s failingStore) Delete(context.Context, string) error { return s.err }
