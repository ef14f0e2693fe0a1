package story_test

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"

	"storyfeed/internal/common/pagination"
	"storyfeed/internal/domain/entity"
	"storyfeed/internal/repository"
	storyUC "storyfeed/internal/usecase/story"
)

/* ───────── スタブ実装 ───────── */

// 固定の結果を返す最小限の StoryRepository。
// 呼び出し時のパラメータを記録して検証に使う。
type stubRepo struct {
	listRows    []repository.StoryWithUser
	listParams  *repository.ListParams
	listCalls   int
	byID        map[string]*repository.StoryWithUser
	similarRows []repository.StoryWithUser
	similarOff  int
	similarLim  int
	total       int64
	err         error // 強制的にエラーを返したいとき用
}

func (s *stubRepo) List(_ context.Context, params repository.ListParams) ([]repository.StoryWithUser, error) {
	s.listCalls++
	s.listParams = &params
	if s.err != nil {
		return nil, s.err
	}
	if params.Limit < len(s.listRows) {
		return s.listRows[:params.Limit], nil
	}
	return s.listRows, nil
}

func (s *stubRepo) GetByStoryID(_ context.Context, storyID string) (*repository.StoryWithUser, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byID[storyID], nil
}

func (s *stubRepo) ListSimilar(_ context.Context, _ string, offset, limit int) ([]repository.StoryWithUser, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.similarOff, s.similarLim = offset, limit
	return s.similarRows, nil
}

func (s *stubRepo) CountSimilar(_ context.Context, _ string) (int64, error) {
	return s.total, s.err
}

func (s *stubRepo) UserFlags(_ context.Context, _ []uuid.UUID) (map[uuid.UUID]repository.UserFlags, error) {
	return map[uuid.UUID]repository.UserFlags{}, s.err
}

func (s *stubRepo) Count(_ context.Context) (int64, error) {
	return s.total, s.err
}

// rowsDesc builds n rows in display order: newest first, ids n..1.
func rowsDesc(n int) []repository.StoryWithUser {
	base := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	out := make([]repository.StoryWithUser, 0, n)
	for i := n; i >= 1; i-- {
		out = append(out, repository.StoryWithUser{
			Story: &entity.Story{
				ID:        int64(i),
				StoryID:   "story-" + uuid.NewString()[:8],
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
			},
			User: &entity.User{UUID: uuid.New()},
		})
	}
	return out
}

func reverse(rows []repository.StoryWithUser) []repository.StoryWithUser {
	out := make([]repository.StoryWithUser, len(rows))
	for i, r := range rows {
		out[len(rows)-1-i] = r
	}
	return out
}

func listURL(t *testing.T, query string) *url.URL {
	t.Helper()
	u, err := url.Parse("/stories?" + query)
	if err != nil {
		t.Fatal(err)
	}
	return u
}

/* ───────── ListPage ───────── */

func TestListPage_FirstPageWithMore(t *testing.T) {
	repo := &stubRepo{listRows: rowsDesc(25)}
	svc := &storyUC.Service{Repo: repo}

	got, err := svc.ListPage(context.Background(), listURL(t, "page_size=20"), storyUC.ListInput{
		Params: pagination.CursorParams{PageSize: 20},
	})
	if err != nil {
		t.Fatalf("ListPage err=%v", err)
	}

	if len(got.Data) != 20 {
		t.Fatalf("len(Data)=%d, want 20", len(got.Data))
	}
	if repo.listParams.Limit != 21 {
		t.Errorf("repo limit=%d, want 21", repo.listParams.Limit)
	}
	if got.Next == nil {
		t.Error("Next=nil, want link")
	}
	if got.Previous != nil {
		t.Errorf("Previous=%q, want nil", *got.Previous)
	}
	// 次ページのカーソルはページ末尾の行を指す
	if got.Next != nil {
		nextURL, _ := url.Parse(*got.Next)
		cursor, err := pagination.DecodeCursor(nextURL.Query().Get("cursor"))
		if err != nil {
			t.Fatalf("DecodeCursor err=%v", err)
		}
		lastRow := got.Data[len(got.Data)-1]
		if cursor.ID != lastRow.Story.ID || cursor.CreatedAtMicro != lastRow.Story.CreatedAt.UnixMicro() {
			t.Errorf("cursor=%+v does not match last row id=%d", cursor, lastRow.Story.ID)
		}
	}
}

func TestListPage_LastPage(t *testing.T) {
	repo := &stubRepo{listRows: rowsDesc(5)}
	svc := &storyUC.Service{Repo: repo}

	cursor := &pagination.Cursor{CreatedAtMicro: 99, ID: 99}
	got, err := svc.ListPage(context.Background(), listURL(t, "page_size=20"), storyUC.ListInput{
		Params: pagination.CursorParams{Cursor: cursor, PageSize: 20},
	})
	if err != nil {
		t.Fatalf("ListPage err=%v", err)
	}

	if len(got.Data) != 5 {
		t.Fatalf("len(Data)=%d, want 5", len(got.Data))
	}
	if got.Next != nil {
		t.Errorf("Next=%q, want nil", *got.Next)
	}
	if got.Previous == nil {
		t.Error("Previous=nil, want link")
	}
}

func TestListPage_ReverseCursorRestoresDisplayOrder(t *testing.T) {
	display := rowsDesc(3)
	// 逆方向のカーソルではリポジトリが昇順で返す
	repo := &stubRepo{listRows: reverse(display)}
	svc := &storyUC.Service{Repo: repo}

	cursor := &pagination.Cursor{CreatedAtMicro: 1, ID: 1, Reverse: true}
	got, err := svc.ListPage(context.Background(), listURL(t, ""), storyUC.ListInput{
		Params: pagination.CursorParams{Cursor: cursor, PageSize: 20},
	})
	if err != nil {
		t.Fatalf("ListPage err=%v", err)
	}

	if !repo.listParams.Keyset.Reverse {
		t.Error("repo keyset Reverse=false, want true")
	}
	for i := range got.Data {
		if got.Data[i].Story.ID != display[i].Story.ID {
			t.Fatalf("Data[%d].ID=%d, want %d", i, got.Data[i].Story.ID, display[i].Story.ID)
		}
	}
	// 戻った先のページから常に進み直せる
	if got.Next == nil {
		t.Error("Next=nil, want link")
	}
}

func TestListPage_UnparseableUserSelectsNothing(t *testing.T) {
	repo := &stubRepo{listRows: rowsDesc(5)}
	svc := &storyUC.Service{Repo: repo}

	got, err := svc.ListPage(context.Background(), listURL(t, "user=not-a-uuid"), storyUC.ListInput{
		User:   "not-a-uuid",
		Params: pagination.CursorParams{PageSize: 20},
	})
	if err != nil {
		t.Fatalf("ListPage err=%v", err)
	}

	if len(got.Data) != 0 {
		t.Fatalf("len(Data)=%d, want 0", len(got.Data))
	}
	if got.Data == nil {
		t.Error("Data=nil, want empty slice")
	}
	if repo.listCalls != 0 {
		t.Errorf("repo calls=%d, want 0", repo.listCalls)
	}
	if got.Next != nil || got.Previous != nil {
		t.Error("links set on empty uncursored page, want none")
	}
}

func TestListPage_UserFilterPassedToRepo(t *testing.T) {
	repo := &stubRepo{}
	svc := &storyUC.Service{Repo: repo}
	owner := uuid.New()

	_, err := svc.ListPage(context.Background(), listURL(t, "user="+owner.String()), storyUC.ListInput{
		User:   owner.String(),
		Params: pagination.CursorParams{PageSize: 20},
	})
	if err != nil {
		t.Fatalf("ListPage err=%v", err)
	}

	if repo.listParams.UserUUID == nil || *repo.listParams.UserUUID != owner {
		t.Errorf("repo user filter=%v, want %s", repo.listParams.UserUUID, owner)
	}
}

func TestListPage_RepoError(t *testing.T) {
	repo := &stubRepo{err: errors.New("db down")}
	svc := &storyUC.Service{Repo: repo}

	if _, err := svc.ListPage(context.Background(), listURL(t, ""), storyUC.ListInput{
		Params: pagination.CursorParams{PageSize: 20},
	}); err == nil {
		t.Fatal("ListPage err=nil, want error")
	}
}

/* ───────── Get ───────── */

func TestGet(t *testing.T) {
	want := &repository.StoryWithUser{
		Story: &entity.Story{ID: 1, StoryID: "story-1"},
		User:  &entity.User{UUID: uuid.New()},
	}
	repo := &stubRepo{byID: map[string]*repository.StoryWithUser{"story-1": want}}
	svc := &storyUC.Service{Repo: repo}

	got, err := svc.Get(context.Background(), "story-1")
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if got != want {
		t.Errorf("Get=%+v, want %+v", got, want)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := &stubRepo{byID: map[string]*repository.StoryWithUser{}}
	svc := &storyUC.Service{Repo: repo}

	_, err := svc.Get(context.Background(), "absent")
	if !errors.Is(err, storyUC.ErrStoryNotFound) {
		t.Fatalf("Get err=%v, want ErrStoryNotFound", err)
	}
}

func TestGet_EmptyID(t *testing.T) {
	svc := &storyUC.Service{Repo: &stubRepo{}}

	_, err := svc.Get(context.Background(), "")
	if !errors.Is(err, storyUC.ErrInvalidStoryID) {
		t.Fatalf("Get err=%v, want ErrInvalidStoryID", err)
	}
}

/* ───────── SimilarPage ───────── */

func TestSimilarPage(t *testing.T) {
	repo := &stubRepo{total: 45, similarRows: rowsDesc(20)}
	svc := &storyUC.Service{Repo: repo}

	u := listURL(t, "page=2&page_size=20")
	got, err := svc.SimilarPage(context.Background(), u, "story-1", pagination.PageParams{Page: 2, PageSize: 20})
	if err != nil {
		t.Fatalf("SimilarPage err=%v", err)
	}

	if got.Count != 45 {
		t.Errorf("Count=%d, want 45", got.Count)
	}
	if repo.similarOff != 20 || repo.similarLim != 20 {
		t.Errorf("repo offset/limit=(%d,%d), want (20,20)", repo.similarOff, repo.similarLim)
	}
	if got.Next == nil || got.Previous == nil {
		t.Error("middle page should link both ways")
	}
}

func TestSimilarPage_PageBeyondLast(t *testing.T) {
	repo := &stubRepo{total: 45}
	svc := &storyUC.Service{Repo: repo}

	_, err := svc.SimilarPage(context.Background(), listURL(t, "page=4"), "story-1", pagination.PageParams{Page: 4, PageSize: 20})
	if !errors.Is(err, pagination.ErrPageOutOfRange) {
		t.Fatalf("SimilarPage err=%v, want ErrPageOutOfRange", err)
	}
}

func TestSimilarPage_SourceWithoutEmbedding(t *testing.T) {
	// 既知だがエンベディングのないソースは空の1ページ目として扱う
	repo := &stubRepo{total: 0, similarRows: []repository.StoryWithUser{}}
	svc := &storyUC.Service{Repo: repo}

	got, err := svc.SimilarPage(context.Background(), listURL(t, ""), "story-1", pagination.PageParams{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("SimilarPage err=%v", err)
	}
	if got.Count != 0 || len(got.Data) != 0 {
		t.Errorf("got Count=%d len=%d, want empty page", got.Count, len(got.Data))
	}
	if got.Next != nil || got.Previous != nil {
		t.Error("links set on single empty page, want none")
	}
}

func TestSimilarPage_EmptyID(t *testing.T) {
	svc := &storyUC.Service{Repo: &stubRepo{}}

	_, err := svc.SimilarPage(context.Background(), listURL(t, ""), "", pagination.PageParams{Page: 1, PageSize: 20})
	if !errors.Is(err, storyUC.ErrInvalidStoryID) {
		t.Fatalf("SimilarPage err=%v, want ErrInvalidStoryID", err)
	}
}
