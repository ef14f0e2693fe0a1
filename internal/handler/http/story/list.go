package story

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"storyfeed/internal/common/pagination"
	"storyfeed/internal/handler/http/requestid"
	"storyfeed/internal/handler/http/respond"
	"storyfeed/internal/infra/cache"
	"storyfeed/internal/observability/logging"
	storyUC "storyfeed/internal/usecase/story"
)

// listCachePrefix namespaces list-endpoint entries in the shared cache.
const listCachePrefix = "story_list_"

// ListHandler serves the cursor-paginated story listing.
//
// Responses are cached for CacheTTL under a key derived from the full query
// parameter set. A live cache entry is replayed verbatim, bypassing the
// repository entirely; cache failures degrade to direct computation.
type ListHandler struct {
	Svc           *storyUC.Service
	Cache         cache.Store
	CacheTTL      time.Duration
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP ストーリー一覧取得
// @Summary      ストーリー一覧取得（カーソルページネーション対応）
// @Description  登録されているストーリーを新しい順に取得します。cursor パラメータで次ページ・前ページを辿れます。
// @Tags         stories
// @Produce      json
// @Param        search     query    string  false  "ユーザー名・表示名・自己紹介の部分一致検索（大文字小文字を区別しない）"
// @Param        user       query    string  false  "所有ユーザーのUUIDで絞り込み"
// @Param        cursor     query    string  false  "継続トークン"
// @Param        page_size  query    int     false  "1ページあたりの件数" default(20) maximum(100)
// @Success      200 {object} pagination.CursorPage[DTO] "ページネーション付きストーリー一覧"
// @Failure      400 {string} string "Invalid query parameters"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /stories [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	key := cache.Key(listCachePrefix, r.URL.Query())

	if payload, ok, err := h.Cache.Get(ctx, key); err != nil {
		logger.Warn("cache read failed",
			"error", err.Error(),
			"key", key,
			"request_id", reqID)
		pagination.RecordError("cache")
	} else if ok {
		logger.Info("story list served from cache",
			"key", key,
			"request_id", reqID)
		pagination.RecordRequest(http.StatusOK, pagination.StrategyCursor)
		writeCached(w, payload)
		return
	}

	params, err := pagination.ParseCursorParams(r, h.PaginationCfg)
	if err != nil {
		logger.Warn("invalid pagination parameters",
			"error", err.Error(),
			"request_id", reqID)
		pagination.RecordError("validation")
		pagination.RecordRequest(http.StatusBadRequest, pagination.StrategyCursor)
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	search := r.URL.Query().Get("search")
	userFilter := r.URL.Query().Get("user")

	logger.Info("story list request",
		"search", search,
		"user", userFilter,
		"page_size", params.PageSize,
		"has_cursor", params.Cursor != nil,
		"request_id", reqID)

	result, err := h.Svc.ListPage(ctx, r.URL, storyUC.ListInput{
		Search: search,
		User:   userFilter,
		Params: params,
	})
	if err != nil {
		logger.Error("failed to list stories",
			"error", err.Error(),
			"request_id", reqID)
		pagination.RecordRequest(http.StatusInternalServerError, pagination.StrategyCursor)
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	page := pagination.NewCursorPage(toDTOs(result.Data), result.Next, result.Previous)

	// Marshal once. The same bytes go to the client and to the cache, so a
	// later hit replays exactly what this computation produced.
	payload, err := json.Marshal(page)
	if err != nil {
		logger.Error("failed to marshal story list",
			"error", err.Error(),
			"request_id", reqID)
		pagination.RecordRequest(http.StatusInternalServerError, pagination.StrategyCursor)
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	if err := h.Cache.Set(ctx, key, payload, h.CacheTTL); err != nil {
		logger.Warn("cache write failed",
			"error", err.Error(),
			"key", key,
			"request_id", reqID)
		pagination.RecordError("cache")
	}

	duration := time.Since(startTime)
	pagination.RecordRequest(http.StatusOK, pagination.StrategyCursor)
	pagination.RecordDuration("handler", duration.Seconds())

	logger.Info("story list response",
		"returned_count", len(result.Data),
		"has_next", result.Next != nil,
		"duration_ms", duration.Milliseconds(),
		"status", http.StatusOK,
		"request_id", reqID)

	writeCached(w, payload)
}

// writeCached writes a pre-marshaled JSON payload.
func writeCached(w http.ResponseWriter, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		slog.Default().Error("failed to write response", slog.Any("error", err))
	}
}
