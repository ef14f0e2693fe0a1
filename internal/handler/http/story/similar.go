package story

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"storyfeed/internal/common/pagination"
	"storyfeed/internal/handler/http/pathutil"
	"storyfeed/internal/handler/http/requestid"
	"storyfeed/internal/handler/http/respond"
	"storyfeed/internal/observability/logging"
	storyUC "storyfeed/internal/usecase/story"
)

// SimilarHandler serves the page-numbered similarity ranking for one story.
// A source story that does not exist or has no embedding yields an empty
// first page, not an error.
type SimilarHandler struct {
	Svc           *storyUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP 類似ストーリー取得
// @Summary      類似ストーリー取得（ページ番号指定）
// @Description  指定されたストーリーの埋め込みベクトルに近い順に他のストーリーを取得します。元のストーリー自身は常に除外されます。
// @Tags         stories
// @Produce      json
// @Param        story_id   path     string  true   "ストーリーID"
// @Param        page       query    int     false  "ページ番号 (1-based)" default(1) minimum(1)
// @Param        page_size  query    int     false  "1ページあたりの件数" default(20) maximum(100)
// @Success      200 {object} pagination.OffsetPage[DTO] "ページネーション付き類似ストーリー一覧"
// @Failure      400 {string} string "Invalid query parameters"
// @Failure      404 {string} string "Not found - page beyond the last available page"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /stories/{story_id}/similar [get]
func (h SimilarHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	storyID, err := pathutil.StoryID(r)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	params, err := pagination.ParsePageParams(r, h.PaginationCfg)
	if err != nil {
		logger.Warn("invalid pagination parameters",
			"error", err.Error(),
			"story_id", storyID,
			"request_id", reqID)
		pagination.RecordError("validation")
		pagination.RecordRequest(http.StatusBadRequest, pagination.StrategyOffset)
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.Svc.SimilarPage(ctx, r.URL, storyID, params)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, pagination.ErrPageOutOfRange) {
			code = http.StatusNotFound
		} else if errors.Is(err, storyUC.ErrInvalidStoryID) {
			code = http.StatusBadRequest
		}
		if code == http.StatusInternalServerError {
			logger.Error("failed to list similar stories",
				"error", err.Error(),
				"story_id", storyID,
				"request_id", reqID)
		}
		pagination.RecordRequest(code, pagination.StrategyOffset)
		respond.SafeError(w, code, err)
		return
	}

	page := pagination.NewOffsetPage(toDTOs(result.Data), result.Count, result.Next, result.Previous)

	duration := time.Since(startTime)
	pagination.RecordRequest(http.StatusOK, pagination.StrategyOffset)
	pagination.RecordDuration("handler", duration.Seconds())

	logger.Info("similar stories response",
		"story_id", storyID,
		"page", params.Page,
		"returned_count", len(result.Data),
		"total", result.Count,
		"duration_ms", duration.Milliseconds(),
		"status", http.StatusOK,
		"request_id", reqID)

	respond.JSON(w, http.StatusOK, page)
}
