package story

import (
	"errors"
	"net/http"

	"storyfeed/internal/handler/http/pathutil"
	"storyfeed/internal/handler/http/respond"
	storyUC "storyfeed/internal/usecase/story"
)

// GetHandler serves the story detail lookup by public story_id.
type GetHandler struct{ Svc *storyUC.Service }

// ServeHTTP ストーリー詳細取得
// @Summary      ストーリー詳細取得
// @Description  指定された story_id のストーリーを取得します（所有ユーザーの管理用フィールドを含む）
// @Tags         stories
// @Produce      json
// @Param        story_id path string true "ストーリーID"
// @Success      200 {object} DetailDTO "ストーリー詳細"
// @Failure      400 {string} string "Bad request - invalid story ID"
// @Failure      404 {string} string "Not found - story not found"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /stories/{story_id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	storyID, err := pathutil.StoryID(r)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	sw, err := h.Svc.Get(r.Context(), storyID)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, storyUC.ErrInvalidStoryID) {
			code = http.StatusBadRequest
		} else if errors.Is(err, storyUC.ErrStoryNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDetailDTO(*sw))
}
