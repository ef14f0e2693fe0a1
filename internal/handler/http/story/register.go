package story

import (
	"log/slog"
	"net/http"
	"time"

	"storyfeed/internal/common/pagination"
	"storyfeed/internal/infra/cache"
	storyUC "storyfeed/internal/usecase/story"
)

// Register registers the story read endpoints with the given mux.
// All three routes are public reads; no authentication is applied.
// listCfg and similarCfg are separate so the two endpoints can carry
// independent page-size defaults.
func Register(mux *http.ServeMux, svc *storyUC.Service, store cache.Store, cacheTTL time.Duration, listCfg, similarCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET /stories", ListHandler{
		Svc:           svc,
		Cache:         store,
		CacheTTL:      cacheTTL,
		PaginationCfg: listCfg,
		Logger:        logger,
	})
	mux.Handle("GET /stories/{story_id}", GetHandler{Svc: svc})
	mux.Handle("GET /stories/{story_id}/similar", SimilarHandler{
		Svc:           svc,
		PaginationCfg: similarCfg,
		Logger:        logger,
	})
}
