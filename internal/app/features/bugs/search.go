// internal/app/features/bugs/search.go
package bugs

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sprinthub/sprinthub/internal/app/system/bugcache"
	"github.com/sprinthub/sprinthub/internal/app/system/httpjson"
	"github.com/sprinthub/sprinthub/internal/app/system/timeouts"
	"github.com/sprinthub/sprinthub/internal/bugzilla"
)

// Whiteboard handles GET /bugs/whiteboard/{tag}: bugs whose whiteboard
// contains the tag. Results are cached per tag; ?refresh=1 forces a
// fresh fetch.
func (h *Handler) Whiteboard(w http.ResponseWriter, r *http.Request) {
	tag := chi.URLParam(r, "tag")
	if tag == "" {
		httpjson.Message(w, http.StatusBadRequest, "Whiteboard tag is required")
		return
	}

	h.cachedSearch(w, r, bugcache.Key("whiteboard", tag), func(ctx context.Context) ([]bugzilla.Bug, error) {
		return h.Client.SearchWhiteboard(ctx, tag)
	})
}

// Search handles GET /bugs/search?q=: a Bugzilla quicksearch, cached per
// query string.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := query.Get(r, "q")
	if q == "" {
		httpjson.Message(w, http.StatusBadRequest, "Query parameter q is required")
		return
	}

	h.cachedSearch(w, r, bugcache.Key("quicksearch", q), func(ctx context.Context) ([]bugzilla.Bug, error) {
		return h.Client.SearchQuicksearch(ctx, q)
	})
}

// cachedSearch serves from the cache unless the caller asks for a
// refresh, fetching and repopulating on a miss.
func (h *Handler) cachedSearch(w http.ResponseWriter, r *http.Request, key string, fetch func(ctx context.Context) ([]bugzilla.Bug, error)) {
	refresh := query.Get(r, "refresh") != ""

	if !refresh {
		if cached, ok := h.Cache.Get(key); ok {
			httpjson.Write(w, http.StatusOK, map[string]any{"bugs": cached, "cached": true})
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	found, err := fetch(ctx)
	if err != nil {
		h.Log.Error("bugzilla search failed", zap.String("key", key), zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Failed to search bugs")
		return
	}

	h.Cache.Put(key, found)
	httpjson.Write(w, http.StatusOK, map[string]any{"bugs": found, "cached": false})
}
