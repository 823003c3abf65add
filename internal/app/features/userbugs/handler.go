// internal/app/features/userbugs/handler.go
package userbugs

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sprinthub/sprinthub/internal/app/system/bugcache"
	"github.com/sprinthub/sprinthub/internal/app/system/httpjson"
	"github.com/sprinthub/sprinthub/internal/app/system/timeouts"
	"github.com/sprinthub/sprinthub/internal/bugzilla"
)

// Handler serves the per-user Bugzilla dashboards: bugs assigned to a
// user, flagged for them, recently commented on, and recently fixed.
type Handler struct {
	Client *bugzilla.Client
	Cache  *bugcache.Cache
	Log    *zap.Logger
}

// NewHandler constructs a userbugs Handler.
func NewHandler(client *bugzilla.Client, cache *bugcache.Cache, logger *zap.Logger) *Handler {
	return &Handler{
		Client: client,
		Cache:  cache,
		Log:    logger,
	}
}

// Assigned handles GET /userbugs/{email}/assigned.
func (h *Handler) Assigned(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "assigned", h.Client.AssignedTo)
}

// Flagged handles GET /userbugs/{email}/flagged.
func (h *Handler) Flagged(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "flagged", h.Client.FlaggedFor)
}

// Commented handles GET /userbugs/{email}/commented.
func (h *Handler) Commented(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "commented", h.Client.CommentedBy)
}

// Closed handles GET /userbugs/{email}/closed.
func (h *Handler) Closed(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "closed", h.Client.RecentlyClosedBy)
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, kind string, fetch func(ctx context.Context, email string) ([]bugzilla.Bug, error)) {
	email := strings.TrimSpace(chi.URLParam(r, "email"))
	if email == "" || !strings.Contains(email, "@") {
		httpjson.Message(w, http.StatusBadRequest, "A valid email address is required")
		return
	}

	key := bugcache.Key(kind, email)
	if query.Get(r, "refresh") == "" {
		if cached, ok := h.Cache.Get(key); ok {
			httpjson.Write(w, http.StatusOK, map[string]any{"bugs": cached, "cached": true})
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	found, err := fetch(ctx, email)
	if err != nil {
		h.Log.Error("user bugs fetch failed",
			zap.String("kind", kind),
			zap.String("email", email),
			zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Failed to fetch bugs")
		return
	}

	h.Cache.Put(key, found)
	httpjson.Write(w, http.StatusOK, map[string]any{"bugs": found, "cached": false})
}
