// internal/app/features/sprints/list.go
package sprints

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sprinthub/sprinthub/internal/app/system/httpjson"
	"github.com/sprinthub/sprinthub/internal/app/system/timeouts"
)

// List handles GET /teams/{teamID}/sprints, newest first.
//
// A team with no sprints answers 404 with {"message": "No sprints found"}.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sprints, err := h.Sprints.List(ctx, teamID)
	if err != nil {
		h.Log.Error("list sprints failed", zap.String("team_id", teamID), zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Failed to fetch sprints")
		return
	}
	if len(sprints) == 0 {
		httpjson.Message(w, http.StatusNotFound, "No sprints found")
		return
	}
	httpjson.Write(w, http.StatusOK, sprints)
}
