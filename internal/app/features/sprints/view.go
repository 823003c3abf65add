// internal/app/features/sprints/view.go
package sprints

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sprinthub/sprinthub/internal/app/store"
	"github.com/sprinthub/sprinthub/internal/app/system/httpjson"
	"github.com/sprinthub/sprinthub/internal/app/system/timeouts"
)

// Get handles GET /teams/{teamID}/sprints/{sprintID}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	sprintID := chi.URLParam(r, "sprintID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sprint, err := h.Sprints.Get(ctx, teamID, sprintID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		httpjson.Message(w, http.StatusNotFound, "Sprint not found")
		return
	case err != nil:
		h.Log.Error("get sprint failed",
			zap.String("team_id", teamID),
			zap.String("sprint_id", sprintID),
			zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Failed to fetch sprint")
		return
	}

	httpjson.Write(w, http.StatusOK, sprint)
}
