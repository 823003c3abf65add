// internal/app/features/sprints/delete.go
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

// Delete handles DELETE /teams/{teamID}/sprints/{sprintID}. The sprint's
// bug associations go with it.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	sprintID := chi.URLParam(r, "sprintID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	err := h.Sprints.Delete(ctx, teamID, sprintID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		httpjson.Message(w, http.StatusNotFound, "Sprint not found")
		return
	case err != nil:
		h.Log.Error("delete sprint failed",
			zap.String("team_id", teamID),
			zap.String("sprint_id", sprintID),
			zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Failed to delete sprint")
		return
	}

	httpjson.Message(w, http.StatusOK, "Sprint deleted successfully")
}
