// internal/app/features/sprints/removebugs.go
package sprints

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sprinthub/sprinthub/internal/app/system/httpjson"
	"github.com/sprinthub/sprinthub/internal/app/system/normalize"
	"github.com/sprinthub/sprinthub/internal/app/system/timeouts"
)

type removeBugsRequest struct {
	BugIDs *bugIDList `json:"bugIds"`
}

// RemoveBugs handles DELETE /teams/{teamID}/sprints/{sprintID}/removebugs.
// Entries that are empty after trimming are skipped with a warning; if
// none survive, the request is rejected before any deletion.
func (h *Handler) RemoveBugs(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	sprintID := chi.URLParam(r, "sprintID")

	var req removeBugsRequest
	if err := httpjson.Decode(r, &req); err != nil || req.BugIDs == nil {
		httpjson.Message(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	ids, dropped := normalize.BugIDs(*req.BugIDs)
	for _, d := range dropped {
		h.Log.Warn("skipping invalid bug id", zap.String("bug_id", d))
	}
	if len(ids) == 0 {
		httpjson.Message(w, http.StatusBadRequest, "No valid bug IDs provided")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	if err := h.Bugs.Remove(ctx, teamID, sprintID, ids); err != nil {
		h.Log.Error("remove bugs failed",
			zap.String("sprint_id", sprintID),
			zap.Int("count", len(ids)),
			zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Failed to delete bugs")
		return
	}

	httpjson.Message(w, http.StatusOK, "Bugs deleted successfully")
}
