// internal/app/features/sprints/rollover.go
package sprints

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sprinthub/sprinthub/internal/app/store"
	"github.com/sprinthub/sprinthub/internal/app/system/httpjson"
	"github.com/sprinthub/sprinthub/internal/app/system/normalize"
	"github.com/sprinthub/sprinthub/internal/app/system/timeouts"
)

type rolloverRequest struct {
	BugIDs         *bugIDList `json:"bugIds"`
	SourceSprintID string     `json:"sourceSprintId"`
}

// Rollover handles POST /teams/{teamID}/sprints/{sprintID}/rollover:
// copy the named bug records from the source sprint into this one,
// category and resolution state included. Records already present under
// the same bug id are overwritten, not duplicated.
func (h *Handler) Rollover(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	sprintID := chi.URLParam(r, "sprintID")

	var req rolloverRequest
	if err := httpjson.Decode(r, &req); err != nil || req.BugIDs == nil || req.SourceSprintID == "" {
		httpjson.Message(w, http.StatusBadRequest, "sourceSprintId and an array of bug IDs are required")
		return
	}

	ids, dropped := normalize.BugIDs(*req.BugIDs)
	for _, d := range dropped {
		h.Log.Warn("skipping invalid bug id", zap.String("bug_id", d))
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	copied, err := h.Bugs.Rollover(ctx, teamID, sprintID, req.SourceSprintID, ids)
	switch {
	case errors.Is(err, store.ErrNotFound):
		httpjson.Message(w, http.StatusNotFound, "Target sprint not found")
		return
	case errors.Is(err, store.ErrNoBugsForRollover):
		httpjson.Message(w, http.StatusNotFound, "No valid bugs found for rollover")
		return
	case err != nil:
		h.Log.Error("rollover failed",
			zap.String("target_sprint_id", sprintID),
			zap.String("source_sprint_id", req.SourceSprintID),
			zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Failed to roll over bugs")
		return
	}

	h.Log.Info("bugs rolled over",
		zap.String("target_sprint_id", sprintID),
		zap.String("source_sprint_id", req.SourceSprintID),
		zap.Int("copied", copied))
	httpjson.Message(w, http.StatusOK, "Bugs rolled over successfully")
}
