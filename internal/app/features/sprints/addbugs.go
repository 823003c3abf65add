// internal/app/features/sprints/addbugs.go
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

type addBugsRequest struct {
	BugIDs *bugIDList `json:"bugIds"`
}

// AddBugs handles POST /teams/{teamID}/sprints/{sprintID}/addbugs: batch
// add. Ids already in the sprint are dropped before the write; when
// nothing is left the answer is "No new bugs to add." and no write
// happens.
func (h *Handler) AddBugs(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	sprintID := chi.URLParam(r, "sprintID")

	var req addBugsRequest
	if err := httpjson.Decode(r, &req); err != nil || req.BugIDs == nil {
		httpjson.Message(w, http.StatusBadRequest, "An array of bug IDs is required")
		return
	}

	ids, dropped := normalize.BugIDs(*req.BugIDs)
	for _, d := range dropped {
		h.Log.Warn("skipping invalid bug id", zap.String("bug_id", d))
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	sprint, added, err := h.Bugs.Add(ctx, teamID, sprintID, ids)
	switch {
	case errors.Is(err, store.ErrNotFound):
		httpjson.Message(w, http.StatusNotFound, "Sprint not found")
		return
	case err != nil:
		h.Log.Error("add bugs failed",
			zap.String("sprint_id", sprintID),
			zap.Int("count", len(ids)),
			zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Failed to add bugs")
		return
	}

	if added == 0 {
		httpjson.Message(w, http.StatusOK, "No new bugs to add.")
		return
	}
	httpjson.Write(w, http.StatusOK, sprint)
}
