// internal/app/features/sprints/addbug.go
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

type addBugRequest struct {
	BugID bugIDValue `json:"bugId"`
}

// AddBug handles POST /teams/{teamID}/sprints/{sprintID}: add one bug.
// Adding a bug that is already in the sprint is a no-op; either way the
// response is the updated sprint.
func (h *Handler) AddBug(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	sprintID := chi.URLParam(r, "sprintID")

	var req addBugRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	bugID := normalize.BugID(string(req.BugID))
	if bugID == "" {
		httpjson.Message(w, http.StatusBadRequest, "Bug ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sprint, _, err := h.Bugs.Add(ctx, teamID, sprintID, []string{bugID})
	switch {
	case errors.Is(err, store.ErrNotFound):
		httpjson.Message(w, http.StatusNotFound, "Sprint not found")
		return
	case err != nil:
		h.Log.Error("add bug failed",
			zap.String("sprint_id", sprintID),
			zap.String("bug_id", bugID),
			zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Failed to add bug")
		return
	}

	httpjson.Write(w, http.StatusOK, sprint)
}
