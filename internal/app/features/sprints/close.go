// internal/app/features/sprints/close.go
package sprints

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sprinthub/sprinthub/internal/app/store"
	"github.com/sprinthub/sprinthub/internal/app/system/httpjson"
	"github.com/sprinthub/sprinthub/internal/app/system/timeouts"
)

type closeRequest struct {
	EndTime string `json:"endTime"`
}

// Close handles POST /teams/{teamID}/sprints/{sprintID}/close. The end
// time defaults to now; re-closing just overwrites it. A closed sprint
// still accepts bug mutations.
func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	sprintID := chi.URLParam(r, "sprintID")

	endTime := time.Now().UTC()
	var req closeRequest
	if err := httpjson.Decode(r, &req); err == nil && req.EndTime != "" {
		t, err := time.Parse(time.RFC3339, req.EndTime)
		if err != nil {
			httpjson.Message(w, http.StatusBadRequest, "endTime must be an RFC 3339 timestamp")
			return
		}
		endTime = t.UTC()
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sprint, err := h.Sprints.Close(ctx, teamID, sprintID, endTime)
	switch {
	case errors.Is(err, store.ErrNotFound):
		httpjson.Message(w, http.StatusNotFound, "Sprint not found")
		return
	case err != nil:
		h.Log.Error("close sprint failed",
			zap.String("team_id", teamID),
			zap.String("sprint_id", sprintID),
			zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Failed to close sprint")
		return
	}

	httpjson.Write(w, http.StatusOK, sprint)
}
