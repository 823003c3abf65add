// internal/app/features/sprints/bugs.go
package sprints

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sprinthub/sprinthub/internal/app/store"
	"github.com/sprinthub/sprinthub/internal/app/system/httpjson"
	"github.com/sprinthub/sprinthub/internal/app/system/timeouts"
	"github.com/sprinthub/sprinthub/internal/domain/models"
)

// ListBugIDs handles GET /teams/{teamID}/sprints/{sprintID}/bugs. The
// response is {"bugIds": "1,2,3"}, the comma-joined form clients feed
// straight into a Bugzilla id search.
func (h *Handler) ListBugIDs(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	sprintID := chi.URLParam(r, "sprintID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	bugs, err := h.Bugs.List(ctx, teamID, sprintID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		httpjson.Message(w, http.StatusNotFound, "Sprint not found")
		return
	case err != nil:
		h.Log.Error("list sprint bugs failed",
			zap.String("sprint_id", sprintID),
			zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Failed to fetch sprint bugs")
		return
	}

	ids := make([]string, 0, len(bugs))
	for _, b := range bugs {
		ids = append(ids, b.BugID)
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"bugIds": strings.Join(ids, ",")})
}

type replaceBugsRequest struct {
	Bugs []replaceBugEntry `json:"bugs"`
}

type replaceBugEntry struct {
	BugID              bugIDValue `json:"bugId"`
	Category           string     `json:"category"`
	ResolvedOrVerified bool       `json:"resolvedOrVerified"`
}

// ReplaceBugs handles PUT /teams/{teamID}/sprints/{sprintID}/bugs:
// wholesale replacement of the sprint's bug set. The derived counters are
// recomputed from the new set, never taken from the request.
func (h *Handler) ReplaceBugs(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	sprintID := chi.URLParam(r, "sprintID")

	var req replaceBugsRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	now := time.Now().UTC()
	bugs := make([]models.SprintBug, 0, len(req.Bugs))
	seen := make(map[string]struct{}, len(req.Bugs))
	for _, e := range req.Bugs {
		id := strings.TrimSpace(string(e.BugID))
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		bugs = append(bugs, models.SprintBug{
			BugID:              id,
			Category:           e.Category,
			ResolvedOrVerified: e.ResolvedOrVerified,
			AddedAt:            now,
		})
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	sprint, err := h.Sprints.ReplaceBugs(ctx, teamID, sprintID, bugs)
	switch {
	case errors.Is(err, store.ErrNotFound):
		httpjson.Message(w, http.StatusNotFound, "Sprint not found")
		return
	case err != nil:
		h.Log.Error("replace sprint bugs failed",
			zap.String("sprint_id", sprintID),
			zap.Int("count", len(bugs)),
			zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Failed to update sprint bugs")
		return
	}

	httpjson.Write(w, http.StatusOK, sprint)
}
