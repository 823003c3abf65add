// internal/app/features/sprints/create.go
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

type createRequest struct {
	Name string `json:"name"`
}

// Create handles POST /teams/{teamID}/sprints.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")

	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	name := normalize.Name(req.Name)
	if name == "" {
		httpjson.Message(w, http.StatusBadRequest, "Sprint name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sprint, err := h.Sprints.Create(ctx, teamID, name)
	switch {
	case errors.Is(err, store.ErrNotFound):
		httpjson.Message(w, http.StatusNotFound, "Team not found")
		return
	case errors.Is(err, store.ErrDuplicateSprintName):
		httpjson.Message(w, http.StatusConflict, "A sprint with this name already exists in this team")
		return
	case err != nil:
		h.Log.Error("create sprint failed",
			zap.String("team_id", teamID),
			zap.String("name", name),
			zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Failed to add sprint")
		return
	}

	httpjson.Write(w, http.StatusCreated, sprint)
}
