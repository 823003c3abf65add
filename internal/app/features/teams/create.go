// internal/app/features/teams/create.go
package teams

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sprinthub/sprinthub/internal/app/store"
	"github.com/sprinthub/sprinthub/internal/app/system/httpjson"
	"github.com/sprinthub/sprinthub/internal/app/system/normalize"
	"github.com/sprinthub/sprinthub/internal/app/system/timeouts"
)

type createRequest struct {
	Name string `json:"name"`
}

// Create handles POST /teams.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	name := normalize.Name(req.Name)
	if name == "" {
		httpjson.Message(w, http.StatusBadRequest, "Team name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	team, err := h.Teams.Create(ctx, name)
	switch {
	case errors.Is(err, store.ErrDuplicateTeamName):
		httpjson.Message(w, http.StatusConflict, "A team with this name already exists")
		return
	case err != nil:
		h.Log.Error("create team failed", zap.String("name", name), zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Failed to add team")
		return
	}

	httpjson.Write(w, http.StatusCreated, team)
}
