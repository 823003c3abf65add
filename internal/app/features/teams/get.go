// internal/app/features/teams/get.go
package teams

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

// Get handles GET /teams/{teamID}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	team, err := h.Teams.Get(ctx, teamID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		httpjson.Message(w, http.StatusNotFound, "Team not found")
		return
	case err != nil:
		h.Log.Error("get team failed", zap.String("team_id", teamID), zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Failed to fetch team")
		return
	}

	httpjson.Write(w, http.StatusOK, team)
}
