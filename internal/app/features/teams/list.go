// internal/app/features/teams/list.go
package teams

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/sprinthub/sprinthub/internal/app/system/httpjson"
	"github.com/sprinthub/sprinthub/internal/app/system/timeouts"
)

// List handles GET /teams.
//
// An empty collection answers 404 with {"message": "No teams found"};
// clients key off that to show the empty state.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	teams, err := h.Teams.List(ctx)
	if err != nil {
		h.Log.Error("list teams failed", zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Failed to fetch teams")
		return
	}
	if len(teams) == 0 {
		httpjson.Message(w, http.StatusNotFound, "No teams found")
		return
	}
	httpjson.Write(w, http.StatusOK, teams)
}
