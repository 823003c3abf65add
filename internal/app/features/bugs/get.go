// internal/app/features/bugs/get.go
package bugs

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sprinthub/sprinthub/internal/app/system/httpjson"
	"github.com/sprinthub/sprinthub/internal/app/system/timeouts"
	"github.com/sprinthub/sprinthub/internal/bugzilla"
)

// Get handles GET /bugs/{bugID}: fetch one bug from Bugzilla.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	bugID := chi.URLParam(r, "bugID")
	if !bugzilla.ValidBugID(bugID) {
		httpjson.Message(w, http.StatusBadRequest, "Invalid bug ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	bug, err := h.Client.GetBug(ctx, bugID)
	switch {
	case bugzilla.IsNotFound(err):
		httpjson.Message(w, http.StatusNotFound, "Bug not found")
		return
	case err != nil:
		h.Log.Error("fetch bug failed", zap.String("bug_id", bugID), zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Failed to fetch bug")
		return
	}

	httpjson.Write(w, http.StatusOK, bug)
}
