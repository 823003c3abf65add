// internal/app/features/bugs/update.go
package bugs

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sprinthub/sprinthub/internal/app/system/httpjson"
	"github.com/sprinthub/sprinthub/internal/app/system/timeouts"
	"github.com/sprinthub/sprinthub/internal/bugzilla"
)

// Update handles PUT /bugs/{bugID}: apply field changes upstream on
// behalf of the signed-in user. Without a session API key the request is
// rejected before touching Bugzilla.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	bugID := chi.URLParam(r, "bugID")
	if !bugzilla.ValidBugID(bugID) {
		httpjson.Message(w, http.StatusBadRequest, "Invalid bug ID")
		return
	}

	apiKey, ok := h.Sessions.APIKey(r)
	if !ok {
		httpjson.Message(w, http.StatusUnauthorized, "Bugzilla API key required; sign in first")
		return
	}

	var fields map[string]any
	if err := httpjson.Decode(r, &fields); err != nil || len(fields) == 0 {
		httpjson.Message(w, http.StatusBadRequest, "A non-empty JSON object of bug fields is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Client.UpdateBug(ctx, bugID, apiKey, fields)
	var se *bugzilla.StatusError
	switch {
	case bugzilla.IsNotFound(err):
		httpjson.Message(w, http.StatusNotFound, "Bug not found")
		return
	case errors.As(err, &se) && se.Code == http.StatusUnauthorized:
		httpjson.Message(w, http.StatusUnauthorized, "Invalid Bugzilla API key")
		return
	case err != nil:
		h.Log.Error("update bug failed", zap.String("bug_id", bugID), zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Failed to update bug")
		return
	}

	httpjson.Message(w, http.StatusOK, "Bug updated successfully")
}
