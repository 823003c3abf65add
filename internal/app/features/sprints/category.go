// internal/app/features/sprints/category.go
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

type categoryRequest struct {
	NewCategory string `json:"newCategory"`
}

type categoryResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// UpdateCategory handles PUT /teams/{teamID}/sprints/{sprintID}/bugs/{bugID}.
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	sprintID := chi.URLParam(r, "sprintID")
	bugID := chi.URLParam(r, "bugID")

	var req categoryRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category := normalize.Name(req.NewCategory)
	if teamID == "" || sprintID == "" || bugID == "" || category == "" {
		httpjson.Message(w, http.StatusBadRequest, "teamId, sprintId, bugId, and newCategory are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Bugs.UpdateCategory(ctx, teamID, sprintID, bugID, category)
	switch {
	case errors.Is(err, store.ErrNotFound):
		httpjson.Message(w, http.StatusNotFound, "Bug not found")
		return
	case err != nil:
		h.Log.Error("update bug category failed",
			zap.String("sprint_id", sprintID),
			zap.String("bug_id", bugID),
			zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Failed to update bug category")
		return
	}

	httpjson.Write(w, http.StatusOK, categoryResponse{
		Success: true,
		Message: "Bug category updated successfully",
	})
}
