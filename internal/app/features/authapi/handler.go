// internal/app/features/authapi/handler.go
package authapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/sprinthub/sprinthub/internal/app/system/auth"
	"github.com/sprinthub/sprinthub/internal/app/system/httpjson"
)

// Handler manages the session that carries a user's Bugzilla API key.
type Handler struct {
	Sessions *auth.Manager
	Log      *zap.Logger
}

// NewHandler constructs an authapi Handler.
func NewHandler(sessions *auth.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		Sessions: sessions,
		Log:      logger,
	}
}

type loginRequest struct {
	APIKey string `json:"apiKey"`
}

// Login handles POST /auth/login: store the caller's Bugzilla API key in
// their session, sealed.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	apiKey := strings.TrimSpace(req.APIKey)
	if apiKey == "" {
		httpjson.Message(w, http.StatusBadRequest, "Bugzilla API key is required")
		return
	}

	if err := h.Sessions.SetAPIKey(w, r, apiKey); err != nil {
		h.Log.Error("store api key failed", zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	httpjson.Message(w, http.StatusOK, "Signed in successfully")
}

// Logout handles POST /auth/logout: drop the stored key and expire the
// session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Clear(w, r); err != nil {
		h.Log.Error("clear session failed", zap.Error(err))
		httpjson.Message(w, http.StatusInternalServerError, "Failed to sign out")
		return
	}
	httpjson.Message(w, http.StatusOK, "Signed out successfully")
}
