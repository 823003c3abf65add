// internal/app/features/teams/handler.go
package teams

import (
	"go.uber.org/zap"

	"github.com/sprinthub/sprinthub/internal/app/store"
)

// Handler is the shared dependency container for the teams feature.
type Handler struct {
	Teams store.TeamStore
	Log   *zap.Logger
}

// NewHandler constructs a teams Handler. It is called from the bootstrap
// BuildHandler function once the stores are initialized.
func NewHandler(teams store.TeamStore, logger *zap.Logger) *Handler {
	return &Handler{
		Teams: teams,
		Log:   logger,
	}
}
