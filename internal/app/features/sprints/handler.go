// internal/app/features/sprints/handler.go
package sprints

import (
	"go.uber.org/zap"

	"github.com/sprinthub/sprinthub/internal/app/store"
)

// Handler is the shared dependency container for the sprints feature. It
// covers sprint CRUD plus every bug-association operation (single add,
// batch add/remove, rollover, category edits), so it holds both stores.
type Handler struct {
	Sprints store.SprintStore
	Bugs    store.SprintBugStore
	Log     *zap.Logger
}

// NewHandler constructs a sprints Handler.
func NewHandler(sprints store.SprintStore, bugs store.SprintBugStore, logger *zap.Logger) *Handler {
	return &Handler{
		Sprints: sprints,
		Bugs:    bugs,
		Log:     logger,
	}
}
