// internal/app/features/bugs/handler.go
package bugs

import (
	"go.uber.org/zap"

	"github.com/sprinthub/sprinthub/internal/app/system/auth"
	"github.com/sprinthub/sprinthub/internal/app/system/bugcache"
	"github.com/sprinthub/sprinthub/internal/bugzilla"
)

// Handler proxies bug reads and writes to Bugzilla. Search results are
// served from the cache unless the caller passes ?refresh=1; writes use
// the API key stored in the caller's session.
type Handler struct {
	Client   *bugzilla.Client
	Cache    *bugcache.Cache
	Sessions *auth.Manager
	Log      *zap.Logger
}

// NewHandler constructs a bugs Handler.
func NewHandler(client *bugzilla.Client, cache *bugcache.Cache, sessions *auth.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		Client:   client,
		Cache:    cache,
		Sessions: sessions,
		Log:      logger,
	}
}
