// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authfeature "github.com/sprinthub/sprinthub/internal/app/features/authapi"
	bugsfeature "github.com/sprinthub/sprinthub/internal/app/features/bugs"
	healthfeature "github.com/sprinthub/sprinthub/internal/app/features/health"
	sprintsfeature "github.com/sprinthub/sprinthub/internal/app/features/sprints"
	teamsfeature "github.com/sprinthub/sprinthub/internal/app/features/teams"
	userbugsfeature "github.com/sprinthub/sprinthub/internal/app/features/userbugs"
	"github.com/sprinthub/sprinthub/internal/app/store"
	sprintbugstore "github.com/sprinthub/sprinthub/internal/app/store/sprintbugs"
	sprintstore "github.com/sprinthub/sprinthub/internal/app/store/sprints"
	teamstore "github.com/sprinthub/sprinthub/internal/app/store/teams"
	"github.com/sprinthub/sprinthub/internal/app/system/auth"
	"github.com/sprinthub/sprinthub/internal/app/system/bugcache"
	"github.com/sprinthub/sprinthub/internal/app/system/tokencrypt"
	"github.com/sprinthub/sprinthub/internal/bugzilla"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE
// app. WAFFLE calls it after configuration, DB connections, schema setup
// and Startup have completed.
//
// It assembles the stores for the configured backend, the Bugzilla client
// and cache, the session manager, and mounts one feature router per API
// area.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	stores := buildStores(deps, logger)

	box, err := tokencrypt.New(appCfg.TokenSecret)
	if err != nil {
		logger.Error("token sealing init failed", zap.Error(err))
		return nil, err
	}

	secure := coreCfg.Env == "prod"
	sessions, err := auth.NewManager(appCfg.SessionKey, appCfg.SessionName, secure, box, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	client := bugzilla.New(appCfg.BugzillaBaseURL, appCfg.BugzillaTimeout, logger)
	cache := bugcache.New(appCfg.BugCacheTTL)

	teamsH := teamsfeature.NewHandler(stores.Teams, logger)
	sprintsH := sprintsfeature.NewHandler(stores.Sprints, stores.SprintBugs, logger)
	bugsH := bugsfeature.NewHandler(client, cache, sessions, logger)
	userbugsH := userbugsfeature.NewHandler(client, cache, logger)
	authH := authfeature.NewHandler(sessions, logger)
	healthH := healthfeature.NewHandler(deps.MongoClient, appCfg.StorageBackend, logger)

	r := chi.NewRouter()

	r.Mount("/teams", teamsfeature.Routes(teamsH))
	r.Mount("/teams/{teamID}/sprints", sprintsfeature.Routes(sprintsH))
	r.Mount("/bugs", bugsfeature.Routes(bugsH))
	r.Mount("/userbugs", userbugsfeature.Routes(userbugsH))
	r.Mount("/auth", authfeature.Routes(authH))
	r.Mount("/health", healthfeature.Routes(healthH))

	return r, nil
}

// buildStores returns the store set for whichever backend ConnectDB
// opened.
func buildStores(deps DBDeps, logger *zap.Logger) store.Stores {
	if deps.FileDB != nil {
		return store.Stores{
			Teams:      deps.FileDB.Teams(),
			Sprints:    deps.FileDB.Sprints(),
			SprintBugs: deps.FileDB.SprintBugs(),
		}
	}
	return store.Stores{
		Teams:      teamstore.New(deps.MongoDatabase),
		Sprints:    sprintstore.New(deps.MongoDatabase, logger),
		SprintBugs: sprintbugstore.New(deps.MongoDatabase, logger),
	}
}
