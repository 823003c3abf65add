// internal/app/bootstrap/config.go
package bootstrap

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/gorilla/securecookie"
	"go.uber.org/zap"

	"github.com/sprinthub/sprinthub/internal/bugzilla"
)

// appConfigKeys defines the configuration keys for SprintHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: SPRINTHUB_MONGO_URI, SPRINTHUB_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "storage_backend", Default: "mongo", Desc: "Persistence backend: 'mongo' or 'file'"},
	{Name: "data_dir", Default: "./data", Desc: "Data directory for the 'file' backend"},

	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "sprinthub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "bugzilla_base_url", Default: bugzilla.DefaultBaseURL, Desc: "Bugzilla REST API base URL"},
	{Name: "bugzilla_timeout", Default: "30s", Desc: "Per-request Bugzilla HTTP timeout"},
	{Name: "bug_cache_ttl", Default: "15m", Desc: "Bug search cache lifetime (0 disables expiry)"},

	{Name: "session_key", Default: "", Desc: "Session signing key (generated per process when unset; set one so sessions survive restarts)"},
	{Name: "session_name", Default: "sprinthub-session", Desc: "Session cookie name"},
	{Name: "token_secret", Default: "dev-only-token-secret-change-me", Desc: "Secret for sealing Bugzilla API keys in sessions"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, SPRINTHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "SPRINTHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		StorageBackend: appValues.String("storage_backend"),
		DataDir:        appValues.String("data_dir"),

		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		BugzillaBaseURL: appValues.String("bugzilla_base_url"),
		BugzillaTimeout: appValues.Duration("bugzilla_timeout", 30*time.Second),
		BugCacheTTL:     appValues.Duration("bug_cache_ttl", 15*time.Minute),

		SessionKey:  appValues.String("session_key"),
		SessionName: appValues.String("session_name"),
		TokenSecret: appValues.String("token_secret"),
	}

	if appCfg.SessionKey == "" {
		// Sessions signed with a generated key do not survive a restart.
		appCfg.SessionKey = base64.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32))
		logger.Warn("session_key not configured; generated an ephemeral key")
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The MongoDB URI is validated up front so configuration errors surface
// before any connection attempt.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	switch appCfg.StorageBackend {
	case "mongo":
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
	case "file":
		if appCfg.DataDir == "" {
			return fmt.Errorf("storage_backend 'file' requires data_dir to be set")
		}
	default:
		return fmt.Errorf("storage_backend must be 'mongo' or 'file', got %q", appCfg.StorageBackend)
	}

	if appCfg.TokenSecret == "" {
		return fmt.Errorf("token_secret must not be empty")
	}

	return nil
}
