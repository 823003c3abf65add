// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS); AppConfig is everything specific to this service:
// storage backend selection, Bugzilla endpoint, session secrets.
type AppConfig struct {
	// StorageBackend selects persistence: "mongo" (hosted document
	// database, the default) or "file" (local JSON files under DataDir).
	StorageBackend string
	DataDir        string // JSON-file backend root (only used when StorageBackend is "file")

	// MongoDB connection configuration (only used when StorageBackend is "mongo")
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Bugzilla REST API configuration
	BugzillaBaseURL string        // e.g. https://bugzilla.mozilla.org/rest
	BugzillaTimeout time.Duration // per-request HTTP timeout
	BugCacheTTL     time.Duration // search-result cache lifetime; 0 keeps entries until refreshed

	// Session management configuration
	SessionKey  string // secret for signing session cookies (must be strong in production)
	SessionName string // cookie name
	TokenSecret string // secret for sealing Bugzilla API keys inside the session
}
