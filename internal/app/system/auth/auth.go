// internal/app/system/auth/auth.go
//
// Package auth manages the cookie session that carries a signed-in user's
// Bugzilla API key. The key is sealed with tokencrypt before it is placed
// in the session, so the cookie never holds the raw credential.
package auth

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/sprinthub/sprinthub/internal/app/system/tokencrypt"
)

const apiKeyKey = "bugzilla_api_key"

// Manager wraps the cookie store and the sealing box.
type Manager struct {
	store *sessions.CookieStore
	name  string
	box   *tokencrypt.Box
	log   *zap.Logger
}

// NewManager builds the session manager. sessionKey signs the cookie and
// must be at least 32 random characters; secure controls the cookie's
// Secure and SameSite attributes.
func NewManager(sessionKey, sessionName string, secure bool, box *tokencrypt.Box, logger *zap.Logger) (*Manager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	return &Manager{store: store, name: sessionName, box: box, log: logger}, nil
}

// SetAPIKey seals apiKey and saves it into the session.
func (m *Manager) SetAPIKey(w http.ResponseWriter, r *http.Request, apiKey string) error {
	sealed, err := m.box.Seal(apiKey)
	if err != nil {
		return err
	}
	sess, _ := m.store.Get(r, m.name)
	sess.Values[apiKeyKey] = sealed
	return sess.Save(r, w)
}

// APIKey returns the caller's Bugzilla API key, if one is stored in the
// session. A sealed value that fails to open (rotated secret, tampered
// cookie) is treated as absent.
func (m *Manager) APIKey(r *http.Request) (string, bool) {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		return "", false
	}
	sealed, ok := sess.Values[apiKeyKey].(string)
	if !ok || sealed == "" {
		return "", false
	}
	key, err := m.box.Open(sealed)
	if err != nil {
		m.log.Warn("discarding unreadable session token", zap.Error(err))
		return "", false
	}
	return key, true
}

// Clear drops the stored API key and expires the session cookie.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, m.name)
	delete(sess.Values, apiKeyKey)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}
