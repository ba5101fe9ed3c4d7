package admin

import (
	"context"
	"time"

	"github.com/akeren/waitlist-api/internal/log"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"github.com/akeren/waitlist-api/pkg/utils"
)

const DefaultSessionTTL = 12 * time.Hour

// SessionTTLFromEnv reads ADMIN_SESSION_TTL (Go duration syntax), falling
// back to the default on absence or parse failure.
func SessionTTLFromEnv() time.Duration {
	raw := utils.GetEnvTrimmed("ADMIN_SESSION_TTL")
	if raw == "" {
		return DefaultSessionTTL
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil || ttl <= 0 {
		return DefaultSessionTTL
	}
	return ttl
}

// Gate owns the admin authentication lifecycle: credential verification,
// session issuance, validation, and teardown.
type Gate struct {
	logger *log.Logger
	store  SessionStore
	creds  Credentials
	ttl    time.Duration
}

func NewGate(logger *log.Logger, store SessionStore, creds Credentials, ttl time.Duration) *Gate {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Gate{logger: logger, store: store, creds: creds, ttl: ttl}
}

// Login verifies the credential pair and, on success, issues a session token
// to be carried in the cookie. Failure returns an unauthorized error with no
// session created.
func (g *Gate) Login(ctx context.Context, username, password string) (token string, expiresAt time.Time, err error) {
	if !g.creds.Verify(username, password) {
		g.logger.Warn("Admin login failed")
		return "", time.Time{}, apperrors.NewUnauthorizedError("invalid credentials", nil)
	}

	raw, hash, err := generateToken()
	if err != nil {
		g.logger.Error("Failed to generate session token", "error", err)
		return "", time.Time{}, apperrors.NewInternalServerError("unable to create session", err)
	}

	expiresAt = time.Now().Add(g.ttl)
	if err := g.store.Create(ctx, hash, expiresAt); err != nil {
		g.logger.Error("Failed to persist admin session", "error", err)
		return "", time.Time{}, err
	}

	g.logger.Info("Admin login succeeded")
	return raw, expiresAt, nil
}

// Authenticated reports whether rawToken identifies a live session. Missing,
// malformed, unknown, and expired tokens all read as not authenticated.
func (g *Gate) Authenticated(ctx context.Context, rawToken string) bool {
	hash, err := hashToken(rawToken)
	if err != nil {
		return false
	}

	ok, err := g.store.Exists(ctx, hash, time.Now())
	if err != nil {
		g.logger.Error("Session lookup failed", "error", err)
		return false
	}

	return ok
}

// Logout destroys the session behind rawToken. Unknown tokens are ignored.
func (g *Gate) Logout(ctx context.Context, rawToken string) {
	hash, err := hashToken(rawToken)
	if err != nil {
		return
	}

	if err := g.store.Delete(ctx, hash); err != nil {
		g.logger.Error("Failed to delete admin session", "error", err)
	}
}
