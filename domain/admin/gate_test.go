package admin

import (
	"context"
	"testing"
	"time"

	"github.com/akeren/waitlist-api/internal/log"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func newTestGate(t *testing.T, ttl time.Duration) (*Gate, *MemorySessionStore) {
	t.Helper()

	store := NewMemorySessionStore()
	creds := Credentials{Username: "admin", Password: "changeme123"}
	gate := NewGate(log.NewLoggerWithJSONOutput(), store, creds, ttl)

	return gate, store
}

func TestCredentials_Verify(t *testing.T) {
	creds := Credentials{Username: "admin", Password: "secret"}

	assert.True(t, creds.Verify("admin", "secret"))
	assert.False(t, creds.Verify("admin", "wrong"))
	assert.False(t, creds.Verify("wrong", "secret"))
	assert.False(t, creds.Verify("", ""))
}

func TestGate_LoginIssuesUsableSession(t *testing.T) {
	gate, _ := newTestGate(t, time.Hour)

	token, expiresAt, err := gate.Login(context.Background(), "admin", "changeme123")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))
	assert.True(t, gate.Authenticated(context.Background(), token))
}

func TestGate_LoginRejectsBadCredentials(t *testing.T) {
	gate, _ := newTestGate(t, time.Hour)

	token, _, err := gate.Login(context.Background(), "admin", "wrong")

	assert.Error(t, err)
	assert.Empty(t, token)
	assert.Equal(t, apperrors.ErrorTypeUnauthorized, apperrors.GetErrorType(err))
}

func TestGate_LogoutInvalidatesSession(t *testing.T) {
	gate, _ := newTestGate(t, time.Hour)

	token, _, err := gate.Login(context.Background(), "admin", "changeme123")
	assert.NoError(t, err)
	assert.True(t, gate.Authenticated(context.Background(), token))

	gate.Logout(context.Background(), token)

	assert.False(t, gate.Authenticated(context.Background(), token))
}

func TestGate_ExpiredSessionReadsAsUnauthenticated(t *testing.T) {
	gate, store := newTestGate(t, time.Hour)

	raw, hash, err := generateToken()
	assert.NoError(t, err)
	assert.NoError(t, store.Create(context.Background(), hash, time.Now().Add(-time.Minute)))

	assert.False(t, gate.Authenticated(context.Background(), raw))
}

func TestGate_MalformedTokensAreRejected(t *testing.T) {
	gate, _ := newTestGate(t, time.Hour)

	assert.False(t, gate.Authenticated(context.Background(), ""))
	assert.False(t, gate.Authenticated(context.Background(), "not%base64url!"))
	assert.False(t, gate.Authenticated(context.Background(), "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"))
}
