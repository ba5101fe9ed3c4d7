package admin

import (
	"context"
	"testing"
	"time"

	"github.com/akeren/waitlist-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMemorySessionStore_Lifecycle(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()
	hash := []byte("0123456789abcdef0123456789abcdef")
	now := time.Now()

	ok, err := store.Exists(ctx, hash, now)
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, store.Create(ctx, hash, now.Add(time.Hour)))

	ok, err = store.Exists(ctx, hash, now)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Exists(ctx, hash, now.Add(2*time.Hour))
	assert.NoError(t, err)
	assert.False(t, ok, "expired session must read as absent")

	assert.NoError(t, store.Create(ctx, hash, now.Add(time.Hour)))
	assert.NoError(t, store.Delete(ctx, hash))

	ok, err = store.Exists(ctx, hash, now)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func newSessionTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AdminSession{}))

	return db
}

func TestGormSessionStore_Lifecycle(t *testing.T) {
	store := NewGormSessionStore(newSessionTestDB(t))
	ctx := context.Background()
	hash := []byte("fedcba9876543210fedcba9876543210")
	now := time.Now()

	assert.NoError(t, store.Create(ctx, hash, now.Add(time.Hour)))

	ok, err := store.Exists(ctx, hash, now)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Exists(ctx, []byte("unknown-hash-unknown-hash-unkno!"), now)
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, store.Delete(ctx, hash))

	ok, err = store.Exists(ctx, hash, now)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestGormSessionStore_ExpiredSessionsExcluded(t *testing.T) {
	store := NewGormSessionStore(newSessionTestDB(t))
	ctx := context.Background()
	hash := []byte("00112233445566778899aabbccddeeff")

	assert.NoError(t, store.Create(ctx, hash, time.Now().Add(-time.Minute)))

	ok, err := store.Exists(ctx, hash, time.Now())
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionTTLFromEnv(t *testing.T) {
	t.Setenv("ADMIN_SESSION_TTL", "")
	assert.Equal(t, DefaultSessionTTL, SessionTTLFromEnv())

	t.Setenv("ADMIN_SESSION_TTL", "45m")
	assert.Equal(t, 45*time.Minute, SessionTTLFromEnv())

	t.Setenv("ADMIN_SESSION_TTL", "garbage")
	assert.Equal(t, DefaultSessionTTL, SessionTTLFromEnv())

	t.Setenv("ADMIN_SESSION_TTL", "-1h")
	assert.Equal(t, DefaultSessionTTL, SessionTTLFromEnv())
}
