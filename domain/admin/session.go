package admin

import (
	"context"
	"sync"
	"time"

	"github.com/akeren/waitlist-api/internal/models"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"gorm.io/gorm"
)

// SessionStore persists authenticated-session markers keyed by token hash.
// Absence of a live record means not authenticated.
type SessionStore interface {
	// Create records a new authenticated session.
	Create(ctx context.Context, tokenHash []byte, expiresAt time.Time) error
	// Exists reports whether a session for tokenHash is live at now.
	Exists(ctx context.Context, tokenHash []byte, now time.Time) (bool, error)
	// Delete removes a session; deleting an unknown hash is not an error.
	Delete(ctx context.Context, tokenHash []byte) error
}

// MemorySessionStore keeps sessions in a mutex-protected map. Used by tests
// and available for deployments that accept logout-on-restart.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]time.Time)}
}

func (s *MemorySessionStore) Create(_ context.Context, tokenHash []byte, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[string(tokenHash)] = expiresAt
	return nil
}

func (s *MemorySessionStore) Exists(_ context.Context, tokenHash []byte, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt, ok := s.sessions[string(tokenHash)]
	if !ok {
		return false, nil
	}
	if !now.Before(expiresAt) {
		delete(s.sessions, string(tokenHash))
		return false, nil
	}
	return true, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, tokenHash []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, string(tokenHash))
	return nil
}

// GormSessionStore backs sessions with the admin_sessions table so logins
// survive process restarts.
type GormSessionStore struct {
	db *gorm.DB
}

func NewGormSessionStore(db *gorm.DB) *GormSessionStore {
	return &GormSessionStore{db: db}
}

func (s *GormSessionStore) Create(ctx context.Context, tokenHash []byte, expiresAt time.Time) error {
	session := &models.AdminSession{TokenHash: tokenHash, ExpiresAt: expiresAt}

	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		return apperrors.NewDatabaseError("unable to create admin session", err)
	}

	// Expired rows are only garbage; prune them while we are here.
	s.db.WithContext(ctx).Where("expires_at <= ?", time.Now()).Delete(&models.AdminSession{})

	return nil
}

func (s *GormSessionStore) Exists(ctx context.Context, tokenHash []byte, now time.Time) (bool, error) {
	var count int64

	err := s.db.WithContext(ctx).
		Model(&models.AdminSession{}).
		Where("token_hash = ? AND expires_at > ?", tokenHash, now).
		Count(&count).Error
	if err != nil {
		return false, apperrors.NewDatabaseError("unable to look up admin session", err)
	}

	return count > 0, nil
}

func (s *GormSessionStore) Delete(ctx context.Context, tokenHash []byte) error {
	if err := s.db.WithContext(ctx).Where("token_hash = ?", tokenHash).Delete(&models.AdminSession{}).Error; err != nil {
		return apperrors.NewDatabaseError("unable to delete admin session", err)
	}
	return nil
}
