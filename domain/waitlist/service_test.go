package waitlist

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/internal/models"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (WaitlistService, *MockWaitlistRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := NewMockWaitlistRepository(ctrl)
	logger := log.NewLoggerWithJSONOutput()

	return NewWaitlistService(logger, mockRepo), mockRepo
}

func TestWaitlistService_Signup(t *testing.T) {
	t.Run("successful signup returns fresh count", func(t *testing.T) {
		service, mockRepo := newTestService(t)

		mockRepo.EXPECT().
			CreateEntry(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error) {
				assert.Equal(t, "a@b.com", entry.Email)
				entry.ID = 1
				entry.CreatedAt = time.Now()
				return entry, nil
			})
		mockRepo.EXPECT().CountEntries(gomock.Any()).Return(int64(1), nil)

		result, err := service.Signup(context.Background(), &SignupRequest{Email: "a@b.com"})

		assert.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, MessageSignupSuccess, result.Message)
		assert.Equal(t, int64(1), result.TotalSignups)
	})

	t.Run("email is normalized before the insert", func(t *testing.T) {
		service, mockRepo := newTestService(t)

		mockRepo.EXPECT().
			CreateEntry(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error) {
				assert.Equal(t, "foo@bar.com", entry.Email)
				return entry, nil
			})
		mockRepo.EXPECT().CountEntries(gomock.Any()).Return(int64(1), nil)

		result, err := service.Signup(context.Background(), &SignupRequest{Email: "  Foo@Bar.com "})

		assert.NoError(t, err)
		assert.True(t, result.Success)
	})

	t.Run("duplicate email is a normal outcome", func(t *testing.T) {
		service, mockRepo := newTestService(t)

		mockRepo.EXPECT().
			CreateEntry(gomock.Any(), gomock.Any()).
			Return(nil, apperrors.NewConflictError("waitlist entry with this email already exists", nil))
		mockRepo.EXPECT().CountEntries(gomock.Any()).Return(int64(1), nil)

		result, err := service.Signup(context.Background(), &SignupRequest{Email: "a@b.com"})

		assert.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, MessageEmailExists, result.Message)
		assert.Equal(t, int64(1), result.TotalSignups)
	})

	t.Run("invalid emails never reach the repository", func(t *testing.T) {
		service, _ := newTestService(t)

		for _, email := range []string{"", "no-at-sign", "a@@b.com", "a@b..com"} {
			result, err := service.Signup(context.Background(), &SignupRequest{Email: email})

			assert.Error(t, err, "email %q should be rejected", email)
			assert.Nil(t, result)
			assert.Equal(t, apperrors.ErrorTypeInvalidRequest, apperrors.GetErrorType(err))
		}
	})

	t.Run("long website is truncated not rejected", func(t *testing.T) {
		service, mockRepo := newTestService(t)

		mockRepo.EXPECT().
			CreateEntry(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error) {
				assert.Len(t, entry.Website, MaxWebsiteLength)
				return entry, nil
			})
		mockRepo.EXPECT().CountEntries(gomock.Any()).Return(int64(1), nil)

		_, err := service.Signup(context.Background(), &SignupRequest{
			Email:   "a@b.com",
			Website: strings.Repeat("x", MaxWebsiteLength+50),
		})

		assert.NoError(t, err)
	})

	t.Run("repository error surfaces as server error", func(t *testing.T) {
		service, mockRepo := newTestService(t)

		mockRepo.EXPECT().
			CreateEntry(gomock.Any(), gomock.Any()).
			Return(nil, apperrors.NewDatabaseError("database error", nil))

		result, err := service.Signup(context.Background(), &SignupRequest{Email: "a@b.com"})

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, apperrors.ErrorTypeDatabaseError, apperrors.GetErrorType(err))
	})

	t.Run("nil request is rejected", func(t *testing.T) {
		service, _ := newTestService(t)

		result, err := service.Signup(context.Background(), nil)

		assert.Error(t, err)
		assert.Nil(t, result)
	})
}

func TestWaitlistService_Stats(t *testing.T) {
	service, mockRepo := newTestService(t)

	mockRepo.EXPECT().CountEntries(gomock.Any()).Return(int64(42), nil)

	result, err := service.Stats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(42), result.TotalSignups)
}

func TestWaitlistService_ListEntries(t *testing.T) {
	service, mockRepo := newTestService(t)

	now := time.Now()
	mockRepo.EXPECT().GetAllEntries(gomock.Any()).Return([]*models.WaitlistEntry{
		{ID: 2, Email: "second@example.com", Website: "https://two.example", CreatedAt: now},
		{ID: 1, Email: "first@example.com", CreatedAt: now.Add(-time.Hour)},
	}, nil)

	result, err := service.ListEntries(context.Background())

	assert.NoError(t, err)
	assert.Len(t, result.Entries, 2)
	assert.Equal(t, "second@example.com", result.Entries[0].Email)
	assert.Equal(t, "https://two.example", result.Entries[0].Website)
	assert.Equal(t, "first@example.com", result.Entries[1].Email)
}
