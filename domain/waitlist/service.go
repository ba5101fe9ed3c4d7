package waitlist

import (
	"context"

	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/internal/models"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
)

type WaitlistService interface {
	// Signup validates and normalizes the request, attempts the insert, and
	// reports the outcome together with a fresh total count. A duplicate
	// email yields a Success=false response, not an error.
	Signup(ctx context.Context, req *SignupRequest) (*SignupResponse, error)

	// Stats returns the current total signup count.
	Stats(ctx context.Context) (*StatsResponse, error)

	// ListEntries returns every entry newest-first for the admin view.
	ListEntries(ctx context.Context) (*ListEntriesResponse, error)
}

type waitlistService struct {
	logger     *log.Logger
	repository WaitlistRepository
}

func NewWaitlistService(logger *log.Logger, repository WaitlistRepository) WaitlistService {
	return &waitlistService{logger: logger, repository: repository}
}

func (s *waitlistService) Signup(ctx context.Context, req *SignupRequest) (*SignupResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil {
		logger.Error("Signup received empty request")
		return nil, apperrors.NewInvalidRequestError("request cannot be nil", nil)
	}

	email, website, err := NormalizeSignup(req.Email, req.Website)
	if err != nil {
		logger.Warn("Invalid email format attempted", "email", truncateForLog(req.Email))
		return nil, err
	}

	_, err = s.repository.CreateEntry(ctx, &models.WaitlistEntry{Email: email, Website: website})
	if err != nil && apperrors.GetErrorType(err) != apperrors.ErrorTypeConflict {
		logger.Error("Failed to create waitlist entry", "error", err)
		return nil, err
	}

	duplicate := err != nil

	// The count is read after the insert attempt so the response reflects
	// the entry's presence or absence exactly.
	total, countErr := s.repository.CountEntries(ctx)
	if countErr != nil {
		logger.Error("Failed to count waitlist entries", "error", countErr)
		return nil, countErr
	}

	if duplicate {
		logger.Info("Duplicate signup attempt", "email", truncateForLog(email))
		return &SignupResponse{
			Success:      false,
			Message:      MessageEmailExists,
			TotalSignups: total,
		}, nil
	}

	logger.Info("New signup", "email", truncateForLog(email), "total", total)
	return &SignupResponse{
		Success:      true,
		Message:      MessageSignupSuccess,
		TotalSignups: total,
	}, nil
}

func (s *waitlistService) Stats(ctx context.Context) (*StatsResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	total, err := s.repository.CountEntries(ctx)
	if err != nil {
		logger.Error("Failed to count waitlist entries", "error", err)
		return nil, err
	}

	logger.Info("Stats requested", "total", total)
	return &StatsResponse{TotalSignups: total}, nil
}

func (s *waitlistService) ListEntries(ctx context.Context) (*ListEntriesResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	entries, err := s.repository.GetAllEntries(ctx)
	if err != nil {
		logger.Error("Failed to list waitlist entries", "error", err)
		return nil, err
	}

	return ToListEntriesResponse(entries), nil
}

// truncateForLog keeps addresses out of the logs beyond a short prefix.
func truncateForLog(email string) string {
	const max = 20
	if runes := []rune(email); len(runes) > max {
		return string(runes[:max]) + "..."
	}
	return email
}
