package waitlist

import (
	"time"

	"github.com/akeren/waitlist-api/config/router"
	"github.com/akeren/waitlist-api/internal/log"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"github.com/akeren/waitlist-api/pkg/factory"
	"gorm.io/gorm"
)

// Public endpoint limits, per client address.
const (
	signupRequestsPerMinute = 5
	statsRequestsPerMinute  = 30
)

// NewWaitlistController mounts the public signup surface plus the
// session-gated admin listing. requireSession is supplied by the admin
// domain so this package stays independent of it.
func NewWaitlistController(
	db *gorm.DB,
	logger *log.Logger,
	limiters factory.RateLimiterFactory,
	requireSession router.MiddlewareFunc,
) *router.RESTController {

	return router.NewRESTController(
		"WaitlistController",
		"/api",
		func(rs *router.RouterService, c *router.RESTController) {
			repository := NewWaitlistRepository(db)
			service := NewWaitlistService(logger, repository)

			signupLimiter := limiters.CreateRateLimiter(signupRequestsPerMinute, time.Minute)
			statsLimiter := limiters.CreateRateLimiter(statsRequestsPerMinute, time.Minute)

			rs.AddPostHandler(c, signupLimiter, "signup", signupHandler(service))
			rs.AddGetHandler(c, statsLimiter, "stats", statsHandler(service))
			rs.AddGetHandler(c, nil, "waitlist", listEntriesHandler(service), requireSession)
		},
	)
}

func signupHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req SignupRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Error("Failed to bind request", "error", err)

			validationErrors := apperrors.FormatValidationErrors(err, &req)
			if len(validationErrors) > 0 {
				return router.BadRequestResult("Invalid request payload", validationErrors)
			}

			return router.BadRequestResult("Invalid request body", nil)
		}

		response, err := service.Signup(ctx.Request.Context(), &req)
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		// Duplicates come back here too: HTTP 200 with success=false in the
		// payload rather than a conflict status.
		return router.OKResult(response, "Signup processed")
	}
}

func statsHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		response, err := service.Stats(ctx.Request.Context())
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		return router.OKResult(response, "Stats retrieved successfully")
	}
}

func listEntriesHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		response, err := service.ListEntries(ctx.Request.Context())
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		return router.OKResult(response, "Waitlist entries retrieved successfully")
	}
}
