package domain

import (
	"github.com/akeren/waitlist-api/config"
	"github.com/akeren/waitlist-api/domain/admin"
	"github.com/akeren/waitlist-api/domain/monitoring"
	"github.com/akeren/waitlist-api/domain/waitlist"
	"github.com/akeren/waitlist-api/pkg/factory"
)

func SetupCoreDomain(appConfig *config.ApplicationConfig) {
	limiters := factory.NewDefaultRateLimiterFactory(appConfig.Cache, appConfig.Logger)

	waitlistFactory := waitlist.NewWaitlistServiceFactory(appConfig.DB, appConfig.Logger)

	sessionStore := admin.NewGormSessionStore(appConfig.DB)
	gate := admin.NewGate(appConfig.Logger, sessionStore, admin.CredentialsFromEnv(), admin.SessionTTLFromEnv())

	appConfig.RouterService.MountController(monitoring.NewMonitoringController(appConfig.DB, appConfig.Logger, appConfig.Cache))
	appConfig.RouterService.MountController(waitlistFactory.CreateController(limiters, admin.RequireSession(gate)))
	appConfig.RouterService.MountController(admin.NewAdminController(appConfig.Logger, gate, waitlistFactory.CreateService()))
}
