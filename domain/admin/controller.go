package admin

import (
	"net/http"

	"github.com/akeren/waitlist-api/config/router"
	"github.com/akeren/waitlist-api/domain/waitlist"
	"github.com/akeren/waitlist-api/internal/log"
)

// NewAdminController mounts the HTML admin surface: login form, logout, and
// the dashboard. All responses are pages or redirects, not JSON.
func NewAdminController(
	logger *log.Logger,
	gate *Gate,
	service waitlist.WaitlistService,
) *router.RESTController {

	return router.NewRESTController(
		"AdminController",
		"/admin",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.AddGetPageHandler(c, nil, "", rootHandler(gate))
			rs.AddGetPageHandler(c, nil, "login", loginPageHandler())
			rs.AddPostPageHandler(c, nil, "login", loginSubmitHandler(gate))
			rs.AddGetPageHandler(c, nil, "logout", logoutHandler(gate))
			rs.AddGetPageHandler(c, nil, "dashboard", dashboardHandler(service), RequireSessionPage(gate))
		},
	)
}

func rootHandler(gate *Gate) router.MiddlewareFunc {
	return func(c *router.RequestContext) {
		if gate.Authenticated(c.Request.Context(), sessionToken(c)) {
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}
		c.Redirect(http.StatusFound, "/admin/login")
	}
}

func loginPageHandler() router.MiddlewareFunc {
	return func(c *router.RequestContext) {
		renderPage(c, "login.html", loginPageData{Error: c.Query("error") == "1"})
	}
}

func loginSubmitHandler(gate *Gate) router.MiddlewareFunc {
	return func(c *router.RequestContext) {
		username := c.PostForm("username")
		password := c.PostForm("password")

		token, expiresAt, err := gate.Login(c.Request.Context(), username, password)
		if err != nil {
			c.Redirect(http.StatusFound, "/admin/login?error=1")
			return
		}

		setSessionCookie(c, token, expiresAt)
		c.Redirect(http.StatusFound, "/admin/dashboard")
	}
}

func logoutHandler(gate *Gate) router.MiddlewareFunc {
	return func(c *router.RequestContext) {
		if token := sessionToken(c); token != "" {
			gate.Logout(c.Request.Context(), token)
		}
		clearSessionCookie(c)
		c.Redirect(http.StatusFound, "/admin/login")
	}
}

func dashboardHandler(service waitlist.WaitlistService) router.MiddlewareFunc {
	return func(c *router.RequestContext) {
		response, err := service.ListEntries(c.Request.Context())
		if err != nil {
			router.GetLogger(c).Error("Failed to load dashboard entries", "error", err)
			c.String(http.StatusInternalServerError, "Internal server error")
			return
		}

		data := dashboardPageData{
			TotalSignups: len(response.Entries),
			LatestSignup: "None",
			Entries:      response.Entries,
		}
		for _, entry := range response.Entries {
			if entry.Website != "" {
				data.WithWebsites++
			}
		}
		if len(response.Entries) > 0 {
			data.LatestSignup = response.Entries[0].CreatedAt
		}

		renderPage(c, "dashboard.html", data)
	}
}
