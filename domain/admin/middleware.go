package admin

import (
	"net/http"

	"github.com/akeren/waitlist-api/config/router"
)

// RequireSession gates JSON endpoints. Unauthenticated requests get a 401
// envelope and never reach the handler.
func RequireSession(gate *Gate) router.MiddlewareFunc {
	return func(c *router.RequestContext) {
		if !gate.Authenticated(c.Request.Context(), sessionToken(c)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, router.UnauthorizedResult("Not authenticated").ToJSON())
			return
		}
		c.Next()
	}
}

// RequireSessionPage gates HTML pages, redirecting to the login form instead
// of returning JSON.
func RequireSessionPage(gate *Gate) router.MiddlewareFunc {
	return func(c *router.RequestContext) {
		if !gate.Authenticated(c.Request.Context(), sessionToken(c)) {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
