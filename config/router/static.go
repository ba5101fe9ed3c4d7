package router

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"github.com/akeren/waitlist-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// DefaultFrontendDist matches the original repo layout where the API ran
// next to the built single-page frontend.
const DefaultFrontendDist = "../frontend/dist"

// spaFallbackHandler serves the prebuilt frontend for unmatched routes so
// client-side routing works after a hard refresh. API and admin paths never
// fall through to the frontend.
func (routerService *RouterService) spaFallbackHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if c.Request.Method != http.MethodGet || strings.HasPrefix(path, "/api") || strings.HasPrefix(path, "/admin") {
			correlatedLogger := routerService.logger.WithCorrelationID(c.Request.Context())
			correlatedLogger.Error("Route not found", "path", path)
			c.JSON(http.StatusNotFound, gin.H{
				"code":    apperrors.StatusNotFound,
				"message": "Route not found",
				"data":    nil,
			})
			return
		}

		dist := utils.GetEnvTrimmedOrDefault("FRONTEND_DIST", DefaultFrontendDist)

		if requested := filepath.Join(dist, filepath.Clean("/"+path)); isRegularFile(requested) {
			c.File(requested)
			return
		}

		index := filepath.Join(dist, "index.html")
		if isRegularFile(index) {
			c.File(index)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"code":    apperrors.StatusOK,
			"message": "Frontend not built. Run 'npm run build' first.",
			"data":    nil,
		})
	}
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
