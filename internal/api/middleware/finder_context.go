package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Dayoung0-0/zero-to-agile-frontend/internal/services"
)

// HeaderFinderID is set by the upstream gateway to the signed-in finder's user ID.
const HeaderFinderID = "X-Finder-Id"

// FinderContextMiddleware copies the caller identity headers into the request
// context so the finder repository can forward them. Nothing is verified here.
func FinderContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		fc := services.FinderContext{
			FinderID:      c.GetHeader(HeaderFinderID),
			Authorization: c.GetHeader("Authorization"),
			Cookie:        c.GetHeader("Cookie"),
		}
		c.Request = c.Request.WithContext(services.WithFinderContext(c.Request.Context(), fc))
		c.Next()
	}
}
