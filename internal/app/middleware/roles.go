package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireModerator пускает дальше только модераторов каталога.
// Ставится после AuthMiddleware, который кладет is_moderator в контекст.
func RequireModerator() gin.HandlerFunc {
	return func(c *gin.Context) {
		isModerator, exists := c.Get("is_moderator")
		if !exists || !isModerator.(bool) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Требуются права модератора",
			})
			return
		}
		c.Next()
	}
}
