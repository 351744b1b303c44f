package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequirePositions restricts a route to users holding one of the given
// canonical positions. Matching is exact: "Vice President" does not satisfy
// a "President" requirement.
func RequirePositions(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		position := c.GetString("position")
		if !positionAllowed(position, allowed) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to perform this action"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func positionAllowed(position string, allowed []string) bool {
	if position == "" {
		return false
	}
	for _, name := range allowed {
		if position == name {
			return true
		}
	}
	return false
}
