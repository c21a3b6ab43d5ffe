package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"infostore/models"
)

// RequireLogin aborts unauthenticated requests with 401.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(KeyUserID); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts requests whose identity lacks the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(KeyRole)
		if !ok || role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "admin permission required",
			})
			return
		}
		c.Next()
	}
}
