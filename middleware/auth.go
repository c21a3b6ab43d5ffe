package middleware

import (
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"infostore/jwt"
	"infostore/repository"
)

// Context keys set by Auth for downstream handlers.
const (
	KeyUserID  = "UserID"
	KeyRole    = "Role"
	KeyTokenID = "TokenID"
)

// Auth resolves the Bearer token, if any, into an identity. Requests without
// a valid token continue anonymously; the guards below decide whether that
// is acceptable per route.
func Auth(tokens *jwt.Manager, store *repository.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		raw := strings.TrimPrefix(authHeader, "Bearer ")
		if raw == "" || raw == authHeader {
			c.Next()
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			log.Printf("token rejected: %v", err)
			c.Next()
			return
		}

		// A signed token is only as good as its allowlist row; logout
		// deletes the row to revoke the token early.
		loginToken, err := store.Users.GetLoginToken(c.Request.Context(), claims.TokenID)
		if err != nil || time.Now().After(loginToken.ExpirationTime) {
			c.Next()
			return
		}

		c.Set(KeyUserID, claims.UserID)
		c.Set(KeyRole, claims.Role)
		c.Set(KeyTokenID, claims.TokenID)
		c.Next()
	}
}
