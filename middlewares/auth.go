package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"greengoals/models"
	"greengoals/store"
	"greengoals/utils"
)

// AuthMiddleware verifies the bearer token and sets the caller's
// identity in the context. Missing token is 401; a malformed, expired
// or badly signed one is 403.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, secret)
		if !ok {
			return
		}
		c.Set("userId", claims.UserID)
		c.Set("isAdmin", claims.IsAdmin)
		c.Next()
	}
}

// AdminMiddleware additionally requires the resolved user's role to be
// super_admin, re-checked against the current store state rather than
// trusted from token claims alone.
func AdminMiddleware(secret string, st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, secret)
		if !ok {
			return
		}

		isAdmin := false
		err := st.View(func(db *store.Database) error {
			if user := db.User(claims.UserID); user != nil {
				isAdmin = user.Role == models.RoleSuperAdmin
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			c.Abort()
			return
		}
		if !isAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Set("userId", claims.UserID)
		c.Set("isAdmin", true)
		c.Next()
	}
}

func parseBearer(c *gin.Context, secret string) (*utils.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Access denied"})
		c.Abort()
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid token"})
		c.Abort()
		return nil, false
	}

	claims, err := utils.ParseToken(secret, parts[1])
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid token"})
		c.Abort()
		return nil, false
	}
	return claims, true
}
