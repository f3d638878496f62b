package middleware

import (
	"net/http"
	"os"
	"strings"

	"go-milk-delivery/helpers"
	"go-milk-delivery/models"

	"github.com/gin-gonic/gin"
)

func Authentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientToken := c.Request.Header.Get("Authorization")
		if clientToken == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no authorization header provided"})
			c.Abort()
			return
		}
		clientToken = strings.TrimPrefix(clientToken, "Bearer ")

		claims, msg := helpers.ValidateToken(clientToken)
		if msg != "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
			c.Abort()
			return
		}
		c.Set("email", claims.Email)
		c.Set("name", claims.Name)
		c.Set("uid", claims.Uid)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// IsAdmin reports whether a token identifies an administrator: either the
// role claim says so, or the email matches the configured admin address.
func IsAdmin(role string, email string) bool {
	if role == models.RoleAdmin {
		return true
	}
	adminEmail := os.Getenv("ADMIN_EMAIL")
	return adminEmail != "" && email == adminEmail
}

func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		email := c.GetString("email")
		if !IsAdmin(role, email) {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
