package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hotel-pms/utils"
)

// Context keys set by JWTAuth.
const (
	KeyUserID   = "user_id"
	KeyTenantID = "tenant_id"
	KeyRole     = "role"
)

// JWTAuth validates the Bearer access token and stores the user, tenant and
// role claims on the context.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "missing bearer token", nil)
			c.Abort()
			return
		}
		claims, err := utils.ParseAccessToken(secret, strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")))
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "invalid token", nil)
			c.Abort()
			return
		}
		c.Set(KeyUserID, claims.Subject)
		c.Set(KeyTenantID, claims.OrganizationID)
		c.Set(KeyRole, claims.Role)
		c.Next()
	}
}
