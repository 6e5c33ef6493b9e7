package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"hotel-pms/config"
	"hotel-pms/models"
	"hotel-pms/utils"
)

const secret = "test-secret"

func init() { gin.SetMode(gin.TestMode) }

func protected(perm string) *gin.Engine {
	r := gin.New()
	r.GET("/x", JWTAuth(secret), RequirePermission(perm), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user":   c.GetString(KeyUserID),
			"tenant": c.GetString(KeyTenantID),
		})
	})
	return r
}

func bearer(t *testing.T, role models.UserRole) string {
	t.Helper()
	tok, err := utils.NewAccessToken(secret, "user-1", "org-1", string(role), time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok.Token
}

func get(r http.Handler, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	r := protected(PermRoomsView)

	w := get(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"error":{"code":"unauthorized","message":"missing bearer token"}}`, w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer garbage").Code)

	other, err := utils.NewAccessToken("other-secret", "user-1", "org-1", "admin", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+other.Token).Code)

	w = get(r, bearer(t, models.RoleFrontdesk))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"user-1","tenant":"org-1"}`, w.Body.String())
}

func TestRequirePermission(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, get(protected(PermRoomsDelete), bearer(t, models.RoleFrontdesk)).Code)
	assert.Equal(t, http.StatusOK, get(protected(PermRoomsDelete), bearer(t, models.RoleAdmin)).Code)
	assert.Equal(t, http.StatusForbidden, get(protected(PermStaysCheckOut), bearer(t, models.RoleRestaurant)).Code)
	assert.Equal(t, http.StatusOK, get(protected(PermOrdersCreate), bearer(t, models.RoleRestaurant)).Code)
}

func TestEveryPermissionHasAnOwner(t *testing.T) {
	for _, p := range allPerms {
		assert.True(t, HasPermission(models.RoleOwner, p), p)
	}
	assert.False(t, HasPermission("guest", PermRoomsView))
}

func TestRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	cfg := config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Minute,
		TTL:            time.Minute,
		KeyStrategy:    "ip",
		Prefix:         "rl",
	}
	r := gin.New()
	r.Use(RateLimit(cfg, rdb, zap.NewNop()))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := get(r, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusNoContent, get(r, "").Code)

	w = get(r, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), `"too_many_requests"`)
}

func TestRateLimitFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	mr.Close()

	cfg := config.RateLimitConfig{Enabled: true, Capacity: 1, TTL: time.Minute, Prefix: "rl"}
	r := gin.New()
	r.Use(RateLimit(cfg, rdb, zap.NewNop()))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusNoContent, get(r, "").Code)
	}
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/x", func(c *gin.Context) {
		c.Set(KeyTenantID, "org-1")
		c.Status(http.StatusInternalServerError)
	})

	get(r, "")
	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.ErrorLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/x", fields["path"])
	assert.Equal(t, "org-1", fields["tenant_id"])
	assert.EqualValues(t, 500, fields["status"])
}
