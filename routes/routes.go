package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"hotel-pms/config"
	"hotel-pms/controllers"
	"hotel-pms/middleware"
)

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

type Controllers struct {
	Auth         *controllers.AuthController
	Rooms        *controllers.RoomController
	Reservations *controllers.ReservationController
	Guests       *controllers.GuestController
	Ledger       *controllers.LedgerController
	Catalog      *controllers.CatalogController
}

// SetupRouter wires middleware and every route. rdb may be nil.
func SetupRouter(cfg config.Config, ctl Controllers, rdb *redis.Client, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	origins := parseCorsOrigins(cfg.CORSOrigins)
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	perm := middleware.RequirePermission
	limit := middleware.RateLimit(cfg.RateLimit, rdb, log)

	api := r.Group("/api", limit)
	{
		api.GET("/setup/check", ctl.Auth.SetupCheck)
		api.POST("/setup", ctl.Auth.Setup)
		api.POST("/auth/login", ctl.Auth.Login)
	}

	authed := api.Group("", middleware.JWTAuth(cfg.JWTSecret))
	{
		authed.POST("/users", perm(middleware.PermUsersCreate), ctl.Auth.CreateUser)

		rooms := authed.Group("/rooms")
		{
			rooms.GET("", perm(middleware.PermRoomsView), ctl.Rooms.List)
			rooms.POST("", perm(middleware.PermRoomsCreate), ctl.Rooms.Create)
			rooms.GET("/:id", perm(middleware.PermRoomsView), ctl.Rooms.Get)
			rooms.PATCH("/:id", perm(middleware.PermRoomsEdit), ctl.Rooms.Update)
			rooms.DELETE("/:id", perm(middleware.PermRoomsDelete), ctl.Rooms.Delete)
			rooms.PATCH("/:id/status", perm(middleware.PermRoomsEditStatus), ctl.Rooms.ChangeStatus)
		}

		reservations := authed.Group("/reservations")
		{
			reservations.GET("", perm(middleware.PermReservationsView), ctl.Reservations.List)
			reservations.POST("", perm(middleware.PermReservationsCreate), ctl.Reservations.Create)
			reservations.GET("/:id", perm(middleware.PermReservationsView), ctl.Reservations.Get)
			reservations.POST("/:id/confirm", perm(middleware.PermReservationsEdit), ctl.Reservations.Confirm)
			reservations.POST("/:id/cancel", perm(middleware.PermReservationsEdit), ctl.Reservations.Cancel)
			reservations.POST("/:id/no-show", perm(middleware.PermReservationsEdit), ctl.Reservations.NoShow)
			reservations.POST("/:id/payments", perm(middleware.PermLedgerCreate), ctl.Reservations.RecordPayment)
			reservations.POST("/:id/checkin", perm(middleware.PermStaysCheckIn), ctl.Reservations.CheckIn)
		}

		guests := authed.Group("/guests")
		{
			guests.GET("", perm(middleware.PermGuestsView), ctl.Guests.List)
			guests.GET("/:id", perm(middleware.PermGuestsView), ctl.Guests.Get)
			guests.POST("/:id/checkout", perm(middleware.PermStaysCheckOut), ctl.Guests.CheckOut)
			guests.GET("/:id/tab", perm(middleware.PermLedgerView), ctl.Guests.Tab)
			guests.POST("/:id/tab/settle", perm(middleware.PermLedgerCreate), ctl.Guests.SettleTab)
		}

		authed.GET("/transactions", perm(middleware.PermLedgerView), ctl.Ledger.List)
		authed.POST("/transactions", perm(middleware.PermLedgerCreate), ctl.Ledger.Record)
		authed.GET("/audit-logs", perm(middleware.PermAuditView), ctl.Ledger.Audit)

		authed.GET("/services", perm(middleware.PermCatalogView), ctl.Catalog.ListServices)
		authed.POST("/services", perm(middleware.PermCatalogCreate), ctl.Catalog.CreateService)
		authed.PATCH("/services/:id/active", perm(middleware.PermCatalogEdit), ctl.Catalog.SetActive)

		authed.GET("/orders", perm(middleware.PermOrdersView), ctl.Catalog.ListOrders)
		authed.POST("/orders", perm(middleware.PermOrdersCreate), ctl.Catalog.PlaceOrder)
		authed.PATCH("/orders/:id/status", perm(middleware.PermOrdersEdit), ctl.Catalog.UpdateOrderStatus)
	}

	return r
}
