package routes

import (
	"go.uber.org/zap"

	"hotel-pms/config"
	"hotel-pms/controllers"
	"hotel-pms/events"
	"hotel-pms/repository"
	"hotel-pms/services"
)

// NewControllers builds every service on store and the controllers on top.
func NewControllers(cfg config.Config, store repository.Store, pub events.Publisher, log *zap.Logger) Controllers {
	rooms := services.NewRoomService(store, pub, log)
	reservations := services.NewReservationService(store, pub, log)
	stays := services.NewStayService(store, pub, log)
	ledger := services.NewLedgerService(store, pub, log)
	guests := services.NewGuestService(store, pub, log)
	catalog := services.NewCatalogService(store, pub, log)
	orders := services.NewOrderService(store, pub, log)
	accounts := services.NewAccountService(store, pub, log, cfg.JWTSecret, cfg.AccessTokenTTL)

	return Controllers{
		Auth:         controllers.NewAuthController(accounts, log),
		Rooms:        controllers.NewRoomController(rooms, log),
		Reservations: controllers.NewReservationController(reservations, stays, log),
		Guests:       controllers.NewGuestController(guests, stays, ledger, log),
		Ledger:       controllers.NewLedgerController(ledger, log),
		Catalog:      controllers.NewCatalogController(catalog, orders, log),
	}
}
