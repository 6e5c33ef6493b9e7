package config

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"hotel-pms/models"
	"hotel-pms/repository"
	"hotel-pms/services"
	"hotel-pms/utils"
)

type demoRoom struct {
	number string
	floor  int
	kind   models.RoomType
	price  int64
	max    int
}

var demoRooms = []demoRoom{
	{"101", 1, models.RoomTypeSingle, 25000, 1},
	{"102", 1, models.RoomTypeDouble, 35000, 2},
	{"201", 2, models.RoomTypeDeluxe, 50000, 3},
	{"301", 3, models.RoomTypeSuite, 90000, 4},
}

var demoServices = []services.CreateServiceInput{
	{Name: "Breakfast", Type: models.ServiceMeal, BasePrice: decimal.NewFromInt(5000)},
	{Name: "Laundry (per bag)", Type: models.ServiceLaundry, BasePrice: decimal.NewFromInt(3500)},
	{Name: "Airport pickup", Type: models.ServiceChauffeur, BasePrice: decimal.NewFromInt(20000)},
}

// SeedDemo creates a demo organization with rooms and services. It does nothing
// once any organization exists.
func SeedDemo(ctx context.Context, store repository.Store, log *zap.Logger) error {
	accounts := services.NewAccountService(store, nil, log, "", 0)
	required, err := accounts.SetupRequired(ctx)
	if err != nil {
		return err
	}
	if !required {
		log.Info("demo seed skipped, setup already completed")
		return nil
	}

	email := utils.EnvOrDefault("DEMO_ADMIN_EMAIL", "admin@hotel.local")
	setup, err := accounts.Setup(ctx, services.SetupInput{
		HotelName:     "Demo Hotel",
		Address:       "1 Demo Street",
		AdminName:     "Admin User",
		AdminEmail:    email,
		AdminPassword: utils.EnvOrDefault("DEMO_ADMIN_PASSWORD", "admin12345"),
	})
	if err != nil {
		return fmt.Errorf("seed setup: %w", err)
	}
	scope := services.Scope{TenantID: setup.Organization.ID, UserID: setup.Admin.ID}

	rooms := services.NewRoomService(store, nil, log)
	for _, r := range demoRooms {
		r := r
		price := decimal.NewFromInt(r.price)
		if _, err := rooms.CreateRoom(ctx, scope, services.RoomInput{
			RoomNumber:   &r.number,
			Floor:        &r.floor,
			RoomType:     &r.kind,
			BasePrice:    &price,
			MaxOccupancy: &r.max,
		}); err != nil {
			return fmt.Errorf("seed room %s: %w", r.number, err)
		}
	}

	catalog := services.NewCatalogService(store, nil, log)
	for _, in := range demoServices {
		if _, err := catalog.CreateService(ctx, scope, in); err != nil {
			return fmt.Errorf("seed service %s: %w", in.Name, err)
		}
	}

	log.Info("demo data seeded",
		zap.String("tenant_id", setup.Organization.ID),
		zap.String("admin_email", email),
		zap.Int("rooms", len(demoRooms)),
		zap.Int("services", len(demoServices)),
	)
	return nil
}
