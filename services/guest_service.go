package services

import (
	"context"

	"go.uber.org/zap"

	"hotel-pms/events"
	"hotel-pms/models"
	"hotel-pms/repository"
)

// GuestService is read-only. Guests are created by StayService.CheckIn.
type GuestService struct {
	core
}

func NewGuestService(store repository.Store, pub events.Publisher, log *zap.Logger) *GuestService {
	return &GuestService{core: newCore(store, pub, log)}
}

func (s *GuestService) ListGuests(ctx context.Context, scope Scope, inHouseOnly bool, roomID string) ([]models.Guest, error) {
	var out []models.Guest
	err := s.run(ctx, "guest.list", scope, func(tx repository.Tx) error {
		var err error
		out, err = tx.ListGuests(scope.TenantID, repository.GuestFilter{InHouseOnly: inHouseOnly, RoomID: roomID})
		return fromRepo(err, "guest")
	})
	return out, err
}

func (s *GuestService) GetGuest(ctx context.Context, scope Scope, id string) (*models.Guest, error) {
	var g *models.Guest
	err := s.run(ctx, "guest.get", scope, func(tx repository.Tx) error {
		var err error
		g, err = tx.GetGuest(scope.TenantID, id, false)
		return fromRepo(err, "guest")
	})
	return g, err
}
