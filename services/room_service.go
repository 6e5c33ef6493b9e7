package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"hotel-pms/events"
	"hotel-pms/models"
	"hotel-pms/repository"
)

type RoomService struct {
	core
}

func NewRoomService(store repository.Store, pub events.Publisher, log *zap.Logger) *RoomService {
	return &RoomService{core: newCore(store, pub, log)}
}

// RoomInput carries the operator-editable room fields. Nil means "leave as is"
// on update and "use the default" on create.
type RoomInput struct {
	RoomNumber   *string          `json:"roomNumber"`
	Floor        *int             `json:"floor"`
	RoomType     *models.RoomType `json:"roomType"`
	BasePrice    *decimal.Decimal `json:"basePrice"`
	TaxRate      *decimal.Decimal `json:"taxRate"`
	MaxOccupancy *int             `json:"maxOccupancy"`
	Notes        *string          `json:"notes"`
}

func (in RoomInput) apply(room *models.Room) error {
	if in.RoomNumber != nil {
		room.RoomNumber = strings.TrimSpace(*in.RoomNumber)
	}
	if in.Floor != nil {
		room.Floor = *in.Floor
	}
	if in.RoomType != nil {
		room.RoomType = *in.RoomType
	}
	if in.BasePrice != nil {
		room.BasePrice = *in.BasePrice
	}
	if in.TaxRate != nil {
		room.TaxRate = *in.TaxRate
	}
	if in.MaxOccupancy != nil {
		room.MaxOccupancy = *in.MaxOccupancy
	}
	if in.Notes != nil {
		room.Notes = strings.TrimSpace(*in.Notes)
	}

	switch {
	case room.RoomNumber == "":
		return invalidInput("roomNumber is required")
	case room.RoomType == "":
		return invalidInput("roomType is required")
	case !room.BasePrice.IsPositive():
		return invalidInput("basePrice must be greater than 0")
	case room.TaxRate.IsNegative():
		return invalidInput("taxRate must not be negative")
	case room.MaxOccupancy < 1:
		return invalidInput("maxOccupancy must be at least 1")
	}
	if err := checkMoney("basePrice", room.BasePrice); err != nil {
		return err
	}
	return checkMoney("taxRate", room.TaxRate)
}

// saveErr reports a lost race on the live-number unique index the same way
// ensureUniqueNumber reports a visible duplicate.
func saveErr(err error, number string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return &Error{Kind: KindConflict, Message: "room number " + number + " already exists", Err: err}
	}
	return fromRepo(err, "room")
}

// ensureUniqueNumber fails with Conflict when another live room of the tenant uses number.
func ensureUniqueNumber(tx repository.Tx, tenantID, roomID, number string) error {
	existing, err := tx.FindRoomByNumber(tenantID, number)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return fromRepo(err, "room")
	case existing.ID != roomID:
		return conflict("room number %s already exists", number)
	}
	return nil
}

func (s *RoomService) CreateRoom(ctx context.Context, scope Scope, in RoomInput) (*models.Room, error) {
	room := &models.Room{
		OrganizationID: scope.TenantID,
		Floor:          1,
		TaxRate:        models.DefaultTaxRate,
		MaxOccupancy:   models.DefaultMaxOccupancy,
		Status:         models.RoomAvailable,
	}
	if err := in.apply(room); err != nil {
		return nil, err
	}

	err := s.run(ctx, "room.create", scope, func(tx repository.Tx) error {
		if err := ensureUniqueNumber(tx, scope.TenantID, "", room.RoomNumber); err != nil {
			return err
		}
		if err := tx.CreateRoom(room); err != nil {
			return saveErr(err, room.RoomNumber)
		}
		return s.audit(tx, scope, "room.created", "room", room.ID, map[string]interface{}{
			"roomNumber": room.RoomNumber,
			"basePrice":  room.BasePrice,
		})
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

func (s *RoomService) ListRooms(ctx context.Context, scope Scope, status string) ([]models.Room, error) {
	var f repository.RoomFilter
	if status != "" {
		st, err := models.ParseRoomStatus(status)
		if err != nil {
			return nil, invalidInput("%v", err)
		}
		f.Status = st
	}
	var rooms []models.Room
	err := s.run(ctx, "room.list", scope, func(tx repository.Tx) error {
		var err error
		rooms, err = tx.ListRooms(scope.TenantID, f)
		return fromRepo(err, "room")
	})
	return rooms, err
}

func (s *RoomService) GetRoom(ctx context.Context, scope Scope, id string) (*models.Room, error) {
	var room *models.Room
	err := s.run(ctx, "room.get", scope, func(tx repository.Tx) error {
		var err error
		room, err = tx.GetRoom(scope.TenantID, id, false)
		return fromRepo(err, "room")
	})
	return room, err
}

// UpdateRoom edits descriptive fields only. Status moves through ChangeRoomStatus.
func (s *RoomService) UpdateRoom(ctx context.Context, scope Scope, id string, in RoomInput) (*models.Room, error) {
	var room *models.Room
	err := s.run(ctx, "room.update", scope, func(tx repository.Tx) error {
		var err error
		room, err = tx.GetRoom(scope.TenantID, id, true)
		if err != nil {
			return fromRepo(err, "room")
		}
		if err := in.apply(room); err != nil {
			return err
		}
		if err := ensureUniqueNumber(tx, scope.TenantID, room.ID, room.RoomNumber); err != nil {
			return err
		}
		if err := tx.SaveRoom(room); err != nil {
			return saveErr(err, room.RoomNumber)
		}
		return s.audit(tx, scope, "room.updated", "room", room.ID, nil)
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

// ChangeRoomStatus applies an operator-driven transition. Occupied rooms are
// locked to the stay lifecycle.
func (s *RoomService) ChangeRoomStatus(ctx context.Context, scope Scope, id string, to models.RoomStatus) (*models.Room, error) {
	if !to.Valid() {
		return nil, invalidInput("invalid room status %q", to)
	}
	if to == models.RoomOccupied {
		return nil, invalidInput("rooms become occupied only through check-in")
	}

	var room *models.Room
	var from models.RoomStatus
	err := s.run(ctx, "room.status", scope, func(tx repository.Tx) error {
		var err error
		room, err = tx.GetRoom(scope.TenantID, id, true)
		if err != nil {
			return fromRepo(err, "room")
		}
		from = room.Status
		if from == models.RoomOccupied {
			return conflict("room %s is occupied; it is released by check-out", room.RoomNumber)
		}
		if from == to {
			return nil
		}
		if err := room.TransitionRoom(to, models.TriggerOperator); err != nil {
			return conflict("%v", err)
		}
		if err := tx.SaveRoom(room); err != nil {
			return fromRepo(err, "room")
		}
		return s.audit(tx, scope, "room.status_changed", "room", room.ID, map[string]interface{}{
			"from": from,
			"to":   to,
		})
	})
	if err != nil {
		return nil, err
	}
	if from != to {
		s.log.Info("room status changed",
			zap.String("tenant_id", scope.TenantID),
			zap.String("room_id", room.ID),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
	}
	return room, nil
}

func (s *RoomService) DeleteRoom(ctx context.Context, scope Scope, id string) error {
	return s.run(ctx, "room.delete", scope, func(tx repository.Tx) error {
		room, err := tx.GetRoom(scope.TenantID, id, true)
		if err != nil {
			return fromRepo(err, "room")
		}
		if room.Status == models.RoomOccupied {
			return conflict("room %s is occupied and cannot be deleted", room.RoomNumber)
		}
		if err := tx.DeleteRoom(scope.TenantID, id); err != nil {
			return fromRepo(err, "room")
		}
		return s.audit(tx, scope, "room.deleted", "room", id, map[string]interface{}{"roomNumber": room.RoomNumber})
	})
}
