package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"hotel-pms/events"
	"hotel-pms/models"
	"hotel-pms/repository"
	"hotel-pms/utils"
)

type ReservationService struct {
	core
}

func NewReservationService(store repository.Store, pub events.Publisher, log *zap.Logger) *ReservationService {
	return &ReservationService{core: newCore(store, pub, log)}
}

type CreateReservationInput struct {
	GuestName       string                   `json:"guestName"`
	GuestPhone      string                   `json:"guestPhone"`
	GuestEmail      *string                  `json:"guestEmail"`
	RoomID          string                   `json:"roomId"`
	CheckInDate     string                   `json:"checkInDate"`
	CheckOutDate    string                   `json:"checkOutDate"`
	Adults          int                      `json:"adults"`
	Children        int                      `json:"children"`
	Source          models.ReservationSource `json:"source"`
	SpecialRequests string                   `json:"specialRequests"`
	Notes           string                   `json:"notes"`
}

// CreateReservation prices the stay from the room's current basePrice. The
// total is frozen here and never recomputed.
func (s *ReservationService) CreateReservation(ctx context.Context, scope Scope, in CreateReservationInput) (*models.Reservation, error) {
	in.GuestName = strings.TrimSpace(in.GuestName)
	in.GuestPhone = strings.TrimSpace(in.GuestPhone)
	in.RoomID = strings.TrimSpace(in.RoomID)
	switch {
	case in.GuestName == "":
		return nil, invalidInput("guestName is required")
	case in.GuestPhone == "":
		return nil, invalidInput("guestPhone is required")
	case in.RoomID == "":
		return nil, invalidInput("roomId is required")
	case in.Adults < 0 || in.Children < 0:
		return nil, invalidInput("adults and children must not be negative")
	}
	checkIn, err := utils.ParseDate(in.CheckInDate)
	if err != nil {
		return nil, invalidInput("checkInDate: %v", err)
	}
	checkOut, err := utils.ParseDate(in.CheckOutDate)
	if err != nil {
		return nil, invalidInput("checkOutDate: %v", err)
	}
	nights := models.NightsBetween(checkIn, checkOut)
	if nights <= 0 {
		return nil, invalidInput("checkOutDate must be after checkInDate")
	}
	if in.Adults == 0 {
		in.Adults = 1
	}
	if in.Source == "" {
		in.Source = models.SourceWalkIn
	}

	var res *models.Reservation
	err = s.run(ctx, "reservation.create", scope, func(tx repository.Tx) error {
		room, err := tx.GetRoom(scope.TenantID, in.RoomID, false)
		if err != nil {
			return fromRepo(err, "room")
		}
		total := room.BasePrice.Mul(decimal.NewFromInt(int64(nights)))
		res = &models.Reservation{
			OrganizationID:     scope.TenantID,
			GuestName:          in.GuestName,
			GuestPhone:         in.GuestPhone,
			GuestEmail:         optionalString(in.GuestEmail),
			RoomID:             room.ID,
			CheckInDate:        checkIn,
			CheckOutDate:       checkOut,
			Nights:             nights,
			Adults:             in.Adults,
			Children:           in.Children,
			TotalAmount:        total,
			AmountPaid:         decimal.Zero,
			OutstandingBalance: total,
			Status:             models.ReservationPending,
			Source:             in.Source,
			SpecialRequests:    strings.TrimSpace(in.SpecialRequests),
			Notes:              strings.TrimSpace(in.Notes),
		}
		if err := tx.CreateReservation(res); err != nil {
			return fromRepo(err, "reservation")
		}
		return s.audit(tx, scope, "reservation.created", "reservation", res.ID, map[string]interface{}{
			"roomId":      room.ID,
			"nights":      nights,
			"totalAmount": total,
		})
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.New(events.ReservationCreated, scope.TenantID, map[string]interface{}{
		"reservationId": res.ID,
		"roomId":        res.RoomID,
		"checkInDate":   res.CheckInDate,
		"checkOutDate":  res.CheckOutDate,
	}))
	return res, nil
}

func (s *ReservationService) GetReservation(ctx context.Context, scope Scope, id string) (*models.Reservation, error) {
	var res *models.Reservation
	err := s.run(ctx, "reservation.get", scope, func(tx repository.Tx) error {
		var err error
		res, err = tx.GetReservation(scope.TenantID, id, false)
		return fromRepo(err, "reservation")
	})
	return res, err
}

func (s *ReservationService) ListReservations(ctx context.Context, scope Scope, status, roomID string) ([]models.Reservation, error) {
	f := repository.ReservationFilter{RoomID: roomID}
	if status != "" {
		st, err := models.ParseReservationStatus(status)
		if err != nil {
			return nil, invalidInput("%v", err)
		}
		f.Status = st
	}
	var out []models.Reservation
	err := s.run(ctx, "reservation.list", scope, func(tx repository.Tx) error {
		var err error
		out, err = tx.ListReservations(scope.TenantID, f)
		return fromRepo(err, "reservation")
	})
	return out, err
}

func (s *ReservationService) ConfirmReservation(ctx context.Context, scope Scope, id string) (*models.Reservation, error) {
	return s.transition(ctx, scope, id, models.ReservationConfirmed)
}

func (s *ReservationService) CancelReservation(ctx context.Context, scope Scope, id string) (*models.Reservation, error) {
	return s.transition(ctx, scope, id, models.ReservationCanceled)
}

func (s *ReservationService) MarkNoShow(ctx context.Context, scope Scope, id string) (*models.Reservation, error) {
	return s.transition(ctx, scope, id, models.ReservationNoShow)
}

// transition handles the operator-driven edges. checked_in is reserved for CheckIn.
func (s *ReservationService) transition(ctx context.Context, scope Scope, id string, to models.ReservationStatus) (*models.Reservation, error) {
	var res *models.Reservation
	err := s.run(ctx, "reservation."+string(to), scope, func(tx repository.Tx) error {
		var err error
		res, err = tx.GetReservation(scope.TenantID, id, true)
		if err != nil {
			return fromRepo(err, "reservation")
		}
		from := res.Status
		if err := res.TransitionTo(to); err != nil {
			return invalidState("%v", err)
		}
		if err := tx.SaveReservation(res); err != nil {
			return fromRepo(err, "reservation")
		}
		return s.audit(tx, scope, "reservation.status_changed", "reservation", res.ID, map[string]interface{}{
			"from": from,
			"to":   to,
		})
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

type ReservationPaymentInput struct {
	Method models.PaymentMethod `json:"method"`
	Amount decimal.Decimal      `json:"amount"`
	Notes  string               `json:"notes"`
}

// RecordReservationPayment takes a deposit or a settlement against the room
// charge. The ledger entry and the balance update commit together.
func (s *ReservationService) RecordReservationPayment(ctx context.Context, scope Scope, id string, in ReservationPaymentInput) (*models.Transaction, error) {
	if !in.Method.Valid() {
		return nil, invalidInput("method must be one of cash, pos, bank_transfer")
	}
	if !in.Amount.IsPositive() {
		return nil, invalidInput("amount must be greater than 0")
	}
	if err := checkMoney("amount", in.Amount); err != nil {
		return nil, err
	}
	ref, err := utils.TransactionReference()
	if err != nil {
		return nil, &Error{Kind: KindInternal, Message: "internal error", Err: err}
	}

	var txn *models.Transaction
	err = s.run(ctx, "reservation.payment", scope, func(tx repository.Tx) error {
		res, err := tx.GetReservation(scope.TenantID, id, true)
		if err != nil {
			return fromRepo(err, "reservation")
		}
		if res.Status == models.ReservationCanceled || res.Status == models.ReservationNoShow {
			return invalidState("reservation is %s", res.Status)
		}
		if in.Amount.GreaterThan(res.OutstandingBalance) {
			return overpaid("amount", in.Amount, res.OutstandingBalance)
		}
		desc := "Reservation payment"
		if n := strings.TrimSpace(in.Notes); n != "" {
			desc += ": " + n
		}
		txn = &models.Transaction{
			OrganizationID: scope.TenantID,
			Type:           models.TransactionPayment,
			Method:         in.Method,
			Amount:         in.Amount,
			ReferenceID:    ref,
			ReservationID:  strPtr(res.ID),
			Description:    desc,
			CreatedAt:      s.now(),
		}
		if err := tx.AppendTransaction(txn); err != nil {
			return fromRepo(err, "transaction")
		}
		res.ApplyPayment(in.Amount)
		if err := tx.SaveReservation(res); err != nil {
			return fromRepo(err, "reservation")
		}
		return s.audit(tx, scope, "reservation.payment_recorded", "reservation", res.ID, map[string]interface{}{
			"amount":             in.Amount,
			"outstandingBalance": res.OutstandingBalance,
		})
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}
