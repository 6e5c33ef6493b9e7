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

// StayService owns the two multi-record operations of a stay. Each runs as a
// single unit of work. Locks are always taken reservation/guest first, then
// room, then tab items.
type StayService struct {
	core
}

func NewStayService(store repository.Store, pub events.Publisher, log *zap.Logger) *StayService {
	return &StayService{core: newCore(store, pub, log)}
}

type CheckInInput struct {
	ReservationID string               `json:"-"`
	GuestName     string               `json:"guestName"`
	GuestPhone    string               `json:"guestPhone"`
	GuestEmail    *string              `json:"guestEmail"`
	NumGuests     int                  `json:"numGuests"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
	AmountPaid    decimal.Decimal      `json:"amountPaid"`
}

func (in *CheckInInput) normalize() error {
	in.GuestName = strings.TrimSpace(in.GuestName)
	in.GuestPhone = strings.TrimSpace(in.GuestPhone)
	switch {
	case strings.TrimSpace(in.ReservationID) == "":
		return invalidInput("reservationId is required")
	case in.GuestName == "":
		return invalidInput("guestName is required")
	case in.GuestPhone == "":
		return invalidInput("guestPhone is required")
	case in.PaymentMethod == "":
		return invalidInput("paymentMethod is required")
	case !in.PaymentMethod.Valid():
		return invalidInput("paymentMethod must be one of cash, pos, bank_transfer")
	case in.AmountPaid.IsNegative():
		return invalidInput("amountPaid must not be negative")
	case in.NumGuests < 0:
		return invalidInput("numGuests must not be negative")
	}
	if in.NumGuests == 0 {
		in.NumGuests = 1
	}
	return checkMoney("amountPaid", in.AmountPaid)
}

// CheckIn turns a pending or confirmed reservation into an in-house guest. The
// guest, the room status, the reservation status, the optional payment and the
// balance are committed together or not at all.
func (s *StayService) CheckIn(ctx context.Context, scope Scope, in CheckInInput) (*models.Guest, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	var ref string
	if in.AmountPaid.IsPositive() {
		var err error
		if ref, err = utils.TransactionReference(); err != nil {
			return nil, &Error{Kind: KindInternal, Message: "internal error", Err: err}
		}
	}

	var guest *models.Guest
	var room *models.Room
	err := s.run(ctx, "stay.checkin", scope, func(tx repository.Tx) error {
		res, err := tx.GetReservation(scope.TenantID, in.ReservationID, true)
		if err != nil {
			return fromRepo(err, "reservation")
		}
		if !models.CanTransitionReservation(res.Status, models.ReservationCheckedIn) {
			return invalidState("reservation is %s and cannot be checked in", res.Status)
		}

		room, err = tx.GetRoom(scope.TenantID, res.RoomID, true)
		if err != nil {
			return fromRepo(err, "room")
		}
		if room.Status != models.RoomAvailable {
			return &Error{
				Kind:    KindConflict,
				Message: "room " + room.RoomNumber + " is not available",
				Data:    map[string]interface{}{"roomStatus": room.Status},
			}
		}
		if in.NumGuests > room.MaxOccupancy {
			return invalidInput("room %s holds at most %d guests", room.RoomNumber, room.MaxOccupancy)
		}
		if in.AmountPaid.GreaterThan(res.OutstandingBalance) {
			return overpaid("amountPaid", in.AmountPaid, res.OutstandingBalance)
		}

		now := s.now()
		guest = &models.Guest{
			OrganizationID: scope.TenantID,
			ReservationID:  strPtr(res.ID),
			RoomID:         room.ID,
			Name:           in.GuestName,
			Phone:          in.GuestPhone,
			Email:          optionalString(in.GuestEmail),
			CheckInDate:    res.CheckInDate,
			CheckOutDate:   res.CheckOutDate,
			NumGuests:      in.NumGuests,
			IsCheckedIn:    true,
			CheckedInAt:    &now,
		}
		if err := tx.CreateGuest(guest); err != nil {
			return fromRepo(err, "guest")
		}

		if err := room.TransitionRoom(models.RoomOccupied, models.TriggerCheckIn); err != nil {
			return conflict("%v", err)
		}
		if err := tx.SaveRoom(room); err != nil {
			return fromRepo(err, "room")
		}

		if err := res.TransitionTo(models.ReservationCheckedIn); err != nil {
			return invalidState("%v", err)
		}
		if in.AmountPaid.IsPositive() {
			if err := tx.AppendTransaction(&models.Transaction{
				OrganizationID: scope.TenantID,
				Type:           models.TransactionPayment,
				Method:         in.PaymentMethod,
				Amount:         in.AmountPaid,
				ReferenceID:    ref,
				ReservationID:  strPtr(res.ID),
				GuestID:        strPtr(guest.ID),
				Description:    "Check-in payment",
				CreatedAt:      now,
			}); err != nil {
				return fromRepo(err, "transaction")
			}
			res.ApplyPayment(in.AmountPaid)
		}
		if err := tx.SaveReservation(res); err != nil {
			return fromRepo(err, "reservation")
		}

		return s.audit(tx, scope, "stay.checked_in", "guest", guest.ID, map[string]interface{}{
			"reservationId":      res.ID,
			"roomId":             room.ID,
			"amountPaid":         in.AmountPaid,
			"outstandingBalance": res.OutstandingBalance,
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("guest checked in",
		zap.String("tenant_id", scope.TenantID),
		zap.String("guest_id", guest.ID),
		zap.String("room_id", room.ID),
	)
	s.publish(ctx, events.New(events.GuestCheckedIn, scope.TenantID, map[string]interface{}{
		"guestId":       guest.ID,
		"reservationId": in.ReservationID,
		"roomId":        room.ID,
	}))
	return guest, nil
}

type CheckOutInput struct {
	GuestID           string               `json:"-"`
	PaymentMethod     models.PaymentMethod `json:"paymentMethod"`
	AdditionalPayment *decimal.Decimal     `json:"additionalPayment"`
}

type CheckOutResult struct {
	GuestID      string          `json:"guestId"`
	RoomID       string          `json:"roomId"`
	SettledTotal decimal.Decimal `json:"settledTotal"`
	ItemsSettled int             `json:"itemsSettled"`
	Transaction  *string         `json:"transactionId,omitempty"`
}

// CheckOut releases the guest's room. An unpaid tab blocks it with
// PaymentRequired unless the call brings at least the outstanding amount.
func (s *StayService) CheckOut(ctx context.Context, scope Scope, in CheckOutInput) (*CheckOutResult, error) {
	if strings.TrimSpace(in.GuestID) == "" {
		return nil, invalidInput("guestId is required")
	}
	payment := decimal.Zero
	if in.AdditionalPayment != nil {
		payment = *in.AdditionalPayment
	}
	if payment.IsNegative() {
		return nil, invalidInput("additionalPayment must not be negative")
	}
	if err := checkMoney("additionalPayment", payment); err != nil {
		return nil, err
	}
	var ref string
	if payment.IsPositive() {
		if !in.PaymentMethod.Valid() {
			return nil, invalidInput("paymentMethod is required with additionalPayment")
		}
		var err error
		if ref, err = utils.TransactionReference(); err != nil {
			return nil, &Error{Kind: KindInternal, Message: "internal error", Err: err}
		}
	}

	result := &CheckOutResult{GuestID: in.GuestID}
	err := s.run(ctx, "stay.checkout", scope, func(tx repository.Tx) error {
		guest, err := tx.GetGuest(scope.TenantID, in.GuestID, true)
		if err != nil {
			return fromRepo(err, "guest")
		}
		if !guest.InHouse() {
			return invalidState("guest is not checked in")
		}
		room, err := tx.GetRoom(scope.TenantID, guest.RoomID, true)
		if err != nil {
			return fromRepo(err, "room")
		}
		items, err := tx.ListTabItems(scope.TenantID, guest.ID, true, true)
		if err != nil {
			return fromRepo(err, "tab item")
		}
		balance := models.SumUnpaid(items)
		if balance.IsPositive() && payment.LessThan(balance) {
			return paymentRequired(balance)
		}

		now := s.now()
		guest.IsCheckedOut = true
		guest.CheckedOutAt = &now
		if err := tx.SaveGuest(guest); err != nil {
			return fromRepo(err, "guest")
		}

		if err := room.TransitionRoom(models.RoomDirty, models.TriggerCheckOut); err != nil {
			return conflict("%v", err)
		}
		if err := tx.SaveRoom(room); err != nil {
			return fromRepo(err, "room")
		}

		if payment.IsPositive() {
			txn := &models.Transaction{
				OrganizationID: scope.TenantID,
				Type:           models.TransactionPayment,
				Method:         in.PaymentMethod,
				Amount:         payment,
				ReferenceID:    ref,
				ReservationID:  guest.ReservationID,
				GuestID:        strPtr(guest.ID),
				Description:    "Check-out payment",
				CreatedAt:      now,
			}
			if err := tx.AppendTransaction(txn); err != nil {
				return fromRepo(err, "transaction")
			}
			result.Transaction = strPtr(txn.ID)
		}

		ids := make([]string, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ID)
		}
		if err := tx.MarkTabItemsPaid(scope.TenantID, ids, now); err != nil {
			return fromRepo(err, "tab item")
		}

		result.RoomID = room.ID
		result.SettledTotal = balance
		result.ItemsSettled = len(ids)
		return s.audit(tx, scope, "stay.checked_out", "guest", guest.ID, map[string]interface{}{
			"roomId":            room.ID,
			"settledTotal":      balance,
			"additionalPayment": payment,
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("guest checked out",
		zap.String("tenant_id", scope.TenantID),
		zap.String("guest_id", result.GuestID),
		zap.String("room_id", result.RoomID),
		zap.String("settled", result.SettledTotal.String()),
	)
	s.publish(ctx,
		events.New(events.GuestCheckedOut, scope.TenantID, map[string]interface{}{
			"guestId": result.GuestID,
			"roomId":  result.RoomID,
		}),
		events.New(events.RoomNeedsCleaning, scope.TenantID, map[string]interface{}{
			"roomId": result.RoomID,
		}),
	)
	return result, nil
}
