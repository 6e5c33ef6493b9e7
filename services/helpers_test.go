package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hotel-pms/events"
	"hotel-pms/models"
	"hotel-pms/repository"
	"hotel-pms/repository/memstore"
)

// recorder keeps every published event.
type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Publish(_ context.Context, ev events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) types() []events.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.Type, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}

var fixedNow = time.Date(2025, 1, 1, 14, 0, 0, 0, time.UTC)

type fixture struct {
	store        *memstore.Store
	pub          *recorder
	scope        Scope
	rooms        *RoomService
	reservations *ReservationService
	stays        *StayService
	ledger       *LedgerService
	orders       *OrderService
	catalog      *CatalogService
	guests       *GuestService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	pub := &recorder{}
	log := zap.NewNop()
	f := &fixture{
		store:        store,
		pub:          pub,
		scope:        Scope{TenantID: "org-1", UserID: "user-1"},
		rooms:        NewRoomService(store, pub, log),
		reservations: NewReservationService(store, pub, log),
		stays:        NewStayService(store, pub, log),
		ledger:       NewLedgerService(store, pub, log),
		orders:       NewOrderService(store, pub, log),
		catalog:      NewCatalogService(store, pub, log),
		guests:       NewGuestService(store, pub, log),
	}
	clock := func() time.Time { return fixedNow }
	for _, c := range []*core{&f.rooms.core, &f.reservations.core, &f.stays.core, &f.ledger.core, &f.orders.core, &f.catalog.core} {
		c.now = clock
	}
	return f
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func (f *fixture) room(t *testing.T, number string, price string) *models.Room {
	t.Helper()
	rt := models.RoomTypeDouble
	p := dec(price)
	room, err := f.rooms.CreateRoom(context.Background(), f.scope, RoomInput{
		RoomNumber: &number,
		RoomType:   &rt,
		BasePrice:  &p,
	})
	require.NoError(t, err)
	return room
}

func (f *fixture) reservation(t *testing.T, roomID, in, out string) *models.Reservation {
	t.Helper()
	res, err := f.reservations.CreateReservation(context.Background(), f.scope, CreateReservationInput{
		GuestName:    "Ada Obi",
		GuestPhone:   "+2348000000000",
		RoomID:       roomID,
		CheckInDate:  in,
		CheckOutDate: out,
	})
	require.NoError(t, err)
	return res
}

func (f *fixture) checkIn(t *testing.T, resID, paid string) *models.Guest {
	t.Helper()
	g, err := f.stays.CheckIn(context.Background(), f.scope, CheckInInput{
		ReservationID: resID,
		GuestName:     "Ada Obi",
		GuestPhone:    "+2348000000000",
		PaymentMethod: models.PaymentCash,
		AmountPaid:    dec(paid),
	})
	require.NoError(t, err)
	return g
}

func (f *fixture) service(t *testing.T, name, price string) *models.Service {
	t.Helper()
	svc, err := f.catalog.CreateService(context.Background(), f.scope, CreateServiceInput{
		Name:      name,
		Type:      models.ServiceMeal,
		BasePrice: dec(price),
	})
	require.NoError(t, err)
	return svc
}

// snapshot reads the records a stay operation touches, for before/after comparisons.
type snapshot struct {
	room         models.Room
	reservation  models.Reservation
	guests       []models.Guest
	transactions []models.Transaction
	tab          []models.GuestTabItem
}

func (f *fixture) snapshot(t *testing.T, roomID, resID, guestID string) snapshot {
	t.Helper()
	var s snapshot
	err := f.store.WithTx(context.Background(), func(tx repository.Tx) error {
		room, err := tx.GetRoom(f.scope.TenantID, roomID, false)
		if err != nil {
			return err
		}
		s.room = *room
		if resID != "" {
			res, err := tx.GetReservation(f.scope.TenantID, resID, false)
			if err != nil {
				return err
			}
			s.reservation = *res
		}
		if s.guests, err = tx.ListGuests(f.scope.TenantID, repository.GuestFilter{}); err != nil {
			return err
		}
		if s.transactions, err = tx.ListTransactions(f.scope.TenantID, repository.TransactionFilter{}); err != nil {
			return err
		}
		if guestID != "" {
			s.tab, err = tx.ListTabItems(f.scope.TenantID, guestID, false, false)
		}
		return err
	})
	require.NoError(t, err)
	return s
}

func requireKind(t *testing.T, err error, kind Kind) *Error {
	t.Helper()
	require.Error(t, err)
	var se *Error
	require.ErrorAs(t, err, &se)
	require.Equal(t, kind, se.Kind, se.Error())
	return se
}
