// Package memstore is an in-process repository.Store. Units of work are
// serialized by a single mutex and commit by swapping in a working copy, so a
// failed unit of work leaves no trace. It backs STORE_DRIVER=memory and the
// service tests.
package memstore

import (
	"context"
	"sync"
	"time"

	"hotel-pms/models"
	"hotel-pms/repository"
)

type Store struct {
	mu    sync.Mutex
	state *state
	now   func() time.Time
}

type state struct {
	rooms        table[models.Room]
	reservations table[models.Reservation]
	guests       table[models.Guest]
	transactions table[models.Transaction]
	tabItems     table[models.GuestTabItem]
	services     table[models.Service]
	orders       table[models.Order]
	orgs         table[models.Organization]
	users        table[models.User]
	audit        table[models.AuditLog]
}

func New() *Store {
	return &Store{
		now: func() time.Time { return time.Now().UTC() },
		state: &state{
			rooms:        newTable[models.Room](),
			reservations: newTable[models.Reservation](),
			guests:       newTable[models.Guest](),
			transactions: newTable[models.Transaction](),
			tabItems:     newTable[models.GuestTabItem](),
			services:     newTable[models.Service](),
			orders:       newTable[models.Order](),
			orgs:         newTable[models.Organization](),
			users:        newTable[models.User](),
			audit:        newTable[models.AuditLog](),
		},
	}
}

func (s *state) clone() *state {
	return &state{
		rooms:        s.rooms.clone(),
		reservations: s.reservations.clone(),
		guests:       s.guests.clone(),
		transactions: s.transactions.clone(),
		tabItems:     s.tabItems.clone(),
		services:     s.services.clone(),
		orders:       s.orders.clone(),
		orgs:         s.orgs.clone(),
		users:        s.users.clone(),
		audit:        s.audit.clone(),
	}
}

func (s *Store) WithTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.state.clone()
	if err := fn(&tx{st: work, now: s.now}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.state = work
	return nil
}

var _ repository.Store = (*Store)(nil)
