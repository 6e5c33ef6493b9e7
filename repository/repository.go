// Package repository is the unit-of-work boundary of the service. Every read
// and write happens inside Store.WithTx and every method is scoped by an
// explicit tenant (organization) id.
package repository

import (
	"context"
	"errors"
	"time"

	"hotel-pms/models"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicate    = errors.New("duplicate record")
	ErrLockConflict = errors.New("concurrent update conflict")
)

// Store opens units of work. fn's changes are committed when it returns nil
// and discarded otherwise.
type Store interface {
	WithTx(ctx context.Context, fn func(tx Tx) error) error
}

type Tx interface {
	RoomRepository
	ReservationRepository
	GuestRepository
	LedgerRepository
	CatalogRepository
	OrderRepository
	AccountRepository
	AuditRepository
}

type RoomFilter struct {
	Status models.RoomStatus
}

type RoomRepository interface {
	CreateRoom(room *models.Room) error
	// GetRoom takes a row lock held until the unit of work ends when lock is set.
	GetRoom(tenantID, id string, lock bool) (*models.Room, error)
	FindRoomByNumber(tenantID, number string) (*models.Room, error)
	ListRooms(tenantID string, f RoomFilter) ([]models.Room, error)
	SaveRoom(room *models.Room) error
	DeleteRoom(tenantID, id string) error
}

type ReservationFilter struct {
	Status models.ReservationStatus
	RoomID string
}

type ReservationRepository interface {
	CreateReservation(r *models.Reservation) error
	GetReservation(tenantID, id string, lock bool) (*models.Reservation, error)
	ListReservations(tenantID string, f ReservationFilter) ([]models.Reservation, error)
	SaveReservation(r *models.Reservation) error
}

type GuestFilter struct {
	InHouseOnly bool
	RoomID      string
}

type GuestRepository interface {
	CreateGuest(g *models.Guest) error
	GetGuest(tenantID, id string, lock bool) (*models.Guest, error)
	ListGuests(tenantID string, f GuestFilter) ([]models.Guest, error)
	SaveGuest(g *models.Guest) error
}

type TransactionFilter struct {
	GuestID       string
	ReservationID string
}

// LedgerRepository is append-only for transactions. Tab items only ever move
// from unpaid to paid.
type LedgerRepository interface {
	AppendTransaction(t *models.Transaction) error
	ListTransactions(tenantID string, f TransactionFilter) ([]models.Transaction, error)
	CreateTabItem(item *models.GuestTabItem) error
	ListTabItems(tenantID, guestID string, unpaidOnly, lock bool) ([]models.GuestTabItem, error)
	MarkTabItemsPaid(tenantID string, ids []string, paidAt time.Time) error
}

type CatalogRepository interface {
	CreateService(s *models.Service) error
	GetService(tenantID, id string) (*models.Service, error)
	ListServices(tenantID string, activeOnly bool) ([]models.Service, error)
	SaveService(s *models.Service) error
}

type OrderFilter struct {
	Status  models.OrderStatus
	GuestID string
}

type OrderRepository interface {
	CreateOrder(o *models.Order) error
	GetOrder(tenantID, id string, lock bool) (*models.Order, error)
	ListOrders(tenantID string, f OrderFilter) ([]models.Order, error)
	SaveOrder(o *models.Order) error
}

type AccountRepository interface {
	CountOrganizations() (int64, error)
	CreateOrganization(org *models.Organization) error
	GetOrganization(id string) (*models.Organization, error)
	CreateUser(u *models.User) error
	FindUserByEmail(email string) (*models.User, error)
}

type AuditRepository interface {
	AppendAudit(entry *models.AuditLog) error
	ListAudit(tenantID string, limit int) ([]models.AuditLog, error)
}
