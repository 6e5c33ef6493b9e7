// Package events carries domain events to other systems after a unit of work
// has committed. Delivery is best effort.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	ReservationCreated Type = "reservation.created"
	GuestCheckedIn     Type = "guest.checked_in"
	GuestCheckedOut    Type = "guest.checked_out"
	RoomNeedsCleaning  Type = "room.needs_cleaning"
	OrderPlaced        Type = "order.placed"
)

type Event struct {
	ID         string                 `json:"id"`
	Type       Type                   `json:"type"`
	TenantID   string                 `json:"tenantId"`
	OccurredAt time.Time              `json:"occurredAt"`
	Data       map[string]interface{} `json:"data,omitempty"`
}

func New(t Type, tenantID string, data map[string]interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       t,
		TenantID:   tenantID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
