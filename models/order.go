package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderDelivered OrderStatus = "delivered"
	OrderCanceled  OrderStatus = "canceled"
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	return parseEnum("order status", s, OrderPending, OrderConfirmed, OrderDelivered, OrderCanceled)
}

func (s *OrderStatus) UnmarshalText(b []byte) error {
	v, err := ParseOrderStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderConfirmed, OrderCanceled},
	OrderConfirmed: {OrderDelivered, OrderCanceled},
}

type Order struct {
	Base
	OrganizationID string             `gorm:"type:char(36);index;not null" json:"organizationId"`
	ServiceID      string             `gorm:"type:char(36);index;not null" json:"serviceId"`
	RoomID         *string            `gorm:"type:char(36);index" json:"roomId,omitempty"`
	GuestID        *string            `gorm:"type:char(36);index" json:"guestId,omitempty"`
	Status         OrderStatus        `gorm:"type:varchar(20);not null;default:pending;index" json:"status"`
	Amount         decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentMethod  OrderPaymentMethod `gorm:"type:varchar(20);not null" json:"paymentMethod"`
	OrderDate      time.Time          `gorm:"not null" json:"orderDate"`
	Notes          string             `gorm:"type:text" json:"notes,omitempty"`
}

func (o *Order) TransitionTo(to OrderStatus) error {
	for _, next := range orderTransitions[o.Status] {
		if next == to {
			o.Status = to
			return nil
		}
	}
	return fmt.Errorf("order cannot move from %s to %s", o.Status, to)
}
