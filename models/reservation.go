package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reservation is a booking intent for one room over a date range. Its price is
// frozen when it is created.
type Reservation struct {
	Base
	OrganizationID     string            `gorm:"type:char(36);index;not null" json:"organizationId"`
	GuestName          string            `gorm:"size:255;not null" json:"guestName"`
	GuestPhone         string            `gorm:"size:50;not null" json:"guestPhone"`
	GuestEmail         *string           `gorm:"size:150" json:"guestEmail,omitempty"`
	RoomID             string            `gorm:"type:char(36);index;not null" json:"roomId"`
	CheckInDate        time.Time         `gorm:"not null" json:"checkInDate"`
	CheckOutDate       time.Time         `gorm:"not null" json:"checkOutDate"`
	Nights             int               `gorm:"not null" json:"nights"`
	Adults             int               `gorm:"not null;default:1" json:"adults"`
	Children           int               `gorm:"not null;default:0" json:"children"`
	TotalAmount        decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"totalAmount"`
	AmountPaid         decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"amountPaid"`
	OutstandingBalance decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"outstandingBalance"`
	Status             ReservationStatus `gorm:"type:varchar(20);not null;default:pending;index" json:"status"`
	Source             ReservationSource `gorm:"type:varchar(20);not null;default:walk_in" json:"source"`
	SpecialRequests    string            `gorm:"type:text" json:"specialRequests,omitempty"`
	Notes              string            `gorm:"type:text" json:"notes,omitempty"`
}

// NightsBetween returns ceil((checkOut - checkIn) / 24h).
func NightsBetween(checkIn, checkOut time.Time) int {
	const day = 24 * time.Hour
	d := checkOut.Sub(checkIn)
	n := int(d / day)
	if d%day > 0 {
		n++
	}
	return n
}

// ApplyPayment adds amount to AmountPaid and keeps OutstandingBalance in step.
func (r *Reservation) ApplyPayment(amount decimal.Decimal) {
	r.AmountPaid = r.AmountPaid.Add(amount)
	r.OutstandingBalance = r.TotalAmount.Sub(r.AmountPaid)
}
