package models

import (
	"time"
)

// Guest is an in-house occupant, created only by check-in.
type Guest struct {
	Base
	OrganizationID string  `gorm:"type:char(36);index;not null" json:"organizationId"`
	ReservationID  *string `gorm:"type:char(36);index" json:"reservationId,omitempty"`
	RoomID         string  `gorm:"type:char(36);index;not null" json:"roomId"`

	Name  string  `gorm:"size:255;not null" json:"name"`
	Phone string  `gorm:"size:50;not null" json:"phone"`
	Email *string `gorm:"size:150" json:"email,omitempty"`

	// planned stay, copied from the reservation
	CheckInDate  time.Time `json:"checkInDate"`
	CheckOutDate time.Time `json:"checkOutDate"`
	NumGuests    int       `gorm:"not null;default:1" json:"numGuests"`

	IsCheckedIn  bool       `gorm:"not null;default:false" json:"isCheckedIn"`
	IsCheckedOut bool       `gorm:"not null;default:false;index" json:"isCheckedOut"`
	CheckedInAt  *time.Time `json:"checkedInAt,omitempty"`
	CheckedOutAt *time.Time `json:"checkedOutAt,omitempty"`
}

// InHouse reports whether the guest currently occupies its room.
func (g *Guest) InHouse() bool {
	return g.IsCheckedIn && !g.IsCheckedOut
}
