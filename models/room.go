package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultMaxOccupancy applies when a room is created without one.
const DefaultMaxOccupancy = 2

// DefaultTaxRate is a percentage.
var DefaultTaxRate = decimal.RequireFromString("7.5")

type Room struct {
	Base
	OrganizationID string          `gorm:"type:char(36);index:idx_room_org_number;uniqueIndex:uq_room_org_live_number,priority:1;not null" json:"organizationId"`
	RoomNumber     string          `gorm:"type:varchar(50);index:idx_room_org_number;not null" json:"roomNumber"`
	// LiveNumber is maintained by MySQL: the room number while the row is
	// live, NULL once soft-deleted, so deleted rooms free their number.
	LiveNumber     *string         `gorm:"->;type:varchar(50) GENERATED ALWAYS AS (IF(deleted_at IS NULL, room_number, NULL)) STORED;uniqueIndex:uq_room_org_live_number,priority:2" json:"-"`
	Floor          int             `gorm:"not null;default:1" json:"floor"`
	RoomType       RoomType        `gorm:"type:varchar(20);not null" json:"roomType"`
	BasePrice      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"basePrice"`
	TaxRate        decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"taxRate"`
	MaxOccupancy   int             `gorm:"not null;default:2" json:"maxOccupancy"`
	Status         RoomStatus      `gorm:"type:varchar(20);not null;default:available;index" json:"status"`
	Notes          string          `gorm:"type:text" json:"notes,omitempty"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}
