package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GuestTabItem is a charge deferred to the guest's bill. IsPaid flips to true once.
type GuestTabItem struct {
	ID             string          `gorm:"type:char(36);primaryKey" json:"id"`
	OrganizationID string          `gorm:"type:char(36);index:idx_tab_org_guest;not null" json:"organizationId"`
	GuestID        string          `gorm:"type:char(36);index:idx_tab_org_guest;not null" json:"guestId"`
	ServiceID      string          `gorm:"type:char(36);not null" json:"serviceId"`
	OrderID        *string         `gorm:"type:char(36);index" json:"orderId,omitempty"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	IsPaid         bool            `gorm:"not null;default:false" json:"isPaid"`
	PaidAt         *time.Time      `json:"paidAt,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

func (GuestTabItem) TableName() string { return "guest_tab_items" }

func (i *GuestTabItem) BeforeCreate(tx *gorm.DB) error {
	i.EnsureID()
	return nil
}

func (i *GuestTabItem) EnsureID() {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
}

// SumUnpaid totals the items that are still open.
func SumUnpaid(items []GuestTabItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		if !it.IsPaid {
			total = total.Add(it.Amount)
		}
	}
	return total
}
