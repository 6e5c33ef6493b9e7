package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is an immutable money movement. Rows are only ever inserted.
type Transaction struct {
	ID             string          `gorm:"type:char(36);primaryKey" json:"id"`
	OrganizationID string          `gorm:"type:char(36);index;not null" json:"organizationId"`
	Type           TransactionType `gorm:"type:varchar(20);not null" json:"type"`
	Method         PaymentMethod   `gorm:"type:varchar(20);not null" json:"method"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	ReferenceID    string          `gorm:"size:32;uniqueIndex;not null" json:"referenceId"`
	ReservationID  *string         `gorm:"type:char(36);index" json:"reservationId,omitempty"`
	GuestID        *string         `gorm:"type:char(36);index" json:"guestId,omitempty"`
	Description    string          `gorm:"size:255" json:"description"`
	CreatedAt      time.Time       `gorm:"index" json:"createdAt"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	t.EnsureID()
	return nil
}

func (t *Transaction) EnsureID() {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
}
