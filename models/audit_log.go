package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditLog records who changed what. Written in the same unit of work as the change.
type AuditLog struct {
	ID             string         `gorm:"type:char(36);primaryKey" json:"id"`
	OrganizationID string         `gorm:"type:char(36);index;not null" json:"organizationId"`
	UserID         *string        `gorm:"type:char(36);index" json:"userId,omitempty"`
	Action         string         `gorm:"size:64;index;not null" json:"action"`
	Entity         string         `gorm:"size:64;index;not null" json:"entity"`
	EntityID       string         `gorm:"type:char(36);index;not null" json:"entityId"`
	Changes        datatypes.JSON `json:"changes,omitempty"`
	CreatedAt      time.Time      `gorm:"index" json:"createdAt"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	a.EnsureID()
	return nil
}

func (a *AuditLog) EnsureID() {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
}
