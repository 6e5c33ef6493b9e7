package models

import "github.com/shopspring/decimal"

// Service is a catalog item that can be ordered (meal, laundry, ...).
type Service struct {
	Base
	OrganizationID string          `gorm:"type:char(36);index;not null" json:"organizationId"`
	Name           string          `gorm:"size:255;not null" json:"name"`
	Type           ServiceType     `gorm:"type:varchar(20);not null" json:"type"`
	BasePrice      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"basePrice"`
	TaxRate        decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"taxRate"`
	IsActive       bool            `gorm:"not null;default:true" json:"isActive"`
	Description    string          `gorm:"type:text" json:"description,omitempty"`
}
