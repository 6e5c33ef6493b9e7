package models

// Organization is the tenant. Every other record hangs off one.
type Organization struct {
	Base
	Name           string `gorm:"size:255;not null" json:"name"`
	Address        string `gorm:"type:text" json:"address"`
	Phone          string `gorm:"size:50" json:"phone"`
	Email          string `gorm:"size:150" json:"email"`
	CurrencyCode   string `gorm:"size:3;not null;default:NGN" json:"currencyCode"`
	CurrencySymbol string `gorm:"size:8;not null;default:₦" json:"currencySymbol"`
}
