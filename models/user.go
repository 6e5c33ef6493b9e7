package models

import (
	"gorm.io/gorm"
)

type User struct {
	Base
	OrganizationID     string         `gorm:"type:char(36);index;not null" json:"organizationId"`
	Email              string         `gorm:"uniqueIndex;size:150;not null" json:"email"`
	PasswordHash       string         `gorm:"size:255;not null" json:"-"` // bcrypt, never returned
	FullName           string         `gorm:"size:255" json:"fullName"`
	Role               UserRole       `gorm:"type:varchar(20);not null" json:"role"`
	IsActive           bool           `gorm:"not null;default:true" json:"isActive"`
	MustChangePassword bool           `gorm:"not null;default:false" json:"mustChangePassword"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}
