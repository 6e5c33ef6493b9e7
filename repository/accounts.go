package repository

import (
	"strings"

	"hotel-pms/models"
)

func (t *gormTx) CountOrganizations() (int64, error) {
	var n int64
	err := t.db.Model(&models.Organization{}).Count(&n).Error
	return n, translate(err)
}

func (t *gormTx) CreateOrganization(org *models.Organization) error {
	return translate(t.db.Create(org).Error)
}

func (t *gormTx) GetOrganization(id string) (*models.Organization, error) {
	var org models.Organization
	if err := t.db.Where("id = ?", id).First(&org).Error; err != nil {
		return nil, translate(err)
	}
	return &org, nil
}

func (t *gormTx) CreateUser(u *models.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return translate(t.db.Create(u).Error)
}

// FindUserByEmail is not tenant scoped: login resolves the tenant from the user.
func (t *gormTx) FindUserByEmail(email string) (*models.User, error) {
	var u models.User
	err := t.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&u).Error
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}
