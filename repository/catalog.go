package repository

import (
	"hotel-pms/models"
)

func (t *gormTx) CreateService(s *models.Service) error {
	return translate(t.db.Create(s).Error)
}

func (t *gormTx) GetService(tenantID, id string) (*models.Service, error) {
	var s models.Service
	if err := t.scoped(tenantID, false).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (t *gormTx) ListServices(tenantID string, activeOnly bool) ([]models.Service, error) {
	q := t.scoped(tenantID, false)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var out []models.Service
	err := q.Order("name ASC").Find(&out).Error
	return out, translate(err)
}

func (t *gormTx) SaveService(s *models.Service) error {
	err := t.db.Model(&models.Service{}).
		Where("organization_id = ? AND id = ?", s.OrganizationID, s.ID).
		Updates(map[string]interface{}{
			"name":        s.Name,
			"type":        s.Type,
			"base_price":  s.BasePrice,
			"tax_rate":    s.TaxRate,
			"is_active":   s.IsActive,
			"description": s.Description,
		}).Error
	return translate(err)
}
