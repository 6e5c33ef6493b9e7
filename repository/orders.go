package repository

import (
	"hotel-pms/models"
)

func (t *gormTx) CreateOrder(o *models.Order) error {
	return translate(t.db.Create(o).Error)
}

func (t *gormTx) GetOrder(tenantID, id string, lock bool) (*models.Order, error) {
	var o models.Order
	if err := t.scoped(tenantID, lock).Where("id = ?", id).First(&o).Error; err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (t *gormTx) ListOrders(tenantID string, f OrderFilter) ([]models.Order, error) {
	q := t.scoped(tenantID, false)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.GuestID != "" {
		q = q.Where("guest_id = ?", f.GuestID)
	}
	var out []models.Order
	err := q.Order("order_date DESC").Find(&out).Error
	return out, translate(err)
}

func (t *gormTx) SaveOrder(o *models.Order) error {
	err := t.db.Model(&models.Order{}).
		Where("organization_id = ? AND id = ?", o.OrganizationID, o.ID).
		Updates(map[string]interface{}{
			"status": o.Status,
			"notes":  o.Notes,
		}).Error
	return translate(err)
}
