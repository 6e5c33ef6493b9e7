package repository

import (
	"hotel-pms/models"
)

func (t *gormTx) CreateGuest(g *models.Guest) error {
	return translate(t.db.Create(g).Error)
}

func (t *gormTx) GetGuest(tenantID, id string, lock bool) (*models.Guest, error) {
	var g models.Guest
	if err := t.scoped(tenantID, lock).Where("id = ?", id).First(&g).Error; err != nil {
		return nil, translate(err)
	}
	return &g, nil
}

func (t *gormTx) ListGuests(tenantID string, f GuestFilter) ([]models.Guest, error) {
	q := t.scoped(tenantID, false)
	if f.InHouseOnly {
		q = q.Where("is_checked_in = ? AND is_checked_out = ?", true, false)
	}
	if f.RoomID != "" {
		q = q.Where("room_id = ?", f.RoomID)
	}
	var out []models.Guest
	err := q.Order("created_at DESC").Find(&out).Error
	return out, translate(err)
}

func (t *gormTx) SaveGuest(g *models.Guest) error {
	err := t.db.Model(&models.Guest{}).
		Where("organization_id = ? AND id = ?", g.OrganizationID, g.ID).
		Updates(map[string]interface{}{
			"is_checked_in":  g.IsCheckedIn,
			"is_checked_out": g.IsCheckedOut,
			"checked_in_at":  g.CheckedInAt,
			"checked_out_at": g.CheckedOutAt,
			"num_guests":     g.NumGuests,
		}).Error
	return translate(err)
}
