package repository

import (
	"hotel-pms/models"
)

func (t *gormTx) CreateReservation(r *models.Reservation) error {
	return translate(t.db.Create(r).Error)
}

func (t *gormTx) GetReservation(tenantID, id string, lock bool) (*models.Reservation, error) {
	var r models.Reservation
	if err := t.scoped(tenantID, lock).Where("id = ?", id).First(&r).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (t *gormTx) ListReservations(tenantID string, f ReservationFilter) ([]models.Reservation, error) {
	q := t.scoped(tenantID, false)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.RoomID != "" {
		q = q.Where("room_id = ?", f.RoomID)
	}
	var out []models.Reservation
	err := q.Order("check_in_date DESC").Find(&out).Error
	return out, translate(err)
}

// SaveReservation writes the mutable columns. Price and dates are frozen at creation.
func (t *gormTx) SaveReservation(r *models.Reservation) error {
	err := t.db.Model(&models.Reservation{}).
		Where("organization_id = ? AND id = ?", r.OrganizationID, r.ID).
		Updates(map[string]interface{}{
			"status":              r.Status,
			"amount_paid":         r.AmountPaid,
			"outstanding_balance": r.OutstandingBalance,
			"special_requests":    r.SpecialRequests,
			"notes":               r.Notes,
		}).Error
	return translate(err)
}
