package repository

import (
	"hotel-pms/models"
)

func (t *gormTx) CreateRoom(room *models.Room) error {
	return translate(t.db.Create(room).Error)
}

func (t *gormTx) GetRoom(tenantID, id string, lock bool) (*models.Room, error) {
	var room models.Room
	if err := t.scoped(tenantID, lock).Where("id = ?", id).First(&room).Error; err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

func (t *gormTx) FindRoomByNumber(tenantID, number string) (*models.Room, error) {
	var room models.Room
	if err := t.scoped(tenantID, false).Where("room_number = ?", number).First(&room).Error; err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

func (t *gormTx) ListRooms(tenantID string, f RoomFilter) ([]models.Room, error) {
	q := t.scoped(tenantID, false)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var rooms []models.Room
	err := q.Order("room_number ASC").Find(&rooms).Error
	return rooms, translate(err)
}

func (t *gormTx) SaveRoom(room *models.Room) error {
	err := t.db.Model(&models.Room{}).
		Where("organization_id = ? AND id = ?", room.OrganizationID, room.ID).
		Updates(map[string]interface{}{
			"room_number":   room.RoomNumber,
			"floor":         room.Floor,
			"room_type":     room.RoomType,
			"base_price":    room.BasePrice,
			"tax_rate":      room.TaxRate,
			"max_occupancy": room.MaxOccupancy,
			"status":        room.Status,
			"notes":         room.Notes,
		}).Error
	return translate(err)
}

// DeleteRoom soft-deletes so historical reservations keep a valid reference.
func (t *gormTx) DeleteRoom(tenantID, id string) error {
	res := t.db.Where("organization_id = ? AND id = ?", tenantID, id).Delete(&models.Room{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
