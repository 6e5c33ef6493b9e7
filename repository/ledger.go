package repository

import (
	"fmt"
	"time"

	"hotel-pms/models"
)

func (t *gormTx) AppendTransaction(txn *models.Transaction) error {
	return translate(t.db.Create(txn).Error)
}

func (t *gormTx) ListTransactions(tenantID string, f TransactionFilter) ([]models.Transaction, error) {
	q := t.scoped(tenantID, false)
	if f.GuestID != "" {
		q = q.Where("guest_id = ?", f.GuestID)
	}
	if f.ReservationID != "" {
		q = q.Where("reservation_id = ?", f.ReservationID)
	}
	var out []models.Transaction
	err := q.Order("created_at ASC").Find(&out).Error
	return out, translate(err)
}

func (t *gormTx) CreateTabItem(item *models.GuestTabItem) error {
	return translate(t.db.Create(item).Error)
}

func (t *gormTx) ListTabItems(tenantID, guestID string, unpaidOnly, lock bool) ([]models.GuestTabItem, error) {
	q := t.scoped(tenantID, lock).Where("guest_id = ?", guestID)
	if unpaidOnly {
		q = q.Where("is_paid = ?", false)
	}
	var out []models.GuestTabItem
	err := q.Order("created_at ASC").Find(&out).Error
	return out, translate(err)
}

// MarkTabItemsPaid flips every listed unpaid item. Fewer affected rows than ids
// means some item was already paid and the unit of work must abort.
func (t *gormTx) MarkTabItemsPaid(tenantID string, ids []string, paidAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	res := t.db.Model(&models.GuestTabItem{}).
		Where("organization_id = ? AND id IN ? AND is_paid = ?", tenantID, ids, false).
		Updates(map[string]interface{}{"is_paid": true, "paid_at": paidAt})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected != int64(len(ids)) {
		return fmt.Errorf("%w: %d of %d tab items were still unpaid", ErrLockConflict, res.RowsAffected, len(ids))
	}
	return nil
}
