package repository

import (
	"hotel-pms/models"
)

func (t *gormTx) AppendAudit(entry *models.AuditLog) error {
	return translate(t.db.Create(entry).Error)
}

func (t *gormTx) ListAudit(tenantID string, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var out []models.AuditLog
	err := t.scoped(tenantID, false).Order("created_at DESC").Limit(limit).Find(&out).Error
	return out, translate(err)
}
