package repository

import (
	"doctor-admin-dashboard/internal/domain/entity"
	domainRepo "doctor-admin-dashboard/internal/domain/repository"

	"gorm.io/gorm"
)

type auditLogRepository struct{}

func NewAuditLogRepository() domainRepo.AuditLogRepository {
	return &auditLogRepository{}
}

func (r *auditLogRepository) Create(db *gorm.DB, log *entity.AuditLog) error {
	return db.Create(log).Error
}

// FindByEntity returns the entries recorded for one entity, newest first
func (r *auditLogRepository) FindByEntity(db *gorm.DB, entityName string, entityID string) ([]entity.AuditLog, error) {
	var logs []entity.AuditLog
	err := db.
		Where("metadata->>'entity' = ? AND metadata->>'entity_id' = ?", entityName, entityID).
		Order("created_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
