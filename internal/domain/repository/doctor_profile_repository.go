package repository

import (
	"doctor-admin-dashboard/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorProfileRepository interface {
	FindAll(db *gorm.DB) ([]entity.DoctorProfile, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error)
	UpdateActiveStatus(db *gorm.DB, userID uuid.UUID, isActive bool) (int64, error)
}
