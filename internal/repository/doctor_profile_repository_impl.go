package repository

import (
	"errors"

	"doctor-admin-dashboard/internal/domain/entity"
	domainRepo "doctor-admin-dashboard/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorProfileRepository struct{}

func NewDoctorProfileRepository() domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{}
}

func (r *doctorProfileRepository) FindAll(db *gorm.DB) ([]entity.DoctorProfile, error) {
	var profiles []entity.DoctorProfile
	err := db.Preload("User").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *doctorProfileRepository) FindByUserID(db *gorm.DB, doctorID uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.Preload("User").Where("user_id = ?", doctorID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// UpdateActiveStatus sets is_active on the doctor's user row and returns the affected row count
func (r *doctorProfileRepository) UpdateActiveStatus(db *gorm.DB, doctorID uuid.UUID, isActive bool) (int64, error) {
	result := db.Model(&entity.User{}).
		Where("id = ? AND role_id = ?", doctorID, entity.RoleIDDoctor).
		Update("is_active", isActive)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
