package usecase

import (
	"context"

	"doctor-admin-dashboard/internal/converter"
	"doctor-admin-dashboard/internal/delivery/dto"
	"doctor-admin-dashboard/internal/domain/entity"
	"doctor-admin-dashboard/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuditLogUsecase interface {
	GetDoctorAuditLogs(ctx context.Context, doctorID uuid.UUID) (*dto.AuditLogListResponse, error)
}

type auditLogUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	auditLogRepo      repository.AuditLogRepository
	doctorProfileRepo repository.DoctorProfileRepository
}

func NewAuditLogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		db:                db,
		log:               log,
		auditLogRepo:      auditLogRepo,
		doctorProfileRepo: doctorProfileRepo,
	}
}

func (u *auditLogUsecase) GetDoctorAuditLogs(ctx context.Context, doctorID uuid.UUID) (*dto.AuditLogListResponse, error) {
	db := u.db.WithContext(ctx)

	profile, err := u.doctorProfileRepo.FindByUserID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	logs, err := u.auditLogRepo.FindByEntity(db, entity.AuditEntityDoctor, doctorID.String())
	if err != nil {
		u.log.Warnf("Failed to find doctor audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: len(logs),
	}, nil
}
