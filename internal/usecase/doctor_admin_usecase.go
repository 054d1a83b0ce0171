package usecase

import (
	"context"
	"errors"

	"doctor-admin-dashboard/internal/converter"
	"doctor-admin-dashboard/internal/delivery/dto"
	"doctor-admin-dashboard/internal/domain/entity"
	"doctor-admin-dashboard/internal/domain/repository"
	"doctor-admin-dashboard/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound    = errors.New("doctor not found")
	ErrSchemaNotMigrated = errors.New("database schema is not migrated")
)

const auditSavePoint = "doctor_status_audit"

type DoctorAdminUsecase interface {
	ListDoctors(ctx context.Context) ([]dto.DoctorAdminResponse, error)
	UpdateDoctorStatus(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorStatusRequest) (*dto.DoctorAdminResponse, error)
}

type doctorAdminUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	doctorProfileRepo repository.DoctorProfileRepository
	auditService      service.AuditService
}

func NewDoctorAdminUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorProfileRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
) DoctorAdminUsecase {
	return &doctorAdminUsecase{
		db:                db,
		log:               log,
		doctorProfileRepo: doctorProfileRepo,
		auditService:      auditService,
	}
}

func (u *doctorAdminUsecase) ListDoctors(ctx context.Context) ([]dto.DoctorAdminResponse, error) {
	profiles, err := u.doctorProfileRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all doctor profiles: %+v", err)
		if isUndefinedTableError(err) {
			return nil, ErrSchemaNotMigrated
		}
		return nil, err
	}

	return converter.DoctorProfilesToAdminResponses(profiles), nil
}

func (u *doctorAdminUsecase) UpdateDoctorStatus(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorStatusRequest) (*dto.DoctorAdminResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.doctorProfileRepo.FindByUserID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		u.log.Warnf("Failed to find doctor profile: %+v", "doctor not found")
		return nil, ErrDoctorNotFound
	}

	oldValue := profile.User.Active()
	newValue := *req.IsActive

	affectedRows, err := u.doctorProfileRepo.UpdateActiveStatus(tx, doctorID, newValue)
	if err != nil {
		u.log.Warnf("Failed to update doctor status: %+v", err)
		return nil, err
	}
	if affectedRows == 0 {
		u.log.Warnf("Failed to update doctor status: %+v", "doctor not found")
		return nil, ErrDoctorNotFound
	}

	action := entity.AuditActionDoctorDeactivate
	if newValue {
		action = entity.AuditActionDoctorActivate
	}
	// A failed insert aborts the whole Postgres transaction unless it is rolled back to a savepoint
	if err := tx.SavePoint(auditSavePoint).Error; err != nil {
		u.log.Warnf("Failed to create audit savepoint: %+v", err)
		return nil, err
	}
	if err := u.auditService.LogUpdate(ctx, tx, action, entity.AuditEntityDoctor, doctorID.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		if err := tx.RollbackTo(auditSavePoint).Error; err != nil {
			u.log.Warnf("Failed to roll back audit savepoint: %+v", err)
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	profile.User.IsActive = &newValue
	return converter.DoctorProfileToAdminResponse(profile), nil
}

// isUndefinedTableError checks if the error is a PostgreSQL undefined_table error
func isUndefinedTableError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 42P01 = undefined_table
		return pgErr.Code == "42P01"
	}
	return false
}
