package usecase

import (
	"context"
	"io"
	"testing"

	"doctor-admin-dashboard/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeDoctorRepo struct {
	findAllFn      func(db *gorm.DB) ([]entity.DoctorProfile, error)
	findByUserIDFn func(db *gorm.DB, id uuid.UUID) (*entity.DoctorProfile, error)
	updateStatusFn func(db *gorm.DB, id uuid.UUID, isActive bool) (int64, error)
}

func (f *fakeDoctorRepo) FindAll(db *gorm.DB) ([]entity.DoctorProfile, error) {
	return f.findAllFn(db)
}

func (f *fakeDoctorRepo) FindByUserID(db *gorm.DB, id uuid.UUID) (*entity.DoctorProfile, error) {
	return f.findByUserIDFn(db, id)
}

func (f *fakeDoctorRepo) UpdateActiveStatus(db *gorm.DB, id uuid.UUID, isActive bool) (int64, error) {
	return f.updateStatusFn(db, id, isActive)
}

type auditCall struct {
	action   string
	entityID string
	oldValue interface{}
	newValue interface{}
}

type fakeAuditService struct {
	calls []auditCall
	err   error
}

func (f *fakeAuditService) LogUpdate(_ context.Context, _ *gorm.DB, action string, _ string, entityID string, oldValue, newValue interface{}) error {
	f.calls = append(f.calls, auditCall{action: action, entityID: entityID, oldValue: oldValue, newValue: newValue})
	return f.err
}

func usecaseTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("create sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open gorm: %v", err)
	}
	return db, mock
}

func verifyExpectations(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sql expectations: %v", err)
	}
}

func doctorProfile(id uuid.UUID, name string, active bool) *entity.DoctorProfile {
	return &entity.DoctorProfile{
		UserID: id,
		User: entity.User{
			ID:       id,
			RoleID:   entity.RoleIDDoctor,
			FullName: name,
			Email:    name + "@clinic.test",
			IsActive: &active,
		},
	}
}

func boolPtr(v bool) *bool {
	return &v
}
