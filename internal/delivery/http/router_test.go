package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"doctor-admin-dashboard/config"
	"doctor-admin-dashboard/internal/dashboard"
	"doctor-admin-dashboard/internal/delivery/dto"
	"doctor-admin-dashboard/internal/delivery/http/handler"
	"doctor-admin-dashboard/internal/delivery/http/middleware"
	"doctor-admin-dashboard/pkg/jwt"
	"doctor-admin-dashboard/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type stubDoctorAdminUsecase struct{}

func (stubDoctorAdminUsecase) ListDoctors(ctx context.Context) ([]dto.DoctorAdminResponse, error) {
	return []dto.DoctorAdminResponse{}, nil
}

func (stubDoctorAdminUsecase) UpdateDoctorStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorStatusRequest) (*dto.DoctorAdminResponse, error) {
	return &dto.DoctorAdminResponse{DoctorID: id, IsActive: *req.IsActive}, nil
}

type stubAuditLogUsecase struct{}

func (stubAuditLogUsecase) GetDoctorAuditLogs(ctx context.Context, id uuid.UUID) (*dto.AuditLogListResponse, error) {
	return &dto.AuditLogListResponse{}, nil
}

type stubClient struct{}

func (stubClient) ListDoctors(ctx context.Context) ([]dashboard.Doctor, error) { return nil, nil }

func (stubClient) SetDoctorStatus(ctx context.Context, id uuid.UUID, isActive bool) error {
	return nil
}

type stubBoard struct{}

func (stubBoard) Post(ctx context.Context, key string, n dashboard.Notice, ttl time.Duration) error {
	return nil
}

func (stubBoard) Current(ctx context.Context, key string) (*dashboard.Notice, error) { return nil, nil }

type stubSessions struct{ log *logrus.Logger }

func (s stubSessions) Dashboard(sessionID string) *dashboard.Dashboard {
	return dashboard.New(stubClient{}, stubBoard{}, s.log, dashboard.Options{NoticeKey: sessionID})
}

func newTestRouter() http.Handler {
	log := logrus.New()
	log.SetOutput(io.Discard)
	jwtService := jwt.NewJWTService(config.SessionConfig{Secret: "test", Expiry: time.Hour})

	r := NewRouter(
		handler.NewDoctorAdminHandler(stubDoctorAdminUsecase{}, validator.NewValidator()),
		handler.NewAuditLogHandler(stubAuditLogUsecase{}),
		handler.NewDashboardHandler(stubSessions{log: log}, log),
		middleware.NewSessionMiddleware(jwtService, log, false),
		middleware.NewCORSMiddleware("*"),
		middleware.NewLoggingMiddleware(log),
	)
	return r.Setup()
}

func TestRouter_Routes(t *testing.T) {
	id := uuid.NewString()
	tests := []struct {
		method string
		path   string
		code   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/api/doctor/admin", http.StatusOK},
		{http.MethodOptions, "/api/doctor/admin/" + id + "/status", http.StatusOK},
		{http.MethodGet, "/api/doctor/admin/" + id + "/audit-logs", http.StatusOK},
		{http.MethodGet, "/admin/doctors", http.StatusOK},
		{http.MethodGet, "/admin/doctors/view", http.StatusOK},
		{http.MethodPost, "/admin/doctors/next", http.StatusSeeOther},
		{http.MethodDelete, "/api/doctor/admin", http.StatusMethodNotAllowed},
		{http.MethodPost, "/api/doctor/admin/" + id + "/status", http.StatusMethodNotAllowed},
	}

	h := newTestRouter()
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}
		})
	}
}

func TestRouter_DashboardIssuesSessionCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/doctors", nil))

	found := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected session cookie on dashboard response")
	}
}
