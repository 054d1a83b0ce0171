package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"doctor-admin-dashboard/internal/dashboard"
	"doctor-admin-dashboard/internal/delivery/dto"
	"doctor-admin-dashboard/internal/delivery/http/middleware"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

func handlerTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fakeDoctorAdminUsecase struct {
	listFn   func(ctx context.Context) ([]dto.DoctorAdminResponse, error)
	updateFn func(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorStatusRequest) (*dto.DoctorAdminResponse, error)
}

func (f *fakeDoctorAdminUsecase) ListDoctors(ctx context.Context) ([]dto.DoctorAdminResponse, error) {
	return f.listFn(ctx)
}

func (f *fakeDoctorAdminUsecase) UpdateDoctorStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorStatusRequest) (*dto.DoctorAdminResponse, error) {
	return f.updateFn(ctx, id, req)
}

type fakeAuditLogUsecase struct {
	getFn func(ctx context.Context, id uuid.UUID) (*dto.AuditLogListResponse, error)
}

func (f *fakeAuditLogUsecase) GetDoctorAuditLogs(ctx context.Context, id uuid.UUID) (*dto.AuditLogListResponse, error) {
	return f.getFn(ctx, id)
}

type fakeDoctorClient struct {
	mu        sync.Mutex
	doctors   []dashboard.Doctor
	listErr   error
	statusErr error
	listCalls int
	updates   []bool
}

func (f *fakeDoctorClient) ListDoctors(ctx context.Context) ([]dashboard.Doctor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]dashboard.Doctor(nil), f.doctors...), nil
}

func (f *fakeDoctorClient) SetDoctorStatus(ctx context.Context, id uuid.UUID, isActive bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, isActive)
	return f.statusErr
}

type fakeNoticeBoard struct {
	mu      sync.Mutex
	notices map[string]dashboard.Notice
}

func (b *fakeNoticeBoard) Post(_ context.Context, key string, notice dashboard.Notice, _ time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.notices == nil {
		b.notices = make(map[string]dashboard.Notice)
	}
	b.notices[key] = notice
	return nil
}

func (b *fakeNoticeBoard) Current(_ context.Context, key string) (*dashboard.Notice, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, ok := b.notices[key]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

type fakeSessions struct {
	mu         sync.Mutex
	client     dashboard.DoctorClient
	board      dashboard.NoticeBoard
	dashboards map[string]*dashboard.Dashboard
}

func newFakeSessions(client dashboard.DoctorClient) *fakeSessions {
	return &fakeSessions{
		client:     client,
		board:      &fakeNoticeBoard{},
		dashboards: make(map[string]*dashboard.Dashboard),
	}
}

func (s *fakeSessions) Dashboard(sessionID string) *dashboard.Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.dashboards[sessionID]
	if !ok {
		d = dashboard.New(s.client, s.board, handlerTestLogger(), dashboard.Options{NoticeKey: sessionID})
		s.dashboards[sessionID] = d
	}
	return d
}

func withSession(req *http.Request, sessionID string) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), middleware.SessionIDKey, sessionID))
}

func serve(handler http.HandlerFunc, pattern, method string, req *http.Request) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc(pattern, handler).Methods(method)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}
