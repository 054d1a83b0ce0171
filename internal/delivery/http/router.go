package http

import (
	"net/http"

	"doctor-admin-dashboard/internal/delivery/http/handler"
	"doctor-admin-dashboard/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	doctorAdminHandler *handler.DoctorAdminHandler
	auditLogHandler    *handler.AuditLogHandler
	dashboardHandler   *handler.DashboardHandler
	sessionMiddleware  *middleware.SessionMiddleware
	corsMiddleware     *middleware.CORSMiddleware
	loggingMiddleware  *middleware.LoggingMiddleware
}

func NewRouter(
	doctorAdminHandler *handler.DoctorAdminHandler,
	auditLogHandler *handler.AuditLogHandler,
	dashboardHandler *handler.DashboardHandler,
	sessionMiddleware *middleware.SessionMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		doctorAdminHandler: doctorAdminHandler,
		auditLogHandler:    auditLogHandler,
		dashboardHandler:   dashboardHandler,
		sessionMiddleware:  sessionMiddleware,
		corsMiddleware:     corsMiddleware,
		loggingMiddleware:  loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// Health check
	r.router.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	// Doctor admin API, consumed by the dashboard
	// Registered on the root router so a wrong method answers 405, not 404
	r.router.HandleFunc("/api/doctor/admin", r.doctorAdminHandler.ListDoctors).Methods(http.MethodGet, http.MethodOptions)
	r.router.HandleFunc("/api/doctor/admin/{doctor_id}/status", r.doctorAdminHandler.UpdateDoctorStatus).Methods(http.MethodPut, http.MethodOptions)
	r.router.HandleFunc("/api/doctor/admin/{doctor_id}/audit-logs", r.auditLogHandler.GetDoctorAuditLogs).Methods(http.MethodGet, http.MethodOptions)

	// Dashboard pages, one dashboard per session
	dash := r.router.PathPrefix("/admin/doctors").Subrouter()
	dash.Use(r.sessionMiddleware.Handle)
	dash.HandleFunc("", r.dashboardHandler.Page).Methods(http.MethodGet)
	dash.HandleFunc("/view", r.dashboardHandler.View).Methods(http.MethodGet)
	dash.HandleFunc("/search", r.dashboardHandler.Search).Methods(http.MethodPost)
	dash.HandleFunc("/prev", r.dashboardHandler.PrevPage).Methods(http.MethodPost)
	dash.HandleFunc("/next", r.dashboardHandler.NextPage).Methods(http.MethodPost)
	dash.HandleFunc("/{doctor_id}/toggle", r.dashboardHandler.ToggleStatus).Methods(http.MethodPost)

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}
