package handler

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"doctor-admin-dashboard/internal/dashboard"
	"doctor-admin-dashboard/internal/delivery/http/middleware"
	"doctor-admin-dashboard/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

//go:embed templates/doctors.html
var templateFS embed.FS

var doctorsTemplate = template.Must(template.ParseFS(templateFS, "templates/doctors.html"))

const dashboardPath = "/admin/doctors"

// DashboardSessions hands out the dashboard bound to a browser session.
type DashboardSessions interface {
	Dashboard(sessionID string) *dashboard.Dashboard
}

type DashboardHandler struct {
	sessions DashboardSessions
	log      *logrus.Logger
	now      func() time.Time
}

func NewDashboardHandler(sessions DashboardSessions, log *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{
		sessions: sessions,
		log:      log,
		now:      time.Now,
	}
}

type dashboardPage struct {
	View         dashboard.View
	NoticeMillis int64
}

func (h *DashboardHandler) Page(w http.ResponseWriter, r *http.Request) {
	d, ok := h.dashboard(w, r)
	if !ok {
		return
	}
	h.mount(r, d)

	page := dashboardPage{View: d.View(r.Context())}
	if page.View.Notice != nil {
		page.NoticeMillis = page.View.Notice.ExpiresAt.Sub(h.now()).Milliseconds()
	}

	var buf bytes.Buffer
	if err := doctorsTemplate.Execute(&buf, page); err != nil {
		h.log.Warnf("Failed to render doctors dashboard: %+v", err)
		response.InternalServerError(w, "Failed to render dashboard")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *DashboardHandler) View(w http.ResponseWriter, r *http.Request) {
	d, ok := h.dashboard(w, r)
	if !ok {
		return
	}
	h.mount(r, d)

	response.JSON(w, http.StatusOK, d.View(r.Context()))
}

func (h *DashboardHandler) Search(w http.ResponseWriter, r *http.Request) {
	d, ok := h.dashboard(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid form", nil)
		return
	}

	d.SetSearch(r.PostFormValue("q"))
	h.redirect(w, r)
}

func (h *DashboardHandler) PrevPage(w http.ResponseWriter, r *http.Request) {
	d, ok := h.dashboard(w, r)
	if !ok {
		return
	}
	d.PrevPage()
	h.redirect(w, r)
}

func (h *DashboardHandler) NextPage(w http.ResponseWriter, r *http.Request) {
	d, ok := h.dashboard(w, r)
	if !ok {
		return
	}
	d.NextPage()
	h.redirect(w, r)
}

// ToggleStatus flips the doctor's flag from the value the row was rendered with.
func (h *DashboardHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	d, ok := h.dashboard(w, r)
	if !ok {
		return
	}

	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctor_id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	if err := r.ParseForm(); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid form", nil)
		return
	}
	isActive, err := strconv.ParseBool(r.PostFormValue("isactive"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid isactive value", nil)
		return
	}

	d.ToggleStatus(r.Context(), doctorID, isActive)
	h.redirect(w, r)
}

func (h *DashboardHandler) dashboard(w http.ResponseWriter, r *http.Request) (*dashboard.Dashboard, bool) {
	sessionID, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Session required", nil)
		return nil, false
	}
	return h.sessions.Dashboard(sessionID), true
}

// mount loads the list once per dashboard. The fetch outlives an aborted
// request and is bounded by the dashboard lifetime and the client timeout.
func (h *DashboardHandler) mount(r *http.Request, d *dashboard.Dashboard) {
	d.Mount(context.WithoutCancel(r.Context()))
}

func (h *DashboardHandler) redirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
}
