package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"attendance/internal/modkit/httpkit"
	"attendance/internal/services/api/attendance/domain"
	svc "attendance/internal/services/api/attendance/service"
)

// RegisterAdmin mounts the admin-facing attendance endpoints
func RegisterAdmin(r httpkit.Router, s svc.Service) {
	h := &adminHandlers{svc: s}

	httpkit.Get(r, "/punches/{uid}", h.punches)
	httpkit.PutJSON[domain.EditPunchInput](r, "/punches/{punchId}", h.editPunch)
	r.Delete("/punches/{punchId}", httpkit.Call(h.deletePunch))
	httpkit.PutJSON[domain.AssignScheduleInput](r, "/schedule/{uid}", h.assignSchedule)

	httpkit.Get(r, "/reports/daily", h.dailyReport)
	httpkit.Get(r, "/reports/weekly", h.weeklyReport)
}

type adminHandlers struct{ svc svc.Service }

// swagger:route GET /admin/punches/{uid} Admin adminPunches
// @Summary An employee's attendance in a date range
// @Tags Admin
// @Produce json
// @Param uid path string true "Employee id"
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 {array} domain.AttendanceRecord "ok"
// @Router /admin/punches/{uid} [get]
func (h *adminHandlers) punches(r *stdhttp.Request) (any, error) {
	uid := chi.URLParam(r, "uid")
	start, end := dateRange(r)
	return h.svc.AdminPunches(r.Context(), uid, start, end)
}

// swagger:route PUT /admin/punches/{punchId} Admin adminEditPunch
// @Summary Correct a punch's times
// @Tags Admin
// @Accept json
// @Produce json
// @Param punchId path string true "Attendance record id"
// @Param payload body domain.EditPunchInput true "Fields to change"
// @Success 200 {object} domain.AttendanceRecord "ok"
// @Failure 400 {object} httpkit.Envelope "both punchIn and punchOut omitted"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /admin/punches/{punchId} [put]
func (h *adminHandlers) editPunch(r *stdhttp.Request, in domain.EditPunchInput) (any, error) {
	id := chi.URLParam(r, "punchId")
	return h.svc.AdminEditPunch(r.Context(), id, in)
}

// swagger:route DELETE /admin/punches/{punchId} Admin adminDeletePunch
// @Summary Hard-delete a punch and rebuild its day's summary
// @Tags Admin
// @Produce json
// @Param punchId path string true "Attendance record id"
// @Success 200 {object} domain.DeleteOutput "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /admin/punches/{punchId} [delete]
func (h *adminHandlers) deletePunch(r *stdhttp.Request) (any, error) {
	id := chi.URLParam(r, "punchId")
	return h.svc.AdminDeletePunch(r.Context(), id)
}

// swagger:route PUT /admin/schedule/{uid} Admin adminAssignSchedule
// @Summary Assign an employee's schedule and/or timezone
// @Tags Admin
// @Accept json
// @Produce json
// @Param uid path string true "Employee id"
// @Param payload body domain.AssignScheduleInput true "Fields to change"
// @Success 200 {object} domain.User "ok"
// @Failure 400 {object} httpkit.Envelope "both schedule and timezone omitted"
// @Router /admin/schedule/{uid} [put]
func (h *adminHandlers) assignSchedule(r *stdhttp.Request, in domain.AssignScheduleInput) (any, error) {
	uid := chi.URLParam(r, "uid")
	return h.svc.AdminAssignSchedule(r.Context(), uid, in)
}

// swagger:route GET /admin/reports/daily Admin adminDailyReport
// @Summary Every employee's summary for a day, defaulting to today (UTC)
// @Tags Admin
// @Produce json
// @Param date query string false "YYYY-MM-DD, defaults to today (UTC)"
// @Success 200 {object} domain.DailyReportOutput "ok"
// @Router /admin/reports/daily [get]
func (h *adminHandlers) dailyReport(r *stdhttp.Request) (any, error) {
	return h.svc.AdminDailyReport(r.Context(), dateParam(r))
}

// swagger:route GET /admin/reports/weekly Admin adminWeeklyReport
// @Summary Every employee's totals in a date range, grouped by employee
// @Tags Admin
// @Produce json
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 {object} domain.WeeklyReportOutput "ok"
// @Router /admin/reports/weekly [get]
func (h *adminHandlers) weeklyReport(r *stdhttp.Request) (any, error) {
	start, end := dateRange(r)
	return h.svc.AdminWeeklyReport(r.Context(), start, end)
}
