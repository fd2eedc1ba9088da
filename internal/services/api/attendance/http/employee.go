package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"attendance/internal/modkit/httpkit"
	svc "attendance/internal/services/api/attendance/service"
)

// RegisterEmployee mounts the employee-facing attendance endpoints
func RegisterEmployee(r httpkit.Router, s svc.Service) {
	h := &employeeHandlers{svc: s}

	httpkit.Get(r, "/status", h.status)
	httpkit.Post(r, "/punch-in", h.punchIn)
	httpkit.Post(r, "/punch-out", h.punchOut)
	r.Delete("/cancel-punch/{attendanceId}", httpkit.Call(h.cancelPunch))

	httpkit.Get(r, "/history", h.history)
	httpkit.Get(r, "/summary/daily", h.dailySummary)
	httpkit.Get(r, "/summary/weekly", h.weeklySummary)
}

type employeeHandlers struct{ svc svc.Service }

// swagger:route GET /attendance/status Attendance attendanceStatus
// @Summary Current punch state and today's running summary
// @Tags Attendance
// @Produce json
// @Success 200 {object} domain.StatusOutput "ok"
// @Router /attendance/status [get]
func (h *employeeHandlers) status(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Status(r.Context(), uid)
}

// swagger:route POST /attendance/punch-in Attendance attendancePunchIn
// @Summary Open a new attendance record
// @Tags Attendance
// @Produce json
// @Success 201 {object} domain.PunchInOutput "created"
// @Failure 409 {object} httpkit.Envelope "already has an open punch"
// @Router /attendance/punch-in [post]
func (h *employeeHandlers) punchIn(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	out, err := h.svc.PunchIn(r.Context(), uid)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(out), nil
}

// swagger:route POST /attendance/punch-out Attendance attendancePunchOut
// @Summary Close the open attendance record
// @Tags Attendance
// @Produce json
// @Success 200 {object} domain.PunchOutOutput "ok"
// @Failure 404 {object} httpkit.Envelope "no open punch"
// @Router /attendance/punch-out [post]
func (h *employeeHandlers) punchOut(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.PunchOut(r.Context(), uid)
}

// swagger:route DELETE /attendance/cancel-punch/{attendanceId} Attendance attendanceCancelPunch
// @Summary Void the caller's own open punch
// @Tags Attendance
// @Produce json
// @Param attendanceId path string true "Attendance record id"
// @Success 200 {object} domain.CancelOutput "ok"
// @Failure 403 {object} httpkit.Envelope "not the owner"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Failure 409 {object} httpkit.Envelope "already completed"
// @Router /attendance/cancel-punch/{attendanceId} [delete]
func (h *employeeHandlers) cancelPunch(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	id := chi.URLParam(r, "attendanceId")
	return h.svc.CancelOpenPunch(r.Context(), uid, id)
}

// swagger:route GET /attendance/history Attendance attendanceHistory
// @Summary Own punch history in a date range
// @Tags Attendance
// @Produce json
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 {array} domain.AttendanceRecord "ok"
// @Router /attendance/history [get]
func (h *employeeHandlers) history(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	start, end := dateRange(r)
	return h.svc.History(r.Context(), uid, start, end)
}

// swagger:route GET /attendance/summary/daily Attendance attendanceDailySummary
// @Summary Own daily rollup, defaulting to today (UTC)
// @Tags Attendance
// @Produce json
// @Param date query string false "YYYY-MM-DD, defaults to today (UTC)"
// @Success 200 {object} domain.DailySummary "ok"
// @Failure 404 {object} httpkit.Envelope "no summary for that day"
// @Router /attendance/summary/daily [get]
func (h *employeeHandlers) dailySummary(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.DailySummary(r.Context(), uid, dateParam(r))
}

// swagger:route GET /attendance/summary/weekly Attendance attendanceWeeklySummary
// @Summary Own weekly rollup, defaulting to the current Mon-Sun (UTC) week
// @Tags Attendance
// @Produce json
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 {object} domain.WeeklySummaryOutput "ok"
// @Router /attendance/summary/weekly [get]
func (h *employeeHandlers) weeklySummary(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	start, end := dateRange(r)
	return h.svc.WeeklySummary(r.Context(), uid, start, end)
}
