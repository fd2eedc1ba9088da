package module

import (
	"context"

	attendancedom "attendance/internal/services/api/attendance/domain"
	attendancesvc "attendance/internal/services/api/attendance/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptAttendancePort adapts the attendance service to the domain port
// interface for cross-module wiring
type adaptAttendancePort struct{ svc attendancesvc.Service }

func (a adaptAttendancePort) Status(ctx context.Context, uid string) (attendancedom.StatusOutput, error) {
	return a.svc.Status(ctx, uid)
}

func (a adaptAttendancePort) PunchIn(ctx context.Context, uid string) (attendancedom.PunchInOutput, error) {
	return a.svc.PunchIn(ctx, uid)
}

func (a adaptAttendancePort) PunchOut(ctx context.Context, uid string) (attendancedom.PunchOutOutput, error) {
	return a.svc.PunchOut(ctx, uid)
}

func (a adaptAttendancePort) CancelOpenPunch(ctx context.Context, uid, attendanceID string) (attendancedom.CancelOutput, error) {
	return a.svc.CancelOpenPunch(ctx, uid, attendanceID)
}

func (a adaptAttendancePort) History(ctx context.Context, uid, startDate, endDate string) ([]attendancedom.AttendanceRecord, error) {
	return a.svc.History(ctx, uid, startDate, endDate)
}

func (a adaptAttendancePort) DailySummary(ctx context.Context, uid, workDate string) (attendancedom.DailySummary, error) {
	return a.svc.DailySummary(ctx, uid, workDate)
}

func (a adaptAttendancePort) WeeklySummary(ctx context.Context, uid, startDate, endDate string) (attendancedom.WeeklySummaryOutput, error) {
	return a.svc.WeeklySummary(ctx, uid, startDate, endDate)
}

func (a adaptAttendancePort) AdminPunches(ctx context.Context, uid, startDate, endDate string) ([]attendancedom.AttendanceRecord, error) {
	return a.svc.AdminPunches(ctx, uid, startDate, endDate)
}

func (a adaptAttendancePort) AdminEditPunch(ctx context.Context, punchID string, in attendancedom.EditPunchInput) (attendancedom.AttendanceRecord, error) {
	return a.svc.AdminEditPunch(ctx, punchID, in)
}

func (a adaptAttendancePort) AdminDeletePunch(ctx context.Context, punchID string) (attendancedom.DeleteOutput, error) {
	return a.svc.AdminDeletePunch(ctx, punchID)
}

func (a adaptAttendancePort) AdminAssignSchedule(ctx context.Context, uid string, in attendancedom.AssignScheduleInput) (attendancedom.User, error) {
	return a.svc.AdminAssignSchedule(ctx, uid, in)
}

func (a adaptAttendancePort) AdminDailyReport(ctx context.Context, workDate string) (attendancedom.DailyReportOutput, error) {
	return a.svc.AdminDailyReport(ctx, workDate)
}

func (a adaptAttendancePort) AdminWeeklyReport(ctx context.Context, startDate, endDate string) (attendancedom.WeeklyReportOutput, error) {
	return a.svc.AdminWeeklyReport(ctx, startDate, endDate)
}

var _ attendancedom.ServicePort = adaptAttendancePort{}
