package domain

import "context"

// ServicePort defines the service contract the attendance module exposes to
// its HTTP layer and to other modules via modkit.Module.Ports
type ServicePort interface {
	Status(ctx context.Context, uid string) (StatusOutput, error)
	PunchIn(ctx context.Context, uid string) (PunchInOutput, error)
	PunchOut(ctx context.Context, uid string) (PunchOutOutput, error)
	CancelOpenPunch(ctx context.Context, uid, attendanceID string) (CancelOutput, error)

	History(ctx context.Context, uid, startDate, endDate string) ([]AttendanceRecord, error)
	DailySummary(ctx context.Context, uid, workDate string) (DailySummary, error)
	WeeklySummary(ctx context.Context, uid, startDate, endDate string) (WeeklySummaryOutput, error)

	AdminPunches(ctx context.Context, uid, startDate, endDate string) ([]AttendanceRecord, error)
	AdminEditPunch(ctx context.Context, punchID string, in EditPunchInput) (AttendanceRecord, error)
	AdminDeletePunch(ctx context.Context, punchID string) (DeleteOutput, error)
	AdminAssignSchedule(ctx context.Context, uid string, in AssignScheduleInput) (User, error)

	AdminDailyReport(ctx context.Context, workDate string) (DailyReportOutput, error)
	AdminWeeklyReport(ctx context.Context, startDate, endDate string) (WeeklyReportOutput, error)
}
