// Package repo implements the attendance persistence port: an abstract
// document store over three logical collections (users, attendance,
// dailySummary) with get/create/update/delete/query per collection. The
// port exposes no transactions; callers accept read-modify-write semantics.
package repo

import (
	"context"
	"time"

	"attendance/internal/services/api/attendance/domain"
)

// AttendanceQuery filters the attendance collection; nil/zero fields mean
// "no constraint on this dimension"
type AttendanceQuery struct {
	UID            string
	PunchOutEquals *string // matches the raw wire value, e.g. "VOIDED"
	PunchInFrom    *time.Time
	PunchInTo      *time.Time
	Limit          int
}

// UserPatch carries only the user fields to change; nil means unchanged
type UserPatch struct {
	Schedule   *domain.Schedule
	Timezone   *string
	FirstName  *string
	LastName   *string
	Department *string
	Position   *string
}

// AttendancePatch carries only the attendance fields to change; nil means
// unchanged
type AttendancePatch struct {
	PunchIn     *time.Time
	PunchOut    *domain.PunchOutState
	Metrics     *domain.Metrics
	Voided      *bool
	VoidedAt    *time.Time
	VoidReason  *string
	AdminEdited *bool
	UpdatedAt   *time.Time
}

// Repo is the attendance persistence port (spec C3)
type Repo interface {
	// users
	GetUser(ctx context.Context, uid string) (domain.User, error)
	CreateUser(ctx context.Context, u domain.User) error
	UpdateUser(ctx context.Context, uid string, patch UserPatch) (domain.User, error)
	AllUsers(ctx context.Context) ([]domain.User, error)

	// attendance
	CreateAttendance(ctx context.Context, rec domain.AttendanceRecord) (string, error)
	GetAttendance(ctx context.Context, id string) (domain.AttendanceRecord, error)
	UpdateAttendance(ctx context.Context, id string, patch AttendancePatch) (domain.AttendanceRecord, error)
	DeleteAttendance(ctx context.Context, id string) error
	QueryAttendance(ctx context.Context, q AttendanceQuery) ([]domain.AttendanceRecord, error)

	// dailySummary
	GetSummary(ctx context.Context, id string) (domain.DailySummary, error)
	SetSummary(ctx context.Context, id string, doc domain.DailySummary) error
	DeleteSummary(ctx context.Context, id string) error
	QuerySummaryByWorkDate(ctx context.Context, workDate string) ([]domain.DailySummary, error)
	QuerySummaryByUIDAndWorkDateRange(ctx context.Context, uid, startDate, endDate string) ([]domain.DailySummary, error)
}
