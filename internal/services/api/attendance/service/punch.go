package service

import (
	"context"

	perr "attendance/internal/platform/errors"
	"attendance/internal/services/api/attendance/domain"
	"attendance/internal/services/api/attendance/repo"
)

func openPunchQuery(uid string) repo.AttendanceQuery {
	empty := ""
	return repo.AttendanceQuery{UID: uid, PunchOutEquals: &empty, Limit: 1}
}

// findOpenPunch returns uid's single open record, if any
func (s *Svc) findOpenPunch(ctx context.Context, uid string) (*domain.AttendanceRecord, error) {
	rows, err := s.Repo.QueryAttendance(ctx, openPunchQuery(uid))
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].IsOpen() {
			return &rows[i], nil
		}
	}
	return nil, nil
}

// Status answers GET /attendance/status. todaySummary is keyed by today's
// UTC date, not the local workDate other endpoints use (see the metrics
// engine's local-zone offset) -- they can legitimately disagree near local
// midnight.
func (s *Svc) Status(ctx context.Context, uid string) (domain.StatusOutput, error) {
	open, err := s.findOpenPunch(ctx, uid)
	if err != nil {
		return domain.StatusOutput{}, err
	}

	today := s.Clock.Now().Format("2006-01-02")
	summary, err := s.Repo.GetSummary(ctx, domain.SummaryID(uid, today))
	var summaryPtr *domain.DailySummary
	if err == nil {
		summaryPtr = &summary
	} else if perr.CodeOf(err) != perr.ErrorCodeNotFound {
		return domain.StatusOutput{}, err
	}

	return domain.StatusOutput{
		PunchedIn:    open != nil,
		OpenPunch:    open,
		TodaySummary: summaryPtr,
	}, nil
}

// PunchIn opens a new attendance record for uid
func (s *Svc) PunchIn(ctx context.Context, uid string) (domain.PunchInOutput, error) {
	open, err := s.findOpenPunch(ctx, uid)
	if err != nil {
		return domain.PunchInOutput{}, err
	}
	if open != nil {
		return domain.PunchInOutput{}, perr.Conflictf("already have an open punch")
	}

	now := s.Clock.Now()
	rec := domain.AttendanceRecord{
		UID:       uid,
		PunchIn:   now,
		PunchOut:  domain.OpenPunchOut(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	id, err := s.Repo.CreateAttendance(ctx, rec)
	if err != nil {
		return domain.PunchInOutput{}, err
	}
	return domain.PunchInOutput{ID: id, PunchIn: now}, nil
}

// PunchOut closes uid's open record, computes its metrics, and folds the
// result into the daily summary via an upsert
func (s *Svc) PunchOut(ctx context.Context, uid string) (domain.PunchOutOutput, error) {
	open, err := s.findOpenPunch(ctx, uid)
	if err != nil {
		return domain.PunchOutOutput{}, err
	}
	if open == nil {
		return domain.PunchOutOutput{}, perr.NotFoundf("no open punch")
	}

	user, err := s.Repo.GetUser(ctx, uid)
	if err != nil {
		return domain.PunchOutOutput{}, perr.NotFoundf("user profile not found")
	}
	if !user.HasSchedule() {
		return domain.PunchOutOutput{}, perr.PreconditionFailedf("user %s has no schedule configured", uid)
	}

	now := s.Clock.Now()
	m, err := s.Engine.Compute(open.PunchIn, now, user.Schedule)
	if err != nil {
		return domain.PunchOutOutput{}, perr.Internalf("compute metrics: %v", err)
	}

	closed := domain.ClosedPunchOut(now)
	updated, err := s.Repo.UpdateAttendance(ctx, open.ID, repo.AttendancePatch{
		PunchOut:  &closed,
		Metrics:   &m,
		UpdatedAt: &now,
	})
	if err != nil {
		return domain.PunchOutOutput{}, err
	}

	if err := s.upsertDailySummary(ctx, updated); err != nil {
		return domain.PunchOutOutput{}, err
	}

	return domain.PunchOutOutput{ID: updated.ID, PunchOut: now, Metrics: m}, nil
}

// CancelOpenPunch voids uid's own open record
func (s *Svc) CancelOpenPunch(ctx context.Context, uid, attendanceID string) (domain.CancelOutput, error) {
	rec, err := s.Repo.GetAttendance(ctx, attendanceID)
	if err != nil {
		return domain.CancelOutput{}, err
	}
	if rec.UID != uid {
		return domain.CancelOutput{}, perr.Forbiddenf("record does not belong to you")
	}
	if !rec.IsOpen() {
		return domain.CancelOutput{}, perr.Conflictf("already completed")
	}

	now := s.Clock.Now()
	voidedTrue := true
	reason := "Cancelled by user"
	voided := domain.VoidedPunchOut()
	if _, err := s.Repo.UpdateAttendance(ctx, attendanceID, repo.AttendancePatch{
		PunchOut:   &voided,
		Voided:     &voidedTrue,
		VoidedAt:   &now,
		VoidReason: &reason,
		UpdatedAt:  &now,
	}); err != nil {
		return domain.CancelOutput{}, err
	}

	return domain.CancelOutput{ID: attendanceID, Voided: true}, nil
}
