package service

import (
	"context"

	perr "attendance/internal/platform/errors"
	"attendance/internal/services/api/attendance/domain"
	"attendance/internal/services/api/attendance/repo"
)

// AdminPunches lists a uid's attendance in [startDate, endDate], descending
// by punchIn; it reuses History's range query and ordering
func (s *Svc) AdminPunches(ctx context.Context, uid, startDate, endDate string) ([]domain.AttendanceRecord, error) {
	return s.queryPunchRange(ctx, uid, startDate, endDate)
}

// AdminEditPunch mutates an existing record's punch pair and, if the pair
// is complete, recomputes its metrics and rebuilds the day's summary
func (s *Svc) AdminEditPunch(ctx context.Context, punchID string, in domain.EditPunchInput) (domain.AttendanceRecord, error) {
	if in.PunchIn == nil && in.PunchOut == nil {
		return domain.AttendanceRecord{}, perr.BadRequestf("at least one of punchIn or punchOut is required")
	}

	rec, err := s.Repo.GetAttendance(ctx, punchID)
	if err != nil {
		return domain.AttendanceRecord{}, err
	}

	newPunchIn := rec.PunchIn
	if in.PunchIn != nil {
		newPunchIn = *in.PunchIn
	}

	var newPunchOut *domain.PunchOutState
	if in.PunchOut != nil {
		closed := domain.ClosedPunchOut(*in.PunchOut)
		newPunchOut = &closed
	} else if !rec.PunchOut.Open && !rec.PunchOut.Voided {
		existing := rec.PunchOut
		newPunchOut = &existing
	}

	now := s.Clock.Now()
	adminEdited := true
	patch := repo.AttendancePatch{
		PunchIn:     &newPunchIn,
		AdminEdited: &adminEdited,
		UpdatedAt:   &now,
	}

	complete := newPunchOut != nil && !newPunchOut.Open
	if complete {
		user, err := s.Repo.GetUser(ctx, rec.UID)
		if err != nil {
			return domain.AttendanceRecord{}, perr.NotFoundf("user profile not found")
		}
		if !user.HasSchedule() {
			return domain.AttendanceRecord{}, perr.PreconditionFailedf("user %s has no schedule configured", rec.UID)
		}
		m, err := s.Engine.Compute(newPunchIn, newPunchOut.At, user.Schedule)
		if err != nil {
			return domain.AttendanceRecord{}, perr.Internalf("compute metrics: %v", err)
		}
		patch.PunchOut = newPunchOut
		patch.Metrics = &m
	}

	updated, err := s.Repo.UpdateAttendance(ctx, punchID, patch)
	if err != nil {
		return domain.AttendanceRecord{}, err
	}

	if complete {
		if err := s.rebuildDailySummary(ctx, updated.UID, updated.Metrics.WorkDate); err != nil {
			return domain.AttendanceRecord{}, err
		}
	}

	return updated, nil
}

// AdminDeletePunch hard-deletes a record and rebuilds its day's summary
func (s *Svc) AdminDeletePunch(ctx context.Context, punchID string) (domain.DeleteOutput, error) {
	rec, err := s.Repo.GetAttendance(ctx, punchID)
	if err != nil {
		return domain.DeleteOutput{}, err
	}

	workDate := rec.PunchIn.Format("2006-01-02")
	if rec.Metrics != nil {
		workDate = rec.Metrics.WorkDate
	} else {
		workDate = s.Engine.LocalDate(rec.PunchIn)
	}

	if err := s.Repo.DeleteAttendance(ctx, punchID); err != nil {
		return domain.DeleteOutput{}, err
	}
	if err := s.rebuildDailySummary(ctx, rec.UID, workDate); err != nil {
		return domain.DeleteOutput{}, err
	}

	return domain.DeleteOutput{ID: punchID, Deleted: true}, nil
}

// AdminAssignSchedule updates uid's schedule and/or timezone; it never
// retroactively recomputes historical metrics
func (s *Svc) AdminAssignSchedule(ctx context.Context, uid string, in domain.AssignScheduleInput) (domain.User, error) {
	if in.Schedule == nil && in.Timezone == nil {
		return domain.User{}, perr.BadRequestf("at least one of schedule or timezone is required")
	}
	if in.Schedule != nil && (in.Schedule.Start == "" || in.Schedule.End == "") {
		return domain.User{}, perr.BadRequestf("schedule.start and schedule.end are required")
	}

	return s.Repo.UpdateUser(ctx, uid, repo.UserPatch{
		Schedule: in.Schedule,
		Timezone: in.Timezone,
	})
}
