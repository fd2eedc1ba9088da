package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	perr "attendance/internal/platform/errors"
	"attendance/internal/services/api/attendance/domain"
)

func TestAdminPunches_FiltersByDateRange(t *testing.T) {
	s, m, fc := newTestSvc(t, mustParse(t, "2024-01-10T01:00:00Z"))
	seedUser(t, m, "u1")

	_, err := s.PunchIn(context.Background(), "u1")
	require.NoError(t, err)
	fc.Set(mustParse(t, "2024-01-10T10:00:00Z"))
	_, err = s.PunchOut(context.Background(), "u1")
	require.NoError(t, err)

	fc.Set(mustParse(t, "2024-01-20T01:00:00Z"))
	_, err = s.PunchIn(context.Background(), "u1")
	require.NoError(t, err)
	fc.Set(mustParse(t, "2024-01-20T10:00:00Z"))
	_, err = s.PunchOut(context.Background(), "u1")
	require.NoError(t, err)

	rows, err := s.AdminPunches(context.Background(), "u1", "2024-01-10", "2024-01-10")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestAdminEditPunch_RequiresAtLeastOneField(t *testing.T) {
	s, m, _ := newTestSvc(t, mustParse(t, "2024-01-15T01:00:00Z"))
	seedUser(t, m, "u1")
	in, err := s.PunchIn(context.Background(), "u1")
	require.NoError(t, err)

	_, err = s.AdminEditPunch(context.Background(), in.ID, domain.EditPunchInput{})
	require.Error(t, err)
	require.Equal(t, perr.ErrorCodeValidation, perr.CodeOf(err))
}

func TestAdminEditPunch_ClosingRecomputesMetricsAndRebuildsSummary(t *testing.T) {
	s, m, _ := newTestSvc(t, mustParse(t, "2024-01-15T01:00:00Z"))
	seedUser(t, m, "u1")
	in, err := s.PunchIn(context.Background(), "u1")
	require.NoError(t, err)

	punchOut := mustParse(t, "2024-01-15T10:00:00Z")
	rec, err := s.AdminEditPunch(context.Background(), in.ID, domain.EditPunchInput{PunchOut: &punchOut})
	require.NoError(t, err)
	require.True(t, rec.AdminEdited)
	require.NotNil(t, rec.Metrics)
	require.Equal(t, 9.0, rec.Metrics.RegularHours)

	summary, err := s.Repo.GetSummary(context.Background(), domain.SummaryID("u1", rec.Metrics.WorkDate))
	require.NoError(t, err)
	require.Equal(t, 9.0, summary.RegularHours)
}

func TestAdminDeletePunch_RebuildsSummaryToEmpty(t *testing.T) {
	s, m, fc := newTestSvc(t, mustParse(t, "2024-01-15T01:00:00Z"))
	seedUser(t, m, "u1")

	_, err := s.PunchIn(context.Background(), "u1")
	require.NoError(t, err)
	fc.Set(mustParse(t, "2024-01-15T10:00:00Z"))
	out, err := s.PunchOut(context.Background(), "u1")
	require.NoError(t, err)

	del, err := s.AdminDeletePunch(context.Background(), out.ID)
	require.NoError(t, err)
	require.True(t, del.Deleted)

	_, err = s.Repo.GetAttendance(context.Background(), out.ID)
	require.Error(t, err)
	require.Equal(t, perr.ErrorCodeNotFound, perr.CodeOf(err))

	_, err = s.Repo.GetSummary(context.Background(), domain.SummaryID("u1", "2024-01-15"))
	require.Error(t, err)
}

func TestAdminAssignSchedule_ValidatesAndUpdates(t *testing.T) {
	s, m, _ := newTestSvc(t, mustParse(t, "2024-01-15T01:00:00Z"))
	seedUser(t, m, "u1")

	_, err := s.AdminAssignSchedule(context.Background(), "u1", domain.AssignScheduleInput{})
	require.Error(t, err)
	require.Equal(t, perr.ErrorCodeValidation, perr.CodeOf(err))

	bad := domain.Schedule{Start: "09:00"}
	_, err = s.AdminAssignSchedule(context.Background(), "u1", domain.AssignScheduleInput{Schedule: &bad})
	require.Error(t, err)

	good := domain.Schedule{Start: "08:00", End: "17:00"}
	u, err := s.AdminAssignSchedule(context.Background(), "u1", domain.AssignScheduleInput{Schedule: &good})
	require.NoError(t, err)
	require.Equal(t, good, u.Schedule)
}
