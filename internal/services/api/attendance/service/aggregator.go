package service

import (
	"context"
	"math"
	"sort"

	perr "attendance/internal/platform/errors"
	"attendance/internal/services/api/attendance/domain"
	"attendance/internal/services/api/attendance/repo"
)

func round2(f float64) float64 { return math.Round(f*100) / 100 }

func punchEntry(rec domain.AttendanceRecord) domain.PunchEntry {
	e := domain.PunchEntry{AttendanceID: rec.ID, PunchIn: rec.PunchIn}
	if !rec.PunchOut.Open && !rec.PunchOut.Voided {
		at := rec.PunchOut.At
		e.PunchOut = &at
	}
	return e
}

// upsertDailySummary folds a single newly-completed record into its day's
// rollup, assuming it is the latest punch so far (true in the real-time
// close path; unsafe after history is mutated, hence rebuild for C6)
func (s *Svc) upsertDailySummary(ctx context.Context, rec domain.AttendanceRecord) error {
	if rec.Metrics == nil {
		return perr.Internalf("upsert summary: completed record %s has no metrics", rec.ID)
	}
	id := domain.SummaryID(rec.UID, rec.Metrics.WorkDate)
	existing, err := s.Repo.GetSummary(ctx, id)
	entry := punchEntry(rec)

	if err != nil {
		if perr.CodeOf(err) != perr.ErrorCodeNotFound {
			return err
		}
		return s.Repo.SetSummary(ctx, id, domain.DailySummary{
			UID:              rec.UID,
			WorkDate:         rec.Metrics.WorkDate,
			RegularHours:     rec.Metrics.RegularHours,
			OvertimeHours:    rec.Metrics.OvertimeHours,
			NightDiffHours:   rec.Metrics.NightDiffHours,
			TotalWorkedHours: rec.Metrics.TotalWorkedHours,
			LateMinutes:      rec.Metrics.LateMinutes,
			UndertimeMinutes: rec.Metrics.UndertimeMinutes,
			Punches:          []domain.PunchEntry{entry},
			UpdatedAt:        s.Clock.Now(),
		})
	}

	existing.RegularHours = round2(existing.RegularHours + rec.Metrics.RegularHours)
	existing.OvertimeHours = round2(existing.OvertimeHours + rec.Metrics.OvertimeHours)
	existing.NightDiffHours = round2(existing.NightDiffHours + rec.Metrics.NightDiffHours)
	existing.TotalWorkedHours = round2(existing.TotalWorkedHours + rec.Metrics.TotalWorkedHours)
	// lateMinutes retained from the day's first punch; undertimeMinutes
	// always reflects the most recent punch-out
	existing.UndertimeMinutes = rec.Metrics.UndertimeMinutes
	existing.Punches = append(existing.Punches, entry)
	existing.UpdatedAt = s.Clock.Now()

	return s.Repo.SetSummary(ctx, id, existing)
}

// rebuildDailySummary authoritatively recomputes (uid, workDate)'s rollup
// from the current attendance record set; idempotent, and deletes the
// summary entirely once its record set is empty
func (s *Svc) rebuildDailySummary(ctx context.Context, uid, workDate string) error {
	rows, err := s.Repo.QueryAttendance(ctx, repo.AttendanceQuery{UID: uid})
	if err != nil {
		return err
	}

	var completed []domain.AttendanceRecord
	for _, r := range rows {
		if r.IsCompleted() && r.Metrics != nil && r.Metrics.WorkDate == workDate {
			completed = append(completed, r)
		}
	}

	id := domain.SummaryID(uid, workDate)
	if len(completed) == 0 {
		return s.Repo.DeleteSummary(ctx, id)
	}

	sort.Slice(completed, func(i, j int) bool { return completed[i].PunchIn.Before(completed[j].PunchIn) })

	var doc domain.DailySummary
	doc.UID = uid
	doc.WorkDate = workDate
	for _, r := range completed {
		doc.RegularHours = round2(doc.RegularHours + r.Metrics.RegularHours)
		doc.OvertimeHours = round2(doc.OvertimeHours + r.Metrics.OvertimeHours)
		doc.NightDiffHours = round2(doc.NightDiffHours + r.Metrics.NightDiffHours)
		doc.TotalWorkedHours = round2(doc.TotalWorkedHours + r.Metrics.TotalWorkedHours)
		doc.Punches = append(doc.Punches, punchEntry(r))
	}
	doc.LateMinutes = completed[0].Metrics.LateMinutes
	doc.UndertimeMinutes = completed[len(completed)-1].Metrics.UndertimeMinutes
	doc.UpdatedAt = s.Clock.Now()

	return s.Repo.SetSummary(ctx, id, doc)
}
