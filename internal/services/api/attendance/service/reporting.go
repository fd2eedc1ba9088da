package service

import (
	"context"
	"sort"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"attendance/internal/services/api/attendance/domain"
	"attendance/internal/services/api/attendance/repo"
)

// titleCaser normalizes free-text department/position display fields so
// "engineering" and "Engineering", entered by different admins, render the
// same way on a report
var titleCaser = cases.Title(language.English)

func dayBounds(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02T15:04:05.000Z", startDate+"T00:00:00.000Z")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse("2006-01-02T15:04:05.000Z", endDate+"T23:59:59.999Z")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func (s *Svc) queryPunchRange(ctx context.Context, uid, startDate, endDate string) ([]domain.AttendanceRecord, error) {
	from, to, err := dayBounds(startDate, endDate)
	if err != nil {
		return nil, err
	}
	rows, err := s.Repo.QueryAttendance(ctx, repo.AttendanceQuery{UID: uid, PunchInFrom: &from, PunchInTo: &to})
	if err != nil {
		return nil, err
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].PunchIn.After(rows[j].PunchIn) })
	return rows, nil
}

// History answers GET /attendance/history, sorted by punchIn descending
func (s *Svc) History(ctx context.Context, uid, startDate, endDate string) ([]domain.AttendanceRecord, error) {
	return s.queryPunchRange(ctx, uid, startDate, endDate)
}

// DailySummary answers GET /attendance/summary/daily, a point read by summary id
func (s *Svc) DailySummary(ctx context.Context, uid, workDate string) (domain.DailySummary, error) {
	return s.Repo.GetSummary(ctx, domain.SummaryID(uid, workDate))
}

func accumulate(t domain.WeeklyTotals, d domain.DailySummary) domain.WeeklyTotals {
	t.RegularHours = round2(t.RegularHours + d.RegularHours)
	t.OvertimeHours = round2(t.OvertimeHours + d.OvertimeHours)
	t.NightDiffHours = round2(t.NightDiffHours + d.NightDiffHours)
	t.TotalWorkedHours = round2(t.TotalWorkedHours + d.TotalWorkedHours)
	t.LateMinutes += d.LateMinutes
	t.UndertimeMinutes += d.UndertimeMinutes
	return t
}

// WeeklySummary answers GET /attendance/summary/weekly: a point-range read
// on dailySummary for uid, ascending, with totals accumulated
func (s *Svc) WeeklySummary(ctx context.Context, uid, startDate, endDate string) (domain.WeeklySummaryOutput, error) {
	days, err := s.Repo.QuerySummaryByUIDAndWorkDateRange(ctx, uid, startDate, endDate)
	if err != nil {
		return domain.WeeklySummaryOutput{}, err
	}
	sort.Slice(days, func(i, j int) bool { return days[i].WorkDate < days[j].WorkDate })

	var totals domain.WeeklyTotals
	for _, d := range days {
		totals = accumulate(totals, d)
	}
	return domain.WeeklySummaryOutput{Totals: totals, Days: days}, nil
}

func (s *Svc) enrich(ctx context.Context, d domain.DailySummary, cache map[string]domain.User) (domain.EnrichedSummary, error) {
	u, ok := cache[d.UID]
	if !ok {
		var err error
		u, err = s.Repo.GetUser(ctx, d.UID)
		if err != nil {
			return domain.EnrichedSummary{}, err
		}
		cache[d.UID] = u
	}
	return domain.EnrichedSummary{
		DailySummary: d,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Department:   titleCaser.String(u.Department),
		Position:     titleCaser.String(u.Position),
	}, nil
}

// AdminDailyReport answers GET /admin/reports/daily: every summary for
// workDate, each enriched with the owning user's display attributes
func (s *Svc) AdminDailyReport(ctx context.Context, workDate string) (domain.DailyReportOutput, error) {
	days, err := s.Repo.QuerySummaryByWorkDate(ctx, workDate)
	if err != nil {
		return domain.DailyReportOutput{}, err
	}

	cache := map[string]domain.User{}
	out := make([]domain.EnrichedSummary, 0, len(days))
	for _, d := range days {
		e, err := s.enrich(ctx, d, cache)
		if err != nil {
			return domain.DailyReportOutput{}, err
		}
		out = append(out, e)
	}
	return domain.DailyReportOutput{Date: workDate, Count: len(out), Data: out}, nil
}

// AdminWeeklyReport answers GET /admin/reports/weekly: summaries in range,
// grouped by uid, summed per-employee with the same rounding discipline as
// WeeklySummary, enriched with display attributes
func (s *Svc) AdminWeeklyReport(ctx context.Context, startDate, endDate string) (domain.WeeklyReportOutput, error) {
	days, err := s.allSummariesInRange(ctx, startDate, endDate)
	if err != nil {
		return domain.WeeklyReportOutput{}, err
	}

	byUID := map[string][]domain.DailySummary{}
	for _, d := range days {
		byUID[d.UID] = append(byUID[d.UID], d)
	}

	uids := make([]string, 0, len(byUID))
	for uid := range byUID {
		uids = append(uids, uid)
	}
	sort.Strings(uids)

	cache := map[string]domain.User{}
	out := make([]domain.EmployeeWeeklyReport, 0, len(uids))
	for _, uid := range uids {
		days := byUID[uid]
		sort.Slice(days, func(i, j int) bool { return days[i].WorkDate < days[j].WorkDate })

		var totals domain.WeeklyTotals
		for _, d := range days {
			totals = accumulate(totals, d)
		}

		u, ok := cache[uid]
		if !ok {
			u, err = s.Repo.GetUser(ctx, uid)
			if err != nil {
				return domain.WeeklyReportOutput{}, err
			}
			cache[uid] = u
		}

		out = append(out, domain.EmployeeWeeklyReport{
			UID:        uid,
			FirstName:  u.FirstName,
			LastName:   u.LastName,
			Department: titleCaser.String(u.Department),
			Position:   titleCaser.String(u.Position),
			Totals:     totals,
			Days:       days,
		})
	}

	return domain.WeeklyReportOutput{StartDate: startDate, EndDate: endDate, Count: len(out), Data: out}, nil
}

// allSummariesInRange walks the workDate range day by day; dailySummary has
// no cross-uid date-range query in the persistence port (only per-uid), so
// this groups by scanning queryByWorkDate for each date in range
func (s *Svc) allSummariesInRange(ctx context.Context, startDate, endDate string) ([]domain.DailySummary, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, err
	}

	var out []domain.DailySummary
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days, err := s.Repo.QuerySummaryByWorkDate(ctx, d.Format("2006-01-02"))
		if err != nil {
			return nil, err
		}
		out = append(out, days...)
	}
	return out, nil
}
