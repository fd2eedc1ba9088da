// Package http provides http transport for attendance: the employee-facing
// surface under /attendance and the admin surface under /admin
package http

import (
	"net/http"
	"time"
)

const isoDate = "2006-01-02"

// today returns the current UTC calendar date, the fallback the source
// contract uses for /attendance/summary/daily and /admin/reports/daily
func today() string { return time.Now().UTC().Format(isoDate) }

// defaultWeek returns the Monday-Sunday UTC week containing now, the
// fallback for the weekly endpoints when startDate/endDate are omitted
func defaultWeek() (string, string) {
	now := time.Now().UTC()
	day := int(now.Weekday())
	diffToMon := 1 - day
	if day == 0 {
		diffToMon = -6
	}
	monday := now.AddDate(0, 0, diffToMon)
	sunday := monday.AddDate(0, 0, 6)
	return monday.Format(isoDate), sunday.Format(isoDate)
}

// dateRange reads startDate/endDate query params, defaulting to the current
// UTC week when both are absent
func dateRange(r *http.Request) (string, string) {
	start := r.URL.Query().Get("startDate")
	end := r.URL.Query().Get("endDate")
	if start == "" && end == "" {
		return defaultWeek()
	}
	return start, end
}

// dateParam reads the date query param, defaulting to today (UTC)
func dateParam(r *http.Request) string {
	if d := r.URL.Query().Get("date"); d != "" {
		return d
	}
	return today()
}
