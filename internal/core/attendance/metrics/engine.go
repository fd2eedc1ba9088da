// Package metrics computes per-punch work metrics from a punch-in/punch-out
// pair and a daily schedule. It is pure: no I/O, no clock, no persistence.
package metrics

import (
	"fmt"
	"math"
	"time"
)

// Schedule is the daily work window an employee is assigned, expressed as
// local wall-clock "HH:MM" strings
type Schedule struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Metrics is the result of computing one punch pair against a schedule
type Metrics struct {
	WorkDate         string  `json:"workDate"`
	RegularHours     float64 `json:"regularHours"`
	OvertimeHours    float64 `json:"overtimeHours"`
	NightDiffHours   float64 `json:"nightDiffHours"`
	TotalWorkedHours float64 `json:"totalWorkedHours"`
	LateMinutes      int     `json:"lateMinutes"`
	UndertimeMinutes int     `json:"undertimeMinutes"`
}

// Engine computes Metrics under a fixed local-zone offset (spec.md's single
// "one knob" a DST-aware reimplementation would need to generalize)
type Engine struct {
	offset time.Duration
}

// New returns an Engine for the given fixed local-zone offset east of UTC
func New(offset time.Duration) *Engine {
	return &Engine{offset: offset}
}

// DefaultOffset is UTC+8, the fixed local zone spec.md's source assumes
const DefaultOffset = 8 * time.Hour

// LocalDate returns t's calendar date in the engine's fixed local zone,
// formatted YYYY-MM-DD
func (e *Engine) LocalDate(t time.Time) string {
	local := t.UTC().Add(e.offset)
	year, month, day := local.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}

// Compute derives Metrics for one punch-in/punch-out pair against sched.
// It is total over the punch pair: degenerate punches (e.g. punchOut before
// punchIn) never error, they flow through the max(0, ...) and empty-overlap
// rules and simply yield smaller or zero category totals. The only error is
// a schedule start or end that is not a valid "HH:MM" string.
func (e *Engine) Compute(punchIn, punchOut time.Time, sched Schedule) (Metrics, error) {
	pi := punchIn.UTC()

	local := pi.Add(e.offset)
	year, month, day := local.Date()
	localMidnight := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	workDate := localMidnight.Format("2006-01-02")

	startOfs, err := parseHHMM(sched.Start)
	if err != nil {
		return Metrics{}, fmt.Errorf("schedule start: %w", err)
	}
	endOfs, err := parseHHMM(sched.End)
	if err != nil {
		return Metrics{}, fmt.Errorf("schedule end: %w", err)
	}

	toUTC := func(localWall time.Time) time.Time { return localWall.Add(-e.offset) }

	schedStart := toUTC(localMidnight.Add(startOfs))
	schedEnd := toUTC(localMidnight.Add(endOfs))
	endOfWorkDay := toUTC(localMidnight.Add(24*time.Hour - time.Millisecond))

	po := punchOut.UTC()
	if po.After(endOfWorkDay) {
		po = endOfWorkDay
	}

	regularMs := overlapMs(pi, po, schedStart, schedEnd)

	lateMs := maxMs(0, pi.Sub(schedStart))

	var undertimeMs time.Duration
	if po.Before(schedEnd) {
		undertimeMs = maxMs(0, schedEnd.Sub(maxTime(po, schedStart)))
	}

	overtimeMs := maxMs(0, po.Sub(maxTime(pi, schedEnd)))

	nightDiffMs := nightDiffWindows(pi, po, localMidnight, toUTC)

	regularHours := toHours(regularMs)
	overtimeHours := toHours(overtimeMs)

	return Metrics{
		WorkDate:         workDate,
		RegularHours:     regularHours,
		OvertimeHours:    overtimeHours,
		NightDiffHours:   toHours(nightDiffMs),
		TotalWorkedHours: toHours(regularMs + overtimeMs),
		LateMinutes:      toMinutes(lateMs),
		UndertimeMinutes: toMinutes(undertimeMs),
	}, nil
}

// nightDiffWindows sums [pi,po) overlap against sliding 22:00-06:00 local
// windows, starting at dayBefore(workDate) 22:00 and advancing a day at a
// time until a window's start is no longer before po
func nightDiffWindows(pi, po time.Time, localMidnight time.Time, toUTC func(time.Time) time.Time) time.Duration {
	winStart0 := localMidnight.Add(-24*time.Hour + 22*time.Hour)
	winEnd0 := localMidnight.Add(6 * time.Hour)

	var total time.Duration
	const maxWindows = 4
	for k := 0; k < maxWindows; k++ {
		shift := time.Duration(k) * 24 * time.Hour
		winStart := toUTC(winStart0.Add(shift))
		if !winStart.Before(po) {
			break
		}
		winEnd := toUTC(winEnd0.Add(shift))
		total += overlapMs(pi, po, winStart, winEnd)
	}
	return total
}

func overlapMs(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	if !aStart.Before(aEnd) || !bStart.Before(bEnd) {
		return 0
	}
	start := maxTime(aStart, bStart)
	end := minTime(aEnd, bEnd)
	if end.Before(start) {
		return 0
	}
	return end.Sub(start)
}

func maxMs(a time.Duration, b time.Duration) time.Duration {
	if b > a {
		return b
	}
	return a
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func toHours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}

func toMinutes(d time.Duration) int {
	return int(math.Round(d.Minutes()))
}

func parseHHMM(s string) (time.Duration, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid HH:MM %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid HH:MM %q: out of range", s)
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute, nil
}
