// Package domain holds the attendance module's shared types, DTOs, and the
// service-facing port interface
package domain

import (
	"encoding/json"
	"time"

	"attendance/internal/core/attendance/metrics"
)

// Schedule is an employee's assigned daily work window, local HH:MM strings
type Schedule = metrics.Schedule

// Metrics is the per-punch labor breakdown produced by the metrics engine
type Metrics = metrics.Metrics

// User is an employee profile; the core only reads schedule/timezone and
// passes the display fields through to reports
type User struct {
	UID        string   `json:"uid"`
	Schedule   Schedule `json:"schedule"`
	Timezone   string   `json:"timezone"`
	FirstName  string   `json:"firstName"`
	LastName   string   `json:"lastName"`
	Department string   `json:"department"`
	Position   string   `json:"position"`
}

// HasSchedule reports whether both ends of the schedule are configured
func (u User) HasSchedule() bool {
	return u.Schedule.Start != "" && u.Schedule.End != ""
}

// PunchOutState is the tri-valued punchOut field: open (null), voided
// ("VOIDED"), or closed (an instant). Modeled as a small tagged union so
// callers never compare against the raw sentinel string directly; the wire
// format it marshals to/from is still the flat null|"VOIDED"|RFC3339 shape.
type PunchOutState struct {
	Open   bool
	Voided bool
	At     time.Time
}

// OpenPunchOut is the zero/open state
func OpenPunchOut() PunchOutState { return PunchOutState{Open: true} }

// VoidedPunchOut is the cancelled state
func VoidedPunchOut() PunchOutState { return PunchOutState{Voided: true} }

// ClosedPunchOut is the completed state at instant t
func ClosedPunchOut(t time.Time) PunchOutState { return PunchOutState{At: t} }

const voidedSentinel = "VOIDED"

// MarshalJSON renders null, "VOIDED", or an RFC3339 instant string
func (p PunchOutState) MarshalJSON() ([]byte, error) {
	switch {
	case p.Open:
		return []byte("null"), nil
	case p.Voided:
		return json.Marshal(voidedSentinel)
	default:
		return json.Marshal(p.At.UTC().Format(time.RFC3339Nano))
	}
}

// UnmarshalJSON parses null, "VOIDED", or an RFC3339 instant string
func (p *PunchOutState) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*p = OpenPunchOut()
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == voidedSentinel {
		*p = VoidedPunchOut()
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return err
	}
	*p = ClosedPunchOut(t)
	return nil
}

// AttendanceRecord is one punch pair
type AttendanceRecord struct {
	ID          string        `json:"id"`
	UID         string        `json:"uid"`
	PunchIn     time.Time     `json:"punchIn"`
	PunchOut    PunchOutState `json:"punchOut"`
	Metrics     *Metrics      `json:"metrics"`
	Voided      bool          `json:"voided"`
	VoidedAt    *time.Time    `json:"voidedAt,omitempty"`
	VoidReason  string        `json:"voidReason,omitempty"`
	AdminEdited bool          `json:"adminEdited"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// IsOpen reports whether this record has no punchOut yet
func (r AttendanceRecord) IsOpen() bool { return r.PunchOut.Open }

// IsCompleted reports whether this record is closed and not voided, i.e.
// eligible for aggregation
func (r AttendanceRecord) IsCompleted() bool {
	return !r.PunchOut.Open && !r.PunchOut.Voided
}

// PunchEntry is the compact shape a DailySummary keeps per punch
type PunchEntry struct {
	AttendanceID string     `json:"attendanceId"`
	PunchIn      time.Time  `json:"punchIn"`
	PunchOut     *time.Time `json:"punchOut"`
}

// DailySummary is the per-(uid, workDate) rollup
type DailySummary struct {
	ID               string       `json:"id"`
	UID              string       `json:"uid"`
	WorkDate         string       `json:"workDate"`
	RegularHours     float64      `json:"regularHours"`
	OvertimeHours    float64      `json:"overtimeHours"`
	NightDiffHours   float64      `json:"nightDiffHours"`
	TotalWorkedHours float64      `json:"totalWorkedHours"`
	LateMinutes      int          `json:"lateMinutes"`
	UndertimeMinutes int          `json:"undertimeMinutes"`
	Punches          []PunchEntry `json:"punches"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// SummaryID builds the deterministic uid_workDate id
func SummaryID(uid, workDate string) string { return uid + "_" + workDate }
