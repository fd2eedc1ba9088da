package repo

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	perr "attendance/internal/platform/errors"
	"attendance/internal/services/api/attendance/domain"
)

// Memory is an in-memory, map-backed Repo implementation used by fast
// service-level tests; it implements the same read-modify-write contract
// a document store would
type Memory struct {
	mu        sync.Mutex
	users     map[string]domain.User
	records   map[string]domain.AttendanceRecord
	summaries map[string]domain.DailySummary
}

// NewMemory returns an empty Memory repo
func NewMemory() *Memory {
	return &Memory{
		users:     map[string]domain.User{},
		records:   map[string]domain.AttendanceRecord{},
		summaries: map[string]domain.DailySummary{},
	}
}

// GetUser returns the user or NotFound
func (m *Memory) GetUser(_ context.Context, uid string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[uid]
	if !ok {
		return domain.User{}, perr.NotFoundf("user %s not found", uid)
	}
	return u, nil
}

// CreateUser inserts a new user or fails Conflict if uid already exists
func (m *Memory) CreateUser(_ context.Context, u domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.UID]; ok {
		return perr.Conflictf("user %s already exists", u.UID)
	}
	m.users[u.UID] = u
	return nil
}

// UpdateUser applies patch to an existing user
func (m *Memory) UpdateUser(_ context.Context, uid string, patch UserPatch) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[uid]
	if !ok {
		return domain.User{}, perr.NotFoundf("user %s not found", uid)
	}
	if patch.Schedule != nil {
		u.Schedule = *patch.Schedule
	}
	if patch.Timezone != nil {
		u.Timezone = *patch.Timezone
	}
	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if patch.Department != nil {
		u.Department = *patch.Department
	}
	if patch.Position != nil {
		u.Position = *patch.Position
	}
	m.users[uid] = u
	return u, nil
}

// AllUsers returns every user, unordered
func (m *Memory) AllUsers(_ context.Context) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

// CreateAttendance inserts a new open record, assigning a store id
func (m *Memory) CreateAttendance(_ context.Context, rec domain.AttendanceRecord) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	m.records[rec.ID] = rec
	return rec.ID, nil
}

// GetAttendance returns a record or NotFound
func (m *Memory) GetAttendance(_ context.Context, id string) (domain.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return domain.AttendanceRecord{}, perr.NotFoundf("attendance record %s not found", id)
	}
	return r, nil
}

// UpdateAttendance applies patch to an existing record
func (m *Memory) UpdateAttendance(_ context.Context, id string, patch AttendancePatch) (domain.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return domain.AttendanceRecord{}, perr.NotFoundf("attendance record %s not found", id)
	}
	if patch.PunchIn != nil {
		r.PunchIn = *patch.PunchIn
	}
	if patch.PunchOut != nil {
		r.PunchOut = *patch.PunchOut
	}
	if patch.Metrics != nil {
		r.Metrics = patch.Metrics
	}
	if patch.Voided != nil {
		r.Voided = *patch.Voided
	}
	if patch.VoidedAt != nil {
		r.VoidedAt = patch.VoidedAt
	}
	if patch.VoidReason != nil {
		r.VoidReason = *patch.VoidReason
	}
	if patch.AdminEdited != nil {
		r.AdminEdited = *patch.AdminEdited
	}
	if patch.UpdatedAt != nil {
		r.UpdatedAt = *patch.UpdatedAt
	}
	m.records[id] = r
	return r, nil
}

// DeleteAttendance hard-deletes a record
func (m *Memory) DeleteAttendance(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return perr.NotFoundf("attendance record %s not found", id)
	}
	delete(m.records, id)
	return nil
}

// QueryAttendance filters records client-side
func (m *Memory) QueryAttendance(_ context.Context, q AttendanceQuery) ([]domain.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.AttendanceRecord
	for _, r := range m.records {
		if q.UID != "" && r.UID != q.UID {
			continue
		}
		if q.PunchOutEquals != nil {
			want := *q.PunchOutEquals
			switch {
			case want == "" && !r.PunchOut.Open:
				continue
			case want == "VOIDED" && !r.PunchOut.Voided:
				continue
			}
		}
		if q.PunchInFrom != nil && r.PunchIn.Before(*q.PunchInFrom) {
			continue
		}
		if q.PunchInTo != nil && r.PunchIn.After(*q.PunchInTo) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PunchIn.Before(out[j].PunchIn) })
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// GetSummary returns a summary or NotFound
func (m *Memory) GetSummary(_ context.Context, id string) (domain.DailySummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.summaries[id]
	if !ok {
		return domain.DailySummary{}, perr.NotFoundf("daily summary %s not found", id)
	}
	return s, nil
}

// SetSummary overwrites or creates a summary document
func (m *Memory) SetSummary(_ context.Context, id string, doc domain.DailySummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc.ID = id
	m.summaries[id] = doc
	return nil
}

// DeleteSummary removes a summary if present; a no-op if absent
func (m *Memory) DeleteSummary(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.summaries, id)
	return nil
}

// QuerySummaryByWorkDate returns every summary for workDate across users
func (m *Memory) QuerySummaryByWorkDate(_ context.Context, workDate string) ([]domain.DailySummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.DailySummary
	for _, s := range m.summaries {
		if s.WorkDate == workDate {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UID < out[j].UID })
	return out, nil
}

// QuerySummaryByUIDAndWorkDateRange returns uid's summaries in [startDate, endDate], ascending
func (m *Memory) QuerySummaryByUIDAndWorkDateRange(_ context.Context, uid, startDate, endDate string) ([]domain.DailySummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.DailySummary
	for _, s := range m.summaries {
		if s.UID == uid && s.WorkDate >= startDate && s.WorkDate <= endDate {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WorkDate < out[j].WorkDate })
	return out, nil
}

var _ Repo = (*Memory)(nil)
