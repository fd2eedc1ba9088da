package repo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"attendance/internal/modkit/repokit"
	perr "attendance/internal/platform/errors"
	"attendance/internal/services/api/attendance/domain"
)

// PG binds the Repo interface to Postgres. Each logical collection is one
// table with a JSONB document column plus a few plain columns used for
// query predicates; schema (assumed pre-existing, not owned by this repo):
//
//	attendance_users            (uid text primary key, doc jsonb not null)
//	attendance_records          (id text primary key, uid text not null,
//	                              punch_in timestamptz not null,
//	                              punch_out_state text not null, -- 'open'|'voided'|'closed'
//	                              doc jsonb not null)
//	attendance_daily_summaries  (id text primary key, uid text not null,
//	                              work_date text not null, doc jsonb not null)
type PG struct{}

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

type queries struct{ q repokit.Queryer }

var _ Repo = (*queries)(nil)

// --- users ---

func (r *queries) GetUser(ctx context.Context, uid string) (domain.User, error) {
	const sql = `select doc from attendance_users where uid = $1`
	var raw []byte
	if err := r.q.QueryRow(ctx, sql, uid).Scan(&raw); err != nil {
		return domain.User{}, mapNotFound(err, "user %s not found", uid)
	}
	var u domain.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return domain.User{}, perr.DBf("decode user %s: %v", uid, err)
	}
	return u, nil
}

func (r *queries) CreateUser(ctx context.Context, u domain.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return perr.DBf("encode user %s: %v", u.UID, err)
	}
	const sql = `insert into attendance_users (uid, doc) values ($1, $2)
		on conflict (uid) do nothing`
	tag, err := r.q.Exec(ctx, sql, u.UID, raw)
	if err != nil {
		return perr.DBf("insert user %s: %v", u.UID, err)
	}
	if tag.RowsAffected() == 0 {
		return perr.Conflictf("user %s already exists", u.UID)
	}
	return nil
}

func (r *queries) UpdateUser(ctx context.Context, uid string, patch UserPatch) (domain.User, error) {
	u, err := r.GetUser(ctx, uid)
	if err != nil {
		return domain.User{}, err
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
	raw, err := json.Marshal(u)
	if err != nil {
		return domain.User{}, perr.DBf("encode user %s: %v", uid, err)
	}
	const sql = `update attendance_users set doc = $2 where uid = $1`
	if _, err := r.q.Exec(ctx, sql, uid, raw); err != nil {
		return domain.User{}, perr.DBf("update user %s: %v", uid, err)
	}
	return u, nil
}

func (r *queries) AllUsers(ctx context.Context) ([]domain.User, error) {
	const sql = `select doc from attendance_users`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, perr.DBf("query users: %v", err)
	}
	defer rows.Close()
	var out []domain.User
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, perr.DBf("scan user: %v", err)
		}
		var u domain.User
		if err := json.Unmarshal(raw, &u); err != nil {
			return nil, perr.DBf("decode user: %v", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// --- attendance ---

func (r *queries) CreateAttendance(ctx context.Context, rec domain.AttendanceRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return "", perr.DBf("encode attendance record %s: %v", rec.ID, err)
	}
	const sql = `insert into attendance_records (id, uid, punch_in, punch_out_state, doc)
		values ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, sql, rec.ID, rec.UID, rec.PunchIn.UTC(), punchOutStateColumn(rec.PunchOut), raw); err != nil {
		return "", perr.DBf("insert attendance record %s: %v", rec.ID, err)
	}
	return rec.ID, nil
}

func (r *queries) GetAttendance(ctx context.Context, id string) (domain.AttendanceRecord, error) {
	const sql = `select doc from attendance_records where id = $1`
	var raw []byte
	if err := r.q.QueryRow(ctx, sql, id).Scan(&raw); err != nil {
		return domain.AttendanceRecord{}, mapNotFound(err, "attendance record %s not found", id)
	}
	var rec domain.AttendanceRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.AttendanceRecord{}, perr.DBf("decode attendance record %s: %v", id, err)
	}
	return rec, nil
}

func (r *queries) UpdateAttendance(ctx context.Context, id string, patch AttendancePatch) (domain.AttendanceRecord, error) {
	rec, err := r.GetAttendance(ctx, id)
	if err != nil {
		return domain.AttendanceRecord{}, err
	}
	if patch.PunchIn != nil {
		rec.PunchIn = *patch.PunchIn
	}
	if patch.PunchOut != nil {
		rec.PunchOut = *patch.PunchOut
	}
	if patch.Metrics != nil {
		rec.Metrics = patch.Metrics
	}
	if patch.Voided != nil {
		rec.Voided = *patch.Voided
	}
	if patch.VoidedAt != nil {
		rec.VoidedAt = patch.VoidedAt
	}
	if patch.VoidReason != nil {
		rec.VoidReason = *patch.VoidReason
	}
	if patch.AdminEdited != nil {
		rec.AdminEdited = *patch.AdminEdited
	}
	if patch.UpdatedAt != nil {
		rec.UpdatedAt = *patch.UpdatedAt
	} else {
		rec.UpdatedAt = time.Now().UTC()
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return domain.AttendanceRecord{}, perr.DBf("encode attendance record %s: %v", id, err)
	}
	const sql = `update attendance_records
		set uid = $2, punch_in = $3, punch_out_state = $4, doc = $5
		where id = $1`
	if _, err := r.q.Exec(ctx, sql, id, rec.UID, rec.PunchIn.UTC(), punchOutStateColumn(rec.PunchOut), raw); err != nil {
		return domain.AttendanceRecord{}, perr.DBf("update attendance record %s: %v", id, err)
	}
	return rec, nil
}

func (r *queries) DeleteAttendance(ctx context.Context, id string) error {
	const sql = `delete from attendance_records where id = $1`
	tag, err := r.q.Exec(ctx, sql, id)
	if err != nil {
		return perr.DBf("delete attendance record %s: %v", id, err)
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("attendance record %s not found", id)
	}
	return nil
}

func (r *queries) QueryAttendance(ctx context.Context, q AttendanceQuery) ([]domain.AttendanceRecord, error) {
	const sql = `
select doc from attendance_records
where ($1 = '' or uid = $1)
and ($2 = '' or punch_out_state = $2)
and ($3::timestamptz is null or punch_in >= $3)
and ($4::timestamptz is null or punch_in <= $4)
order by punch_in asc
limit $5
`
	limit := q.Limit
	if limit <= 0 {
		limit = 1000
	}
	rows, err := r.q.Query(ctx, sql, q.UID, punchOutEqualsColumn(q.PunchOutEquals), q.PunchInFrom, q.PunchInTo, limit)
	if err != nil {
		return nil, perr.DBf("query attendance: %v", err)
	}
	defer rows.Close()
	var out []domain.AttendanceRecord
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, perr.DBf("scan attendance record: %v", err)
		}
		var rec domain.AttendanceRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, perr.DBf("decode attendance record: %v", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// --- dailySummary ---

func (r *queries) GetSummary(ctx context.Context, id string) (domain.DailySummary, error) {
	const sql = `select doc from attendance_daily_summaries where id = $1`
	var raw []byte
	if err := r.q.QueryRow(ctx, sql, id).Scan(&raw); err != nil {
		return domain.DailySummary{}, mapNotFound(err, "daily summary %s not found", id)
	}
	var s domain.DailySummary
	if err := json.Unmarshal(raw, &s); err != nil {
		return domain.DailySummary{}, perr.DBf("decode daily summary %s: %v", id, err)
	}
	return s, nil
}

func (r *queries) SetSummary(ctx context.Context, id string, doc domain.DailySummary) error {
	doc.ID = id
	raw, err := json.Marshal(doc)
	if err != nil {
		return perr.DBf("encode daily summary %s: %v", id, err)
	}
	const sql = `insert into attendance_daily_summaries (id, uid, work_date, doc)
		values ($1, $2, $3, $4)
		on conflict (id) do update set doc = excluded.doc`
	if _, err := r.q.Exec(ctx, sql, id, doc.UID, doc.WorkDate, raw); err != nil {
		return perr.DBf("upsert daily summary %s: %v", id, err)
	}
	return nil
}

func (r *queries) DeleteSummary(ctx context.Context, id string) error {
	const sql = `delete from attendance_daily_summaries where id = $1`
	if _, err := r.q.Exec(ctx, sql, id); err != nil {
		return perr.DBf("delete daily summary %s: %v", id, err)
	}
	return nil
}

func (r *queries) QuerySummaryByWorkDate(ctx context.Context, workDate string) ([]domain.DailySummary, error) {
	const sql = `select doc from attendance_daily_summaries where work_date = $1 order by uid asc`
	return r.scanSummaries(ctx, sql, workDate)
}

func (r *queries) QuerySummaryByUIDAndWorkDateRange(ctx context.Context, uid, startDate, endDate string) ([]domain.DailySummary, error) {
	const sql = `select doc from attendance_daily_summaries
		where uid = $1 and work_date >= $2 and work_date <= $3
		order by work_date asc`
	return r.scanSummaries(ctx, sql, uid, startDate, endDate)
}

func (r *queries) scanSummaries(ctx context.Context, sql string, args ...any) ([]domain.DailySummary, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, perr.DBf("query daily summaries: %v", err)
	}
	defer rows.Close()
	var out []domain.DailySummary
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, perr.DBf("scan daily summary: %v", err)
		}
		var s domain.DailySummary
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, perr.DBf("decode daily summary: %v", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// punchOutStateColumn projects the tri-valued punchOut into the indexed
// filter column
func punchOutStateColumn(p domain.PunchOutState) string {
	switch {
	case p.Open:
		return "open"
	case p.Voided:
		return "voided"
	default:
		return "closed"
	}
}

// punchOutEqualsColumn translates the port's wire-level PunchOutEquals
// filter ("" for open, "VOIDED" for voided) into the indexed state column
func punchOutEqualsColumn(want *string) string {
	if want == nil {
		return ""
	}
	if *want == "VOIDED" {
		return "voided"
	}
	return "open"
}

// mapNotFound turns pgx.ErrNoRows into a NotFound; anything else is a DB error
func mapNotFound(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return perr.NotFoundf(format, a...)
	}
	return perr.DBf("%v", err)
}
