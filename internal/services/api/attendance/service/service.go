// Package service implements the attendance business logic: the punch
// service (C4), the daily summary aggregator (C5), the admin punch editor
// (C6), and reporting (C7)
package service

import (
	"attendance/internal/core/attendance/metrics"
	"attendance/internal/platform/clock"
	"attendance/internal/modkit/repokit"
	"attendance/internal/services/api/attendance/domain"
	"attendance/internal/services/api/attendance/repo"
)

// Service defines the service contract for the attendance module
type Service interface{ domain.ServicePort }

// Svc implements Service over a Repo, a Clock, and the metrics Engine
type Svc struct {
	Repo   repo.Repo
	Clock  clock.Clock
	Engine *metrics.Engine

	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New constructs an attendance service bound through the repo binder, the
// shape every modkit module uses to go from a shared TxRunner to its own
// repo implementation
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], clk clock.Clock, engine *metrics.Engine) *Svc {
	if db == nil {
		panic("attendance.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("attendance.Service requires a non nil Repo binder")
	}
	if clk == nil {
		clk = clock.System{}
	}
	if engine == nil {
		engine = metrics.New(metrics.DefaultOffset)
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, Clock: clk, Engine: engine}
}

var _ Service = (*Svc)(nil)
