// Package module wires the employee-facing attendance surface into the API
// using modkit. The admin-facing surface is a sibling module, see
// attendance/module/admin, since each modkit.Module mounts at exactly one
// route prefix and the source contract splits /attendance from /admin.
package module

import (
	"net/http"
	"time"

	"attendance/internal/core/attendance/metrics"
	modkit "attendance/internal/modkit"
	"attendance/internal/modkit/httpkit"
	"attendance/internal/platform/clock"
	"attendance/internal/platform/config"
	str "attendance/internal/platform/strings"
	attendancehttp "attendance/internal/services/api/attendance/http"
	attendancerepo "attendance/internal/services/api/attendance/repo"
	attendancesvc "attendance/internal/services/api/attendance/service"
)

// Module implements the modkit.Module interface for the employee surface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc attendancesvc.Service
}

// offsetFromConfig reads LOCAL_UTC_OFFSET_MINUTES under cfg's prefix (wired
// with the API config, so ATTENDANCE_API_LOCAL_UTC_OFFSET_MINUTES), defaulting to
// the engine's built-in UTC+8
func offsetFromConfig(cfg config.Conf) *metrics.Engine {
	minutes := cfg.MayInt("LOCAL_UTC_OFFSET_MINUTES", int(metrics.DefaultOffset.Minutes()))
	return metrics.New(time.Duration(minutes) * time.Minute)
}

// New constructs the employee attendance module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("attendance"), modkit.WithPrefix("/attendance")}, opts...)...)

	engine := offsetFromConfig(deps.Cfg)
	repo := attendancerepo.NewPG()
	svc := attendancesvc.New(deps.PG, repo, clock.System{}, engine)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptAttendancePort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		attendancehttp.RegisterEmployee(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
