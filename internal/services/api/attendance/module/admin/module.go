// Package admin wires the admin-facing attendance surface into the API
// using modkit; a sibling of attendance/module's employee-facing surface,
// split because each modkit.Module mounts at exactly one route prefix and
// the source contract serves /attendance and /admin as separate namespaces.
package admin

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

// Module implements the modkit.Module interface for the admin surface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc attendancesvc.Service
}

func offsetFromConfig(cfg config.Conf) *metrics.Engine {
	minutes := cfg.MayInt("LOCAL_UTC_OFFSET_MINUTES", int(metrics.DefaultOffset.Minutes()))
	return metrics.New(time.Duration(minutes) * time.Minute)
}

// New constructs the admin attendance module. It binds its own Repo/Svc
// over the same shared TxRunner rather than reusing the employee module's
// instance -- both are stateless bindings over the same pool, so this
// costs nothing and keeps the two modules independently constructible.
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("attendance-admin"), modkit.WithPrefix("/admin")}, opts...)...)

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

	external := b.Register
	m.register = func(r httpkit.Router) {
		attendancehttp.RegisterAdmin(r, m.svc)
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

// Ports returns nil; admin has no cross-module port surface of its own,
// see attendance/module for the shared domain.ServicePort adapter
func (m *Module) Ports() any { return nil }
