// Package api provides the HTTP API for the application
package api

import (
	"attendance/internal/platform/config"
	"attendance/internal/platform/logger"
	phttp "attendance/internal/platform/net/http"
	"attendance/internal/platform/store"

	"attendance/internal/modkit"
	"attendance/internal/modkit/httpkit"
	"attendance/internal/modkit/module"
	"attendance/internal/modkit/swaggerkit"
	"attendance/internal/platform/net/middleware"

	attendancemod "attendance/internal/services/api/attendance/module"
	attendanceadminmod "attendance/internal/services/api/attendance/module/admin"
	metamod "attendance/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}

	auth := middleware.NewHeaderAuth()

	mods := []module.Module{
		metamod.New(deps),
		attendancemod.New(deps, modkit.WithMiddlewares(httpkit.Auth(auth))),
		attendanceadminmod.New(deps, modkit.WithMiddlewares(httpkit.Auth(auth), httpkit.RequireAdmin(auth))),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})

	// TODO: Remove/create middleware or endpoint for this.
	// if mux, ok := r.Mux().(*chi.Mux); ok {
	// 	_ = chi.Walk(mux, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
	// 		fmt.Println(method, route)
	// 		return nil
	// 	})
	// }
}
