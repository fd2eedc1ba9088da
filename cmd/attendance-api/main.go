// @title         Attendance API
// @version       0.1.0
// @description   Employee attendance tracking: punch clock, daily/weekly summaries, and admin reports

package main

import (
	"context"

	"attendance/internal/platform/config"
	"attendance/internal/platform/logger"
	phttp "attendance/internal/platform/net/http"
	"attendance/internal/platform/store"

	"attendance/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (ATTENDANCE_API_*)
	root := config.New()
	apiCfg := root.Prefix("ATTENDANCE_API_")

	// db config lives under ATTENDANCE_PG_*
	dbCfg := root.Prefix("ATTENDANCE_PG_")

	// bring up logging early
	l := logger.Get()

	// open the platform store (postgres adapter)
	dsn := dbCfg.MayString("DBURL", "")
	if dsn == "" {
		panic("missing ATTENDANCE_PG_DBURL")
	}
	st, err := store.Open(
		context.Background(),
		store.Config{
			PG: store.PGConfig{
				Enabled:     true,
				URL:         dsn,
				MaxConns:    int32(dbCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: dbCfg.MayInt("SLOW_MS", 500),
				LogSQL:      dbCfg.MayBool("LOG_SQL", true),
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (listen address from ATTENDANCE_API_API_PORT, default ":4000")
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
