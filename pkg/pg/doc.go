// Package pg provides a PostgreSQL connection pool helper for the
// Postgres-backed tenant store.
//
// Configuration is described by the Config struct whose fields can be
// populated from environment variables via github.com/caarlos0/env.
//
//	var cfg pg.Config
//	if err := env.Parse(&cfg); err != nil {
//		// handle error
//	}
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		// handle error, probably terminate the application
//	}
//	defer pool.Close()
//
//	store := tenant.NewPostgresStore(pool)
package pg
