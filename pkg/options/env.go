package options

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// EnvFactory returns a Factory that configures a fresh T from environment
// variables on every call, based on `env` struct tags. Named instances are
// parsed with the upper-cased name as a variable prefix, so a "billing"
// instance of a struct tagged `env:"TIMEOUT"` reads BILLING_TIMEOUT.
//
// The default .env file is loaded once per process if present.
//
// Example:
//
//	type SMTPOptions struct {
//		Host string `env:"SMTP_HOST" envDefault:"localhost"`
//		Port int    `env:"SMTP_PORT" envDefault:"587"`
//	}
//
//	mgr := options.NewManager(cache, registry, options.EnvFactory[SMTPOptions]())
func EnvFactory[T any]() Factory[T] {
	return func(ctx context.Context, name string) (*T, error) {
		defaultEnvLoaded.Do(func() {
			// The .env file is optional.
			_ = godotenv.Load()
		})

		var o T
		opts := env.Options{}
		if name != "" {
			opts.Prefix = envPrefix(name)
		}
		if err := env.ParseWithOptions(&o, opts); err != nil {
			return nil, fmt.Errorf("parse environment for %q: %w", name, err)
		}
		return &o, nil
	}
}

// envPrefix converts an instance name to an environment variable prefix,
// e.g. "read-replica" becomes "READ_REPLICA_".
func envPrefix(name string) string {
	return strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(name)) + "_"
}
