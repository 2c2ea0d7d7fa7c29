// Package redis provides a Redis connection helper for the Redis-backed
// tenant store.
//
// Configuration is described by the Config struct whose fields can be
// populated from environment variables via github.com/caarlos0/env.
//
//	var cfg redis.Config
//	if err := env.Parse(&cfg); err != nil {
//		// handle error
//	}
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		// handle error, probably terminate the application
//	}
//	defer client.Close()
//
//	store := tenant.NewRedisStore(client)
package redis
