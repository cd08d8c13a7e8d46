// Package bootstrap establishes runtime dependencies for the command
// entry points.
package bootstrap

import (
	"fmt"

	"github.com/momtheprogram/api-final-writers-blog/internal/cache"
	"github.com/momtheprogram/api-final-writers-blog/internal/config"
	"github.com/momtheprogram/api-final-writers-blog/internal/database"
	"github.com/momtheprogram/api-final-writers-blog/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedBuiltIns upserts the curated group catalog on startup.
	SeedBuiltIns bool
}

// InitRuntime connects to DB and Redis and optionally seeds the
// built-in groups. The Redis client may be nil if the server is
// unreachable; callers degrade gracefully.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedBuiltIns {
		if err := seed.Groups(db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed built-in groups: %w", err)
		}
	}

	return db, r, nil
}
