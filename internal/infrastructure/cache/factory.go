package cache

import (
	"fmt"
	"time"

	"github.com/carobar/backend/internal/domain/shared"
	"github.com/carobar/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Factory creates the list cache based on configuration
type Factory struct {
	redisConfig config.RedisConfig
	cacheConfig config.CacheConfig
	logger      *zap.Logger
	connect     func(config.RedisConfig, string) (shared.Cache, error)
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// NewFactory creates a new factory
func NewFactory(redisCfg config.RedisConfig, cacheCfg config.CacheConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		redisConfig: redisCfg,
		cacheConfig: cacheCfg,
		logger:      zap.NewNop(),
		connect: func(cfg config.RedisConfig, prefix string) (shared.Cache, error) {
			return NewRedisCache(cfg, prefix)
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create returns nil when caching is disabled. Otherwise it tries Redis first
// and falls back to memory when Redis is off or unreachable and fallback is allowed.
func (f *Factory) Create() (shared.Cache, error) {
	if !f.cacheConfig.Enabled {
		f.logger.Info("reference list cache disabled")
		return nil, nil
	}

	if !f.cacheConfig.UseRedis {
		f.logger.Info("using in-memory reference list cache")
		return NewMemoryCache(time.Minute), nil
	}

	c, err := f.connect(f.redisConfig, f.cacheConfig.KeyPrefix)
	if err == nil {
		f.logger.Info("using Redis reference list cache", zap.String("addr", f.redisConfig.Addr()))
		return c, nil
	}

	if !f.cacheConfig.FallbackToMemory {
		return nil, fmt.Errorf("redis cache required but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory cache. "+
		"Cached lists will not be shared between instances.",
		zap.Error(err),
	)
	return NewMemoryCache(time.Minute), nil
}
