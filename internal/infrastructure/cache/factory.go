package cache

import (
	"fmt"

	"github.com/aptos/backend/internal/application/report"
	"github.com/aptos/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// MetricsCacheFactory creates metrics caches based on configuration
type MetricsCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// MetricsCacheFactoryOption is a functional option for configuring the factory
type MetricsCacheFactoryOption func(*MetricsCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) MetricsCacheFactoryOption {
	return func(f *MetricsCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory cache
// when Redis is unavailable. Default is true (allow fallback).
func WithInMemoryFallback(allow bool) MetricsCacheFactoryOption {
	return func(f *MetricsCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewMetricsCacheFactory creates a new factory
func NewMetricsCacheFactory(cfg config.RedisConfig, opts ...MetricsCacheFactoryOption) *MetricsCacheFactory {
	f := &MetricsCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-backed metrics cache
func (f *MetricsCacheFactory) CreateRedisCache() (report.MetricsCache, error) {
	cache, err := NewRedisMetricsCache(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis metrics cache: %w", err)
	}
	return cache, nil
}

// CreateInMemoryCache creates a process-local metrics cache
func (f *MetricsCacheFactory) CreateInMemoryCache() report.MetricsCache {
	return NewInMemoryMetricsCache()
}

// CreateCache creates a metrics cache, preferring Redis and falling back to
// the in-memory implementation when Redis is unavailable and fallback is
// allowed
func (f *MetricsCacheFactory) CreateCache() (report.MetricsCache, error) {
	cache, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis metrics cache")
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for metrics cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory metrics cache. "+
		"Cached metrics will not be shared across instances.",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
