package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//go:generate moq -rm -out cache_mock.go . Cache

// Cache is a byte oriented key value cache whose entries expire on their own.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

var ErrUnknownBackend = errors.New("unknown cache backend")

const (
	BackendMemory string = "memory"
	BackendBadger string = "badger"
)

type Config struct {
	Backend string        `yaml:"backend"`
	TTL     time.Duration `yaml:"ttl"`
	Path    string        `yaml:"path"`
	MaxCost int64         `yaml:"maxCost"`
}

func DefaultConfig() Config {
	return Config{
		Backend: BackendMemory,
		TTL:     time.Hour,
		MaxCost: 256 << 20,
	}
}

// New creates the configured backend wrapped with hit and miss metrics.
func New(ctx context.Context, cfg Config) (Cache, error) {
	var c Cache
	var err error

	switch cfg.Backend {
	case "", BackendMemory:
		c, err = NewMemoryCache(cfg.TTL, cfg.MaxCost)
	case BackendBadger:
		c, err = NewBadgerCache(ctx, cfg.Path, cfg.TTL)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.Backend)
	}

	if err != nil {
		return nil, err
	}

	log := logging.GetFromContext(ctx)
	log.Info().Str("backend", cfg.Backend).Dur("ttl", cfg.TTL).Msg("cache created")

	return WithMetrics(c), nil
}

var cacheRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "map_service",
		Subsystem: "cache",
		Name:      "requests_total",
		Help:      "number of cache lookups by result",
	},
	[]string{"result"},
)

var cacheWrites = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "map_service",
		Subsystem: "cache",
		Name:      "writes_total",
		Help:      "number of cache writes by result",
	},
	[]string{"result"},
)

type instrumented struct {
	next Cache
}

func WithMetrics(c Cache) Cache {
	return &instrumented{next: c}
}

func (i *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, ok, err := i.next.Get(ctx, key)

	switch {
	case err != nil:
		cacheRequests.WithLabelValues("error").Inc()
	case ok:
		cacheRequests.WithLabelValues("hit").Inc()
	default:
		cacheRequests.WithLabelValues("miss").Inc()
	}

	return value, ok, err
}

func (i *instrumented) Set(ctx context.Context, key string, value []byte) error {
	err := i.next.Set(ctx, key, value)
	if err != nil {
		cacheWrites.WithLabelValues("error").Inc()
	} else {
		cacheWrites.WithLabelValues("ok").Inc()
	}
	return err
}

func (i *instrumented) Close() error {
	return i.next.Close()
}
