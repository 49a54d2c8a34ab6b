package main

import (
	"fmt"
	"os"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"traveltime-service/internal/batch"
	"traveltime-service/internal/cache"
	"traveltime-service/internal/cache/l1"
	"traveltime-service/internal/cache/l2"
	"traveltime-service/internal/cache/multi"
	"traveltime-service/internal/cache/noop"
	"traveltime-service/internal/config"
	"traveltime-service/internal/httpserver"
	"traveltime-service/internal/interfaces"
	"traveltime-service/internal/resolver"
	"traveltime-service/internal/transport"
)

// CompositionRoot holds all application dependencies and provides a
// centralized place for dependency injection and service initialization.
type CompositionRoot struct {
	Config *config.Config
	Logger *zap.Logger
	Clock  clock.Clock

	// Cache components
	L1Cache    interfaces.Cache
	L2Cache    interfaces.Cache
	Cache      interfaces.Cache
	KeyBuilder interfaces.KeyBuilder

	// Domain components
	Transport  interfaces.TransportClient
	Resolver   *resolver.Resolver
	Engine     *batch.Engine
	HTTPServer *httpserver.Server

	redisClient interfaces.RedisClient
}

// NewCompositionRoot creates and wires all application dependencies.
//
// Initialization order:
// 1. Logger (needed by all other components)
// 2. Configuration
// 3. Cache tiers (L1 memory, L2 redis, composed)
// 4. Transport client (demo or journey planner)
// 5. Resolver and batch engine
// 6. HTTP server
func NewCompositionRoot() (*CompositionRoot, error) {
	root := &CompositionRoot{Clock: clock.New()}

	if err := root.initLogger(); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := root.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := root.initCacheComponents(); err != nil {
		return nil, fmt.Errorf("failed to initialize cache components: %w", err)
	}

	root.initTransport()
	root.initServices()

	return root, nil
}

func (cr *CompositionRoot) initLogger() error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	cr.Logger = logger
	return nil
}

func (cr *CompositionRoot) loadConfig() error {
	configPath := os.Getenv("TRAVELTIME_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(configPath, cr.Logger)
	if err != nil {
		return err
	}
	cr.Config = cfg
	return nil
}

func (cr *CompositionRoot) initCacheComponents() error {
	cr.KeyBuilder = cache.NewKeyBuilder()

	ttl := cr.Config.Cache.TTL

	if cr.Config.Cache.Memory.Enabled {
		memCache, err := l1.NewBigCache(&cr.Config.Cache.Memory, ttl.Std(), cr.Clock, cr.Logger)
		if err != nil {
			return fmt.Errorf("failed to create L1 cache: %w", err)
		}
		cr.L1Cache = memCache
	} else {
		cr.L1Cache = noop.NewNoOpCache()
	}

	if cr.Config.Cache.Redis.Enabled {
		client, err := l2.NewRedisClient(&cr.Config.Cache.Redis)
		if err != nil {
			return fmt.Errorf("failed to create redis client: %w", err)
		}
		cr.redisClient = client
		cr.L2Cache = l2.NewRedisCache(&cr.Config.Cache.Redis, ttl, client, cr.Clock, cr.Logger)
	} else {
		cr.L2Cache = noop.NewNoOpCache()
	}

	cr.Cache = multi.NewMultiCache(
		[]interfaces.Cache{cr.L1Cache, cr.L2Cache},
		cr.Logger,
		cr.Config.Cache.PropagateHits,
	)

	return nil
}

func (cr *CompositionRoot) initTransport() {
	if cr.Config.Transport.DemoMode {
		cr.Transport = transport.NewDemoClient(cr.Clock)
		cr.Logger.Info("Transport running in demo mode")
		return
	}
	cr.Transport = transport.NewHTTPClient(&cr.Config.Transport.Provider, cr.Logger)
}

func (cr *CompositionRoot) initServices() {
	cr.Resolver = resolver.New(
		&cr.Config.Transport,
		cr.Config.Retry,
		cr.KeyBuilder,
		cr.Cache,
		cr.Transport,
		cr.Clock,
		cr.Logger,
	)
	cr.Engine = batch.NewEngine(cr.Resolver, &cr.Config.Transport, cr.Logger)
	cr.HTTPServer = httpserver.NewServer(cr.Resolver, cr.Engine, cr.Logger)
}

// Cleanup releases resources held by the composition root
func (cr *CompositionRoot) Cleanup() error {
	if closer, ok := cr.L1Cache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			return err
		}
	}
	if cr.redisClient != nil {
		return cr.redisClient.Close()
	}
	return nil
}
