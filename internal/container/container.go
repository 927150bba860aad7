// Package container wires the application together. Each XxxPackage
// function registers the providers for one concern; binaries compose the
// packages they need.
package container

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jaevor/go-nanoid"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/throttle-go/internal/audit"
	auditstore "github.com/serroba/throttle-go/internal/audit/store"
	"github.com/serroba/throttle-go/internal/cache"
	"github.com/serroba/throttle-go/internal/handlers"
	"github.com/serroba/throttle-go/internal/health"
	"github.com/serroba/throttle-go/internal/messaging"
	"github.com/serroba/throttle-go/internal/middleware"
	"github.com/serroba/throttle-go/internal/throttle"
	"go.uber.org/zap"
)

// Options holds the configuration for both binaries.
type Options struct {
	Port          int    `default:"8888"           help:"Port to listen on"                                      short:"p"`
	RedisAddr     string `default:"localhost:6379" help:"Redis server address"                                   short:"r"`
	PostgresDSN   string `default:""               help:"Postgres DSN for the audit store; empty logs events"`
	LogFormat     string `default:"console"        help:"Log format: console or json"`
	LoginLimit    int    `default:"5"              help:"Failed login attempts allowed per window"`
	LoginWindow   int    `default:"300"            help:"Login throttle window in seconds"`
	RequestLimit  int    `default:"100"            help:"Requests allowed per client per window"`
	RequestWindow int    `default:"60"             help:"Request throttle window in seconds"`
	TokenLength   int    `default:"16"             help:"Length of generated session tokens"`
	DemoUsername  string `default:"demo"           help:"Demo account username"`
	DemoPassword  string `default:"demo"           help:"Demo account password"`
}

const (
	loginKeyPrefix   = "throttle:login:"
	requestKeyPrefix = "throttle:req:"
	auditGroup       = "audit"
)

// LoggerPackage provides the zap logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		options := do.MustInvoke[*Options](i)

		if options.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

// RedisPackage provides the shared Redis client.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		options := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{
			Addr: options.RedisAddr,
		}), nil
	})
}

// CachePackage provides the throttle cache backed by Redis.
func CachePackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (throttle.Cache, error) {
		client := do.MustInvoke[*redis.Client](i)

		return cache.NewRedis(client), nil
	})
}

// PostgresPackage provides the Postgres pool for the audit store. Only
// invoked when a DSN is configured.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*pgxpool.Pool, error) {
		options := do.MustInvoke[*Options](i)

		return pgxpool.New(context.Background(), options.PostgresDSN)
	})
}

// PublisherGroupPackage provides the audit event publisher over Redis
// streams.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		client := do.MustInvoke[*redis.Client](i)

		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client: client,
		}, watermill.NopLogger{})
		if err != nil {
			return nil, err
		}

		return messaging.NewPublisherGroup(publisher), nil
	})
}

// HTTPPackage provides the router and the API with all routes and
// middleware registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		options := do.MustInvoke[*Options](i)
		router := do.MustInvoke[*chi.Mux](i)
		logger := do.MustInvoke[*zap.Logger](i)
		client := do.MustInvoke[*redis.Client](i)
		throttleCache := do.MustInvoke[throttle.Cache](i)
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		api := humachi.New(router, huma.DefaultConfig("Throttle Service", "1.0.0"))

		api.UseMiddleware(middleware.RequestMeta(api))
		api.UseMiddleware(middleware.Throttle(api, middleware.Config{
			Limit:     uint64(options.RequestLimit),
			Window:    time.Duration(options.RequestWindow) * time.Second,
			KeyPrefix: requestKeyPrefix,
		}, throttleCache, logger))

		generateToken, err := nanoid.Standard(options.TokenLength)
		if err != nil {
			return nil, err
		}

		policy := handlers.ThrottlePolicy{
			Limit:     uint64(options.LoginLimit),
			Window:    time.Duration(options.LoginWindow) * time.Second,
			KeyPrefix: loginKeyPrefix,
		}

		verifier := handlers.NewStaticVerifier(map[string]string{
			options.DemoUsername: options.DemoPassword,
		})

		publisher := group.Publisher()
		publishAttempt := messaging.NewPublishFunc[audit.LoginAttemptEvent](publisher, audit.TopicLoginAttempt)
		publishExceeded := messaging.NewPublishFunc[audit.LimitExceededEvent](publisher, audit.TopicLimitExceeded)
		publishReset := messaging.NewPublishFunc[audit.ThrottleResetEvent](publisher, audit.TopicThrottleReset)

		authHandler := handlers.NewAuthHandler(
			throttleCache, policy, verifier, handlers.TokenGenerator(generateToken),
			publishAttempt, publishExceeded, logger,
		)
		throttleHandler := handlers.NewThrottleHandler(throttleCache, policy, publishReset, logger)

		handlers.RegisterRoutes(api, authHandler, throttleHandler)
		health.RegisterRoutes(api, health.NewHandler(health.NewRedisChecker(client)))

		return api, nil
	})
}

// ConsumerGroupPackage provides the audit consumer group reading from Redis
// streams and persisting through the configured store.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		options := do.MustInvoke[*Options](i)
		client := do.MustInvoke[*redis.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)

		subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        client,
			ConsumerGroup: auditGroup,
		}, watermill.NopLogger{})
		if err != nil {
			return nil, err
		}

		var eventStore audit.Store
		if options.PostgresDSN != "" {
			pool := do.MustInvoke[*pgxpool.Pool](i)
			eventStore = auditstore.NewPostgres(pool)
		} else {
			eventStore = auditstore.NewNoop(logger)
		}

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(messaging.NewConsumer(subscriber, audit.TopicLoginAttempt, audit.AttemptHandler(eventStore), logger))
		group.Add(messaging.NewConsumer(subscriber, audit.TopicLimitExceeded, audit.ExceededHandler(eventStore), logger))
		group.Add(messaging.NewConsumer(subscriber, audit.TopicThrottleReset, audit.ResetHandler(eventStore), logger))

		return group, nil
	})
}
