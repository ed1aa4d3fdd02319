package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Sodstar/mountain-pos/config"
	"github.com/Sodstar/mountain-pos/internal/cache"
	"github.com/Sodstar/mountain-pos/internal/controller"
	"github.com/Sodstar/mountain-pos/internal/domain"
	"github.com/Sodstar/mountain-pos/internal/dto"
	circuitbreaker "github.com/Sodstar/mountain-pos/internal/infrastructure/circuit-breaker"
	"github.com/Sodstar/mountain-pos/internal/infrastructure/database/elasticsearch"
	redisdb "github.com/Sodstar/mountain-pos/internal/infrastructure/database/redis"
	kafkaconn "github.com/Sodstar/mountain-pos/internal/infrastructure/message-queue/kafka"
	"github.com/Sodstar/mountain-pos/internal/infrastructure/tracing"
	"github.com/Sodstar/mountain-pos/internal/middleware"
	"github.com/Sodstar/mountain-pos/internal/repository"
	"github.com/Sodstar/mountain-pos/internal/service"
	"github.com/Sodstar/mountain-pos/pkg/response"
	"github.com/Sodstar/mountain-pos/pkg/utils"
	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	consumerGroupID    = "mountain-pos-search"
	searchBreakerReset = 30 * time.Second
)

type App struct {
	DB        *mongo.Database
	Config    *config.Config
	Server    *echo.Echo
	scheduler gocron.Scheduler
	closers   []func(ctx context.Context) error
}

// Start wires every dependency and blocks serving HTTP until the server is
// shut down.
func (app *App) Start(ctx context.Context) error {
	e := echo.New()
	e.HideBanner = true
	e.Validator = utils.NewCustomValidator()
	app.Server = e

	traceProvider, err := tracing.InitTracing(ctx, app.Config.TracingConfig.CollectorHost, app.Config.TracingConfig.ServiceName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize tracing")
	} else {
		app.closers = append(app.closers, traceProvider.Shutdown)

		tracer := traceProvider.Tracer(app.Config.TracingConfig.ServiceName)
		e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
				defer span.End()

				c.SetRequest(c.Request().WithContext(ctx))

				return next(c)
			}
		})
	}

	// Used empty string so that metrics are not prefixed with the service name
	e.Use(echoprometheus.NewMiddleware(""))
	e.Use(middleware.Logger)

	go func() {
		metrics := echo.New()
		metrics.HideBanner = true
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	if err := repository.EnsureIndexes(ctx, app.DB); err != nil {
		return fmt.Errorf("ensuring indexes: %w", err)
	}

	redisClient := app.connectRedis(ctx)

	memoryCache, queryCache, err := app.createQueryCache(redisClient)
	if err != nil {
		return err
	}

	publisher := app.createEventPublisher(ctx)
	searchRepo := app.createSearchRepository()

	var kafkaReader *kafka.Reader
	if app.Config.KafkaConfig.BrokerAddress != "" {
		kafkaReader = kafkaconn.CreateKafkaReader(app.Config.KafkaConfig, consumerGroupID)
		app.closers = append(app.closers, func(context.Context) error { return kafkaReader.Close() })
	}

	productRepo := repository.CreateNewMongoDBProductRepository(app.DB)
	categoryRepo := repository.CreateNewMongoDBCategoryRepository(app.DB)
	brandRepo := repository.CreateNewMongoDBBrandRepository(app.DB)
	driverRepo := repository.CreateNewMongoDBDriverRepository(app.DB)
	userRepo := repository.CreateNewMongoDBUserRepository(app.DB)

	cacheConf := app.Config.CacheConfig
	productSvc := service.CreateProductService(productRepo, categoryRepo, brandRepo, queryCache, publisher, cacheConf)
	categorySvc := service.CreateCategoryService(categoryRepo, queryCache, cacheConf)
	brandSvc := service.CreateBrandService(brandRepo, queryCache, cacheConf)
	driverSvc := service.CreateDriverService(driverRepo, queryCache, cacheConf)
	userSvc := service.CreateUserService(userRepo, queryCache, cacheConf)
	searchSvc := service.CreateSearchService(
		searchRepo,
		circuitbreaker.CreateCircuitBreaker[[]dto.ProductDocument]("product-search", searchBreakerReset),
		kafkaReader,
	)

	var notifier service.Notifier
	if app.Config.SMTPConfig.Enabled() {
		notifier = utils.NewMailer(app.Config.SMTPConfig)
	}
	alertSvc := service.CreateAlertService(productSvc, notifier)

	g := e.Group("/api/v1")
	admin := g.Group("/admin", middleware.JWT(app.Config.JWTSecret), middleware.RequireRole(domain.RoleAdmin))

	controller.CreateProductController(g, admin, productSvc, searchSvc)
	controller.CreateCategoryController(g, admin, categorySvc)
	controller.CreateBrandController(g, admin, brandSvc)
	controller.CreateDriverController(admin, driverSvc)
	controller.CreateUserController(admin, userSvc)

	if redisClient != nil {
		cartRepo := repository.CreateNewRedisCartRepository(redisClient, cacheConf.CartTTL)
		controller.CreateCartController(g, service.CreateCartService(cartRepo, productRepo))
	} else {
		log.Warn().Msg("REDIS_ADDRESS is not set, cart endpoints are disabled")
	}

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "Hello, World!", nil)
	})

	if err := app.startScheduler(ctx, memoryCache, alertSvc); err != nil {
		return err
	}

	if kafkaReader != nil {
		go searchSvc.ConsumeEvent(ctx)
	}

	if err := e.Start(fmt.Sprintf(":%s", app.Config.ServicePort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (app *App) connectRedis(ctx context.Context) *redis.Client {
	if app.Config.RedisConfig.Address == "" {
		return nil
	}

	client, err := redisdb.ConnectToRedis(ctx, app.Config.RedisConfig)
	if err != nil {
		log.Error().Err(err).Str("address", app.Config.RedisConfig.Address).Msg("Failed to connect to Redis")
		return nil
	}

	app.closers = append(app.closers, func(context.Context) error { return client.Close() })

	return client
}

// createQueryCache picks the cache backend. The in-process backend is also
// returned so its expired entries can be swept.
func (app *App) createQueryCache(redisClient *redis.Client) (*cache.MemoryCache, *cache.QueryCache, error) {
	conf := app.Config.CacheConfig

	switch conf.Driver {
	case "redis":
		if redisClient == nil {
			return nil, nil, errors.New("CACHE_DRIVER is redis but no Redis connection is available")
		}
		return nil, cache.NewQueryCache(cache.NewRedisCache(redisClient), conf.TTL), nil
	case "memory", "":
		memoryCache := cache.NewMemoryCache(clockwork.NewRealClock())
		return memoryCache, cache.NewQueryCache(memoryCache, conf.TTL), nil
	default:
		return nil, nil, fmt.Errorf("unknown CACHE_DRIVER %q", conf.Driver)
	}
}

func (app *App) createEventPublisher(ctx context.Context) service.EventPublisher {
	if app.Config.KafkaConfig.BrokerAddress == "" {
		log.Warn().Msg("BROKER_ADDRESS is not set, catalog events are not published")
		return service.NoopEventPublisher{}
	}

	producer, err := kafkaconn.CreateKafkaProducer(ctx, app.Config.KafkaConfig)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to Kafka, catalog events are not published")
		return service.NoopEventPublisher{}
	}

	app.closers = append(app.closers, func(context.Context) error { return producer.Close() })

	return service.CreateKafkaEventPublisher(producer)
}

// createSearchRepository returns a nil interface when the search cluster is
// not configured or unreachable.
func (app *App) createSearchRepository() repository.SearchRepository {
	if app.Config.ElasticsearchConfig.DBHost == "" {
		log.Warn().Msg("ELASTIC_SEARCH_HOST is not set, product search is disabled")
		return nil
	}

	client, err := elasticsearch.CreateElasticsearchClient(app.Config.ElasticsearchConfig)
	if err != nil {
		return nil
	}

	return repository.CreateNewElasticSearchRepository(client, app.Config.ElasticsearchConfig.Index)
}

func (app *App) startScheduler(ctx context.Context, memoryCache *cache.MemoryCache, alertSvc service.AlertService) error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}

	if memoryCache != nil {
		_, err = s.NewJob(
			gocron.DurationJob(app.Config.JobConfig.CacheSweepInterval),
			gocron.NewTask(func() {
				if n := memoryCache.Sweep(); n > 0 {
					log.Debug().Str("component", "CacheSweep").Int("removed", n).Msg("")
				}
			}),
		)
		if err != nil {
			return fmt.Errorf("scheduling cache sweep: %w", err)
		}
	}

	_, err = s.NewJob(
		gocron.DurationJob(app.Config.JobConfig.LowStockInterval),
		gocron.NewTask(func() {
			if err := alertSvc.NotifyLowStock(ctx); err != nil {
				log.Error().Err(err).Str("component", "LowStockAlert").Msg("")
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("scheduling low stock alert: %w", err)
	}

	s.Start()
	app.scheduler = s

	return nil
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errList []error

	if app.scheduler != nil {
		errList = append(errList, app.scheduler.Shutdown())
	}

	if app.Server != nil {
		errList = append(errList, app.Server.Shutdown(ctx))
	}

	for i := len(app.closers) - 1; i >= 0; i-- {
		errList = append(errList, app.closers[i](ctx))
	}

	return errors.Join(errList...)
}
