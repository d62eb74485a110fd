package di

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Dannesh12/urban-slot-finder/internal/handler"
	"github.com/Dannesh12/urban-slot-finder/internal/middleware"
	"github.com/Dannesh12/urban-slot-finder/internal/notify"
	"github.com/Dannesh12/urban-slot-finder/internal/repository"
	"github.com/Dannesh12/urban-slot-finder/internal/service"
	"github.com/Dannesh12/urban-slot-finder/pkg/config"
	"github.com/Dannesh12/urban-slot-finder/pkg/database"
	"github.com/Dannesh12/urban-slot-finder/pkg/kvstore"
	"github.com/Dannesh12/urban-slot-finder/pkg/logger"
	"github.com/Dannesh12/urban-slot-finder/pkg/mongodb"
	"github.com/Dannesh12/urban-slot-finder/pkg/redis"
	"github.com/Dannesh12/urban-slot-finder/pkg/retry"
)

const recentNotifications = 50

// Container holds all dependencies of the service
type Container struct {
	Config *config.Config
	Log    *logger.Logger

	// Infrastructure; nil unless the configuration needs it
	Redis    *redis.Client
	DB       *database.PostgresDB
	Mongo    *mongodb.Client
	Kafka    *notify.KafkaNotifier
	Store    kvstore.Store
	Recorder *notify.Recorder

	// Repositories
	Repos     *repository.Repositories
	Directory *repository.Directory

	// Services
	Session          *service.SessionManager
	TokenService     service.TokenService
	DashboardService service.DashboardService
	SlotService      service.SlotService
	BookingService   service.BookingService
	EarningService   service.EarningService

	// Handlers
	HealthHandler    *handler.HealthHandler
	AuthHandler      *handler.AuthHandler
	DashboardHandler *handler.DashboardHandler
	SlotHandler      *handler.SlotHandler
	BookingHandler   *handler.BookingHandler
	EarningHandler   *handler.EarningHandler

	AuthLimiter *middleware.IPRateLimiter
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	Config *config.Config
	Log    *logger.Logger
	// Clock defaults to time.Now
	Clock func() time.Time
	// Store skips connecting to the configured backend
	Store kvstore.Store
	// BcryptCost defaults to bcrypt.DefaultCost
	BcryptCost int
}

// NewContainer connects the storage backend and builds every component for
// the configured variant. The session is loaded before it returns.
func NewContainer(ctx context.Context, cc *ContainerConfig) (*Container, error) {
	cfg := cc.Config
	log := cc.Log
	if log == nil {
		log = logger.Get()
	}
	clock := cc.Clock
	if clock == nil {
		clock = time.Now
	}

	c := &Container{Config: cfg, Log: log, Store: cc.Store}

	if c.Store == nil {
		if err := c.connectStore(ctx); err != nil {
			c.Close(ctx)
			return nil, err
		}
	}

	if err := c.buildNotifier(ctx); err != nil {
		c.Close(ctx)
		return nil, err
	}

	c.Repos = repository.New(c.Store, cfg.App.Variant, clock, log)
	c.Directory = repository.NewDirectory(cfg.App.Variant, clock())

	notifiers := notify.Multi{notify.NewLogNotifier(log), c.Recorder}
	if c.Kafka != nil {
		notifiers = append(notifiers, c.Kafka)
	}

	session, err := service.NewSessionManager(
		c.Repos.Session,
		c.Directory,
		c.Repos.Referrals,
		notifiers,
		log,
		&service.SessionConfig{
			Variant:      cfg.App.Variant,
			DemoPassword: cfg.Auth.DemoPassword,
			Latency:      cfg.Auth.SimulatedLatency,
			BcryptCost:   cc.BcryptCost,
			Clock:        clock,
		},
	)
	if err != nil {
		c.Close(ctx)
		return nil, err
	}
	c.Session = session
	c.Session.Load(ctx)

	c.TokenService = service.NewTokenService(&service.TokenConfig{
		Secret: cfg.JWT.Secret,
		TTL:    cfg.JWT.AccessTokenTTL,
		Issuer: cfg.JWT.Issuer,
		Clock:  clock,
	})
	c.DashboardService = service.NewDashboardService(cfg.App.Variant, c.Repos, clock)

	c.HealthHandler = handler.NewHealthHandler(cfg.App.Name, cfg.Storage.Driver, c.Store)
	c.AuthHandler = handler.NewAuthHandler(c.Session, c.TokenService, c.Recorder)
	c.DashboardHandler = handler.NewDashboardHandler(c.DashboardService)

	if cfg.IsEarning() {
		c.EarningService = service.NewEarningService(c.Session, c.Repos, &service.EarningConfig{
			ActivationFee: cfg.Earning.ActivationFee,
			ReferralBonus: cfg.Earning.ReferralBonus,
			MinWithdrawal: cfg.Earning.MinWithdrawal,
			PublicURL:     cfg.App.PublicURL,
			Clock:         clock,
		}, log)
		c.EarningHandler = handler.NewEarningHandler(c.EarningService)
	} else {
		c.SlotService = service.NewSlotService(c.Repos.Slots, clock, log)
		c.BookingService = service.NewBookingService(c.Repos.Bookings, c.Repos.Slots, clock, log)
		c.SlotHandler = handler.NewSlotHandler(c.SlotService)
		c.BookingHandler = handler.NewBookingHandler(c.BookingService)
	}

	if cfg.RateLimit.Enabled {
		c.AuthLimiter = middleware.NewIPRateLimiter(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		})
	}

	return c, nil
}

func (c *Container) connectStore(ctx context.Context) error {
	cfg := c.Config
	var deps kvstore.Deps

	switch cfg.Storage.Driver {
	case config.StorageRedis:
		client, err := redis.NewClient(ctx, &redis.Config{
			Host:          cfg.Redis.Host,
			Port:          cfg.Redis.Port,
			Password:      cfg.Redis.Password,
			DB:            cfg.Redis.DB,
			PoolSize:      cfg.Redis.PoolSize,
			MinIdleConns:  cfg.Redis.MinIdleConns,
			DialTimeout:   cfg.Redis.DialTimeout,
			ReadTimeout:   cfg.Redis.ReadTimeout,
			WriteTimeout:  cfg.Redis.WriteTimeout,
			MaxRetries:    3,
			RetryInterval: time.Second,
		})
		if err != nil {
			return fmt.Errorf("redis connection failed: %w", err)
		}
		c.Redis = client
		deps.Redis = client
		c.Log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))

	case config.StoragePostgres:
		db, err := database.NewPostgres(ctx, &database.PostgresConfig{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			Database:        cfg.Database.DBName,
			SSLMode:         cfg.Database.SSLMode,
			MaxConns:        int32(cfg.Database.MaxOpenConns),
			MinConns:        int32(cfg.Database.MaxIdleConns),
			MaxConnLifetime: cfg.Database.ConnMaxLifetime,
			MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
			ConnectTimeout:  5 * time.Second,
			MaxRetries:      3,
			RetryInterval:   time.Second,
		})
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		c.DB = db
		deps.Postgres = db
		c.Log.Info("Database connected", zap.String("host", cfg.Database.Host), zap.String("dbname", cfg.Database.DBName))

	case config.StorageMongo:
		client, err := mongodb.NewClient(ctx, &mongodb.Config{
			URI:            cfg.MongoDB.URI,
			Database:       cfg.MongoDB.Database,
			ConnectTimeout: 10 * time.Second,
			MaxRetries:     3,
			RetryInterval:  time.Second,
		})
		if err != nil {
			return fmt.Errorf("mongodb connection failed: %w", err)
		}
		c.Mongo = client
		deps.Mongo = client
		c.Log.Info("MongoDB connected", zap.String("database", cfg.MongoDB.Database))
	}

	store, err := kvstore.New(ctx, kvstore.Config{
		Driver:    cfg.Storage.Driver,
		Namespace: cfg.Storage.Namespace,
	}, deps)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Storage.Driver, err)
	}
	c.Store = store
	return nil
}

func (c *Container) buildNotifier(ctx context.Context) error {
	c.Recorder = notify.NewRecorder(recentNotifications)
	if !c.Config.Notify.KafkaEnabled {
		return nil
	}

	k, err := notify.NewKafkaNotifier(ctx, &notify.KafkaConfig{
		Brokers:  c.Config.Kafka.Brokers,
		ClientID: c.Config.Kafka.ClientID,
		Topic:    c.Config.Notify.Topic,
		Retry:    retry.Fixed(2, 200*time.Millisecond),
	})
	if err != nil {
		return fmt.Errorf("kafka notifier: %w", err)
	}
	c.Kafka = k
	c.Log.Info("Kafka notifier enabled", zap.Strings("brokers", c.Config.Kafka.Brokers), zap.String("topic", c.Config.Notify.Topic))
	return nil
}

// Close releases every connection the container opened
func (c *Container) Close(ctx context.Context) {
	if c.Kafka != nil {
		c.Kafka.Close()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.Warn("Failed to close redis", zap.Error(err))
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	if c.Mongo != nil {
		if err := c.Mongo.Close(ctx); err != nil {
			c.Log.Warn("Failed to close mongodb", zap.Error(err))
		}
	}
}
