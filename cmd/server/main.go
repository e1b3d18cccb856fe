// Command server runs the user service HTTP API.
//
// @title                       Vet Clinic User Service API
// @version                     1.0
// @description                 User registration, authentication and administration.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/vetclinic/user-service/internal/api"
	"github.com/vetclinic/user-service/internal/api/handler"
	"github.com/vetclinic/user-service/internal/core/ports"
	"github.com/vetclinic/user-service/internal/core/service"
	"github.com/vetclinic/user-service/internal/infrastructure/config"
	"github.com/vetclinic/user-service/internal/infrastructure/db/postgres"
	"github.com/vetclinic/user-service/internal/infrastructure/db/redis"
	"github.com/vetclinic/user-service/internal/infrastructure/queue"
	"github.com/vetclinic/user-service/internal/pkg/password"
	"github.com/vetclinic/user-service/internal/pkg/token"
	"github.com/vetclinic/user-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{Service: "user-service"})
		l.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "user-service",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Credential store ---
	db, err := postgres.Connect(ctx, postgres.Config{
		DSN:     cfg.DB.DSN(),
		Retries: cfg.DB.ConnectRetries,
		Delay:   cfg.DB.ConnectDelay,
	}, logger.Component("postgres"))
	if err != nil {
		return err
	}
	defer func() { _ = postgres.Close(db) }()

	if err := postgres.Migrate(ctx, db); err != nil {
		return err
	}

	userRepo := postgres.NewUserRepository(db)
	var roleRepo ports.RoleRepository = postgres.NewRoleRepository(db)

	readiness := []handler.Dependency{{
		Name:   "postgres",
		Pinger: handler.PingFunc(func(ctx context.Context) error { return postgres.Ping(ctx, db) }),
	}}

	// --- Optional role cache ---
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, role cache disabled")
		} else {
			defer func() { _ = rdb.Close() }()
			roleRepo = redis.NewRoleCache(roleRepo, rdb, cfg.Redis.RoleTTL, logger.Component("role_cache"))
			readiness = append(readiness, handler.Dependency{Name: "redis", Pinger: redisPinger(rdb)})
		}
	}

	if err := service.SeedRoles(ctx, roleRepo); err != nil {
		return err
	}

	hasher := password.NewHasher(cfg.Auth.BcryptCost)
	tokens := token.NewService(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)

	if _, err := service.BootstrapAdmin(ctx, userRepo, roleRepo, hasher, service.AdminAccount{
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
	}, logger.Component("bootstrap")); err != nil {
		return err
	}

	// --- Optional notifications ---
	var notifier ports.UserNotifier
	var dispatcher *queue.Dispatcher
	if cfg.RabbitMQ.URL != "" {
		publisher, err := queue.NewPublisher(ctx, queue.Config{
			URL:     cfg.RabbitMQ.URL,
			Queue:   cfg.RabbitMQ.Queue,
			Retries: 3,
			Delay:   2 * time.Second,
		}, logger.Component("rabbitmq"))
		if err != nil {
			log.Warn().Err(err).Msg("rabbitmq unavailable, user notifications disabled")
		} else {
			defer func() { _ = publisher.Close() }()
			dispatcher = queue.NewDispatcher(cfg.RabbitMQ.Workers, 0, publisher, logger.Component("dispatcher"))
			// Workers outlive the signal context so that pending events drain.
			dispatcher.Start(context.WithoutCancel(ctx))
			notifier = dispatcher
			readiness = append(readiness, handler.Dependency{Name: "rabbitmq", Pinger: publisher})
		}
	}

	authService := service.NewAuthService(userRepo, roleRepo, hasher, tokens, notifier, logger.Component("auth_service"))
	userService := service.NewUserService(userRepo, roleRepo, hasher, notifier, logger.Component("user_service"))

	e := api.NewRouter(api.Deps{
		Log:         logger.Component("http"),
		AuthService: authService,
		UserService: userService,
		Tokens:      tokens,
		Users:       userRepo,
		Readiness:   readiness,
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if dispatcher != nil {
		if err := dispatcher.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("notification dispatcher did not drain")
		}
	}

	log.Info().Msg("server stopped")
	return nil
}

func redisPinger(rdb *goredis.Client) handler.Pinger {
	return handler.PingFunc(func(ctx context.Context) error { return redis.Ping(ctx, rdb) })
}
