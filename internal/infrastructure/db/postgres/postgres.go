package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const pingTimeout = 5 * time.Second

// Config captures the settings required to establish a PostgreSQL connection.
type Config struct {
	DSN     string
	Retries int
	Delay   time.Duration
}

// Connect opens the database and verifies connectivity with a ping. Failed
// attempts are retried cfg.Retries times with a fixed cfg.Delay between them.
func Connect(ctx context.Context, cfg Config, log zerolog.Logger) (*gorm.DB, error) {
	return connectWithRetry(ctx, cfg, log, func(ctx context.Context) (*gorm.DB, error) {
		return open(ctx, postgres.Open(cfg.DSN))
	})
}

func connectWithRetry(
	ctx context.Context,
	cfg Config,
	log zerolog.Logger,
	dial func(ctx context.Context) (*gorm.DB, error),
) (*gorm.DB, error) {
	attempts := cfg.Retries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		db, err := dial(ctx)
		if err == nil {
			log.Info().Int("attempt", attempt).Msg("database connected")
			return db, nil
		}
		lastErr = err

		log.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_attempts", attempts).
			Dur("retry_in", cfg.Delay).
			Msg("database connection failed")

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.Delay):
		}
	}
	return nil, fmt.Errorf("postgres connect after %d attempts: %w", attempts, lastErr)
}

func open(ctx context.Context, dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, gormConfig())
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}

	if err := Ping(ctx, db); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}
	return db, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc:                func() time.Time { return time.Now().UTC() },
	}
}

// Ping checks that the underlying connection pool can reach the server.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("postgres pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		return fmt.Errorf("postgres ping: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate creates or updates the roles and users tables.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&roleModel{}, &userModel{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
