package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/state244/hub/internal/infrastructure/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database is the hub's GORM handle together with its connection pool
type Database struct {
	DB   *gorm.DB
	pool *sql.DB
}

// poolSettings sizes database/sql's pool
type poolSettings struct {
	maxOpen  int
	maxIdle  int
	lifetime time.Duration
	idleTime time.Duration
}

func poolFor(cfg *config.DatabaseConfig) poolSettings {
	return poolSettings{
		maxOpen:  cfg.MaxOpenConns,
		maxIdle:  cfg.MaxIdleConns,
		lifetime: time.Duration(cfg.ConnMaxLifetime) * time.Minute,
		idleTime: time.Duration(cfg.ConnMaxIdleTime) * time.Minute,
	}
}

func (p poolSettings) apply(db *sql.DB) {
	db.SetMaxOpenConns(p.maxOpen)
	db.SetMaxIdleConns(p.maxIdle)
	db.SetConnMaxLifetime(p.lifetime)
	db.SetConnMaxIdleTime(p.idleTime)
}

// Open connects to PostgreSQL, sizes the pool and waits for a successful
// ping. SQL is reported through gormLogger; nil keeps GORM quiet.
func Open(ctx context.Context, cfg *config.DatabaseConfig, gormLogger logger.Interface) (*Database, error) {
	return open(ctx, postgres.Open(cfg.DSN()), poolFor(cfg), gormLogger)
}

func open(ctx context.Context, dialector gorm.Dialector, pool poolSettings, gormLogger logger.Interface) (*Database, error) {
	if gormLogger == nil {
		gormLogger = logger.Discard
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		// unique violations surface as gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	pool.apply(sqlDB)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Database{DB: db, pool: sqlDB}, nil
}

// Pool exposes database/sql for pool metrics and readiness checks
func (d *Database) Pool() *sql.DB {
	return d.pool
}

// Ping reports whether the database still answers
func (d *Database) Ping(ctx context.Context) error {
	return d.pool.PingContext(ctx)
}

// Close releases every pooled connection
func (d *Database) Close() error {
	return d.pool.Close()
}
