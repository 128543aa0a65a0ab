package database

import (
	"fmt"
	"log"
	"net"
	"path/filepath"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tradezlk/vendorgo/internal/config"
)

const (
	embeddedDataPath = "./db_data"
	embeddedPort     = 5433
)

// DB wraps gorm.DB and includes a reference to an embedded process if active
type DB struct {
	*gorm.DB
	embedded *embeddedpostgres.EmbeddedPostgres
}

// Connect opens the portal database. With PG_PASSWORD set it connects to
// the configured external PostgreSQL; otherwise it boots a zero-config
// embedded instance so the portal runs out of the box.
func Connect(cfg config.DatabaseConfig) (*DB, error) {
	if cfg.Password != "" {
		return connectExternal(cfg)
	}
	return connectEmbedded(cfg)
}

func connectExternal(cfg config.DatabaseConfig) (*DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Database)

	gormDB, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("connect to postgres at %s:%s: %w", cfg.Host, cfg.Port, err)
	}
	log.Printf("✅ Connected to external PostgreSQL (%s:%s/%s)", cfg.Host, cfg.Port, cfg.Database)
	return &DB{DB: gormDB}, nil
}

func connectEmbedded(cfg config.DatabaseConfig) (*DB, error) {
	dataPath, err := filepath.Abs(embeddedDataPath)
	if err != nil {
		return nil, err
	}

	embedded := embeddedpostgres.NewDatabase(embeddedpostgres.DefaultConfig().
		Username(cfg.Username).
		Password("postgres").
		Database(cfg.Database).
		Port(embeddedPort).
		DataPath(dataPath).
		StartTimeout(45 * time.Second))

	if !portFree(embeddedPort) {
		log.Printf("⚠️  Port %d already in use, assuming embedded PostgreSQL is running", embeddedPort)
	} else if err := embedded.Start(); err != nil {
		return nil, fmt.Errorf("start embedded postgres: %w", err)
	}

	dsn := fmt.Sprintf("host=localhost port=%d user=%s password=postgres dbname=%s sslmode=disable",
		embeddedPort, cfg.Username, cfg.Database)

	gormDB, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		_ = embedded.Stop()
		return nil, fmt.Errorf("connect to embedded postgres: %w", err)
	}

	log.Printf("✅ Embedded PostgreSQL ready (port %d, data at %s)", embeddedPort, dataPath)
	return &DB{DB: gormDB, embedded: embedded}, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
}

func portFree(port int) bool {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return false
	}
	_ = ln.Close()
	return true
}

// Close shuts down the connection pool and, when running embedded, the
// PostgreSQL process itself.
func (db *DB) Close() error {
	if sqlDB, err := db.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if db.embedded != nil {
		return db.embedded.Stop()
	}
	return nil
}
