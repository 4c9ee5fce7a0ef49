package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/Hende2/Biodevices-Back-End/internal/config"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

var dbConn *sql.DB
var dbType string

// Init opens the shared database connection and runs migrations. The
// connection is process-wide: calling Init again when a connection is
// already established is a no-op, so every handler reuses the same
// handle for the lifetime of the process.
func Init(cfg *config.Config) error {
	if dbConn != nil {
		return nil
	}

	var db *sql.DB
	var err error

	switch cfg.DatabaseType {
	case "postgres":
		db, err = initPostgreSQL(cfg)
	case "sqlite", "":
		db, err = initSQLite(cfg)
	default:
		return fmt.Errorf("unsupported database type: %s", cfg.DatabaseType)
	}
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %v", err)
	}

	if err = RunMigrations(db, cfg.DatabaseType); err != nil {
		db.Close()
		return fmt.Errorf("failed to run migrations: %v", err)
	}

	dbConn = db
	dbType = cfg.DatabaseType
	if dbType == "" {
		dbType = "sqlite"
	}
	log.Printf("Database initialized (type: %s)", dbType)
	return nil
}

// initPostgreSQL opens a PostgreSQL connection pool
func initPostgreSQL(cfg *config.Config) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DatabaseHost,
		cfg.DatabasePort,
		cfg.DatabaseUser,
		cfg.DatabasePassword,
		cfg.DatabaseName,
		cfg.DatabaseSSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL connection: %v", err)
	}

	if cfg.DatabaseMaxConns > 0 {
		db.SetMaxOpenConns(cfg.DatabaseMaxConns)
	}
	if cfg.DatabaseMaxIdle > 0 {
		db.SetMaxIdleConns(cfg.DatabaseMaxIdle)
	}
	if cfg.DatabaseConnMaxLifetime != "" && cfg.DatabaseConnMaxLifetime != "0" {
		if duration, err := time.ParseDuration(cfg.DatabaseConnMaxLifetime); err == nil {
			db.SetConnMaxLifetime(duration)
		}
	}

	return db, nil
}

// initSQLite opens the SQLite database file, creating its directory
// when needed
func initSQLite(cfg *config.Config) (*sql.DB, error) {
	dataDir := filepath.Dir(cfg.DatabasePath)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_foreign_keys=on", cfg.DatabasePath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %v", err)
	}

	// SQLite allows a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return db, nil
}

// GetConnection returns the shared database connection
func GetConnection() *sql.DB {
	return dbConn
}

// Close closes the database connection
func Close() error {
	if dbConn != nil {
		err := dbConn.Close()
		dbConn = nil
		return err
	}
	return nil
}
