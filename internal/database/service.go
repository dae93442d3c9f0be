package database

import (
	"context"
	"database/sql"
	"fmt"

	"resnet-portal/internal/models"
	"resnet-portal/internal/store"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Compile-time check: *Service must satisfy store.Connector.
var _ store.Connector = (*Service)(nil)

// Service is the relational backend connector. It owns the raw account,
// binding, traffic-log and ledger rows for one deployment.
type Service struct {
	name string
	db   *sql.DB
}

func NewService(ctx context.Context, name string, cfg models.DatabaseConfig) (*Service, error) {
	if name == "" {
		return nil, fmt.Errorf("deployment name cannot be empty")
	}
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	if cfg.MaxOpenConns <= 0 {
		return nil, fmt.Errorf("max open connections must be positive, got %d", cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns < 0 {
		return nil, fmt.Errorf("max idle connections cannot be negative, got %d", cfg.MaxIdleConns)
	}
	if cfg.PingTimeout <= 0 {
		return nil, fmt.Errorf("ping timeout must be positive, got %v", cfg.PingTimeout)
	}

	zap.L().Info("Opening SQLite database",
		zap.String("deployment", name), zap.String("file", cfg.Path))
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=1000")
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, cerr
		}
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	service := &Service{name: name, db: db}
	if err := service.initSchema(); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, cerr
		}
		return nil, fmt.Errorf("unable to initialize schema: %w", err)
	}

	if cfg.SeedDemoData {
		if err := service.seedDemoData(); err != nil {
			zap.L().Warn("Failed to seed demo data", zap.Error(err))
		}
	}

	zap.L().Info("Database connector initialized", zap.String("deployment", name))
	return service, nil
}

func (s *Service) Name() string { return s.name }

func (s *Service) Close() {
	if err := s.db.Close(); err != nil {
		zap.L().Warn("Failed to close database connection",
			zap.String("deployment", s.name), zap.Error(err))
	}
}

func (s *Service) initSchema() error {
	schema := `
	-- Accounts and their dorm locations
	CREATE TABLE IF NOT EXISTS access (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		building TEXT NOT NULL DEFAULT '',
		floor TEXT NOT NULL DEFAULT '',
		flat TEXT NOT NULL DEFAULT '',
		room TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS account (
		account TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		traffic_balance INTEGER NOT NULL DEFAULT 10000000000,
		access_id INTEGER REFERENCES access(id)
	);

	-- IP bindings; account stays NULL for unclaimed addresses
	CREATE TABLE IF NOT EXISTS ip (
		ip TEXT PRIMARY KEY,
		account TEXT REFERENCES account(account)
	);

	-- MAC bindings, stored in canonical lowercase form
	CREATE TABLE IF NOT EXISTS mac (
		id TEXT PRIMARY KEY,
		mac TEXT NOT NULL,
		account TEXT REFERENCES account(account)
	);
	CREATE INDEX IF NOT EXISTS idx_mac_account ON mac(account);

	-- Per-day traffic usage; at most one row per account and date
	CREATE TABLE IF NOT EXISTS traffic_log (
		id TEXT PRIMARY KEY,
		account TEXT NOT NULL REFERENCES account(account),
		date TEXT NOT NULL,
		bytes_in INTEGER NOT NULL DEFAULT 0,
		bytes_out INTEGER NOT NULL DEFAULT 0,
		UNIQUE(account, date)
	);
	CREATE INDEX IF NOT EXISTS idx_traffic_log_account_date ON traffic_log(account, date);

	-- Financial ledgers: statements and fees live in separate tables
	CREATE TABLE IF NOT EXISTS account_statement_log (
		id TEXT PRIMARY KEY,
		account TEXT NOT NULL REFERENCES account(account),
		amount TEXT NOT NULL,
		timestamp TIMESTAMP NOT NULL,
		description TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_statement_account ON account_statement_log(account);

	CREATE TABLE IF NOT EXISTS account_fee_log (
		id TEXT PRIMARY KEY,
		account TEXT NOT NULL REFERENCES account(account),
		amount TEXT NOT NULL,
		timestamp TIMESTAMP NOT NULL,
		description TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_fee_account ON account_fee_log(account);

	-- Connection state reported by the deployment
	CREATE TABLE IF NOT EXISTS account_property (
		account TEXT PRIMARY KEY REFERENCES account(account),
		active INTEGER NOT NULL DEFAULT 0
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// fail tags a low-level database error so callers can distinguish a
// broken backend from an absent row.
func (s *Service) fail(op string, err error) error {
	return fmt.Errorf("%s: %s: %w: %w", s.name, op, store.ErrBackendUnavailable, err)
}
