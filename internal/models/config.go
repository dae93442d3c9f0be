package models

import "time"

// Config is the full runtime configuration assembled by the config package.
type Config struct {
	Database DatabaseConfig
	Portal   PortalConfig
}

// DatabaseConfig holds the settings for the relational backend connector.
type DatabaseConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
	SeedDemoData    bool
}

// PortalConfig holds the portal-level settings consumed by the core.
type PortalConfig struct {
	// DailyCreditBytes is the per-day traffic credit grant. It comes from
	// deployment configuration, not from code.
	DailyCreditBytes int64
	// MailDomain is appended to the account id to derive the member mail
	// address.
	MailDomain      string
	Locale          string
	DeploymentsFile string
	ListenAddr      string
}
