package store

import (
	"context"
	"errors"
	"time"

	"resnet-portal/internal/models"
)

// Sentinel errors shared across all backend implementations.
var (
	// ErrAccountNotFound means no configured backend owns the identifier.
	ErrAccountNotFound = errors.New("no backend owns this account")
	// ErrBackendUnavailable means a connector failed and the call must not
	// fall back to stale data.
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrDataInconsistency means a backend returned rows that violate the
	// data model (duplicate traffic dates, ledger rows missing required
	// fields). Such rows are never silently coalesced.
	ErrDataInconsistency = errors.New("inconsistent backend data")
)

// Connector is the contract every backend deployment must satisfy. Absent
// single results are returned as (nil, nil); only real failures produce
// errors. An unclaimed IP is an absent result for FindByIP, not an error.
type Connector interface {
	// Name tags the deployment (e.g. "south-campus"). It ends up in the
	// Backend field of every account the connector returns.
	Name() string

	// --- Accounts ---
	ListAccounts(ctx context.Context) ([]models.Account, error)
	FindAccount(ctx context.Context, id string) (*models.Account, error)
	FindByIP(ctx context.Context, ip string) (*models.Account, error)
	// FindByMAC expects the MAC already in canonical lowercase form.
	FindByMAC(ctx context.Context, mac string) (*models.Account, error)

	// --- Traffic ---
	TrafficLogs(ctx context.Context, accountID string, from, to time.Time) ([]models.TrafficLogEntry, error)

	// --- Ledgers ---
	StatementLedger(ctx context.Context, accountID string) ([]models.LedgerEntry, error)
	FeeLedger(ctx context.Context, accountID string) ([]models.LedgerEntry, error)

	// --- Address book ---
	LocationFor(ctx context.Context, accountID string) (*models.Location, error)
	IPsFor(ctx context.Context, accountID string) ([]string, error)
	MACsFor(ctx context.Context, accountID string) ([]string, error)

	// --- Lifecycle ---
	Close()
}
