package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a network member's identity record, normalized at the
// connector boundary. TrafficBalance is always bytes and may go negative.
type Account struct {
	ID             string
	Name           string
	Backend        string
	TrafficBalance int64
	Active         bool
}

// Location is the dorm address an account is attached to. Any subset of
// the parts may be empty.
type Location struct {
	Building string
	Floor    string
	Flat     string
	Room     string
}

// IPBinding maps an IP address to its owning account. AccountID is empty
// for unclaimed addresses.
type IPBinding struct {
	IP        string
	AccountID string
}

// MACBinding maps a MAC address (canonical lowercase form) to its owning
// account.
type MACBinding struct {
	MAC       string
	AccountID string
}

// TrafficLogEntry is one day of usage for one account. At most one entry
// exists per (account, date); a missing date means zero usage.
type TrafficLogEntry struct {
	AccountID string
	Date      time.Time
	BytesIn   int64
	BytesOut  int64
}

// LedgerEntry is a single financial ledger row. Statements and fees share
// this shape once projected out of their source schema.
type LedgerEntry struct {
	AccountID   string
	Amount      decimal.Decimal
	Timestamp   time.Time
	Description string
}

// Transaction source tags for the combined stream.
const (
	TransactionSourceStatement = "statement"
	TransactionSourceFee       = "fee"
)

// Transaction is one entry of the merged chronological transaction stream.
type Transaction struct {
	Source      string          `json:"source"`
	Amount      decimal.Decimal `json:"amount"`
	Timestamp   time.Time       `json:"timestamp"`
	Description string          `json:"description"`
}

// TrafficDay is one day-record of the trailing traffic history window.
// InputKB and OutputKB are KiB (bytes divided by 1024 exactly once);
// Throughput and Credit stay in bytes. Credit is a cumulative balance
// snapshot, not a delta.
type TrafficDay struct {
	Day        time.Weekday `json:"day"`
	InputKB    float64      `json:"input_kb"`
	OutputKB   float64      `json:"output_kb"`
	Throughput int64        `json:"throughput"`
	Credit     int64        `json:"credit"`
}

// UserView is the read-only per-account object the portal exposes. It is
// derived per call and never persisted.
type UserView struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Address           string          `json:"address"`
	Mail              string          `json:"mail"`
	Backend           string          `json:"backend"`
	TrafficBalanceKB  float64         `json:"traffic_balance_kb"`
	IPs               []string        `json:"ips"`
	MACs              []string        `json:"macs"`
	TrafficHistory    []TrafficDay    `json:"traffic_history"`
	FinanceBalance    decimal.Decimal `json:"finance_balance"`
	LastFinanceUpdate *time.Time      `json:"last_finance_update,omitempty"`
	Transactions      []Transaction   `json:"transactions"`
	HasConnection     bool            `json:"has_connection"`
	Status            string          `json:"status"`
	Anonymous         bool            `json:"anonymous"`
}
