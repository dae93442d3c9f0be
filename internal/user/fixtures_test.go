package user

import (
	"context"
	"fmt"
	"time"

	"resnet-portal/internal/models"
	"resnet-portal/internal/store"

	"github.com/shopspring/decimal"
)

// fakeConnector is an in-memory backend for core tests. When failure is
// set, every call reports the backend as unavailable.
type fakeConnector struct {
	name       string
	accounts   map[string]models.Account
	ips        []models.IPBinding
	macs       []models.MACBinding
	traffic    []models.TrafficLogEntry
	statements []models.LedgerEntry
	fees       []models.LedgerEntry
	locations  map[string]models.Location
	failure    error
}

var _ store.Connector = (*fakeConnector)(nil)

func newFakeConnector(name string) *fakeConnector {
	return &fakeConnector{
		name:      name,
		accounts:  make(map[string]models.Account),
		locations: make(map[string]models.Location),
	}
}

func (f *fakeConnector) Name() string { return f.name }
func (f *fakeConnector) Close()       {}

func (f *fakeConnector) fail() error {
	return fmt.Errorf("%s: %w: %w", f.name, store.ErrBackendUnavailable, f.failure)
}

func (f *fakeConnector) ListAccounts(context.Context) ([]models.Account, error) {
	if f.failure != nil {
		return nil, f.fail()
	}
	var accounts []models.Account
	for _, acc := range f.accounts {
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

func (f *fakeConnector) FindAccount(_ context.Context, id string) (*models.Account, error) {
	if f.failure != nil {
		return nil, f.fail()
	}
	if acc, ok := f.accounts[id]; ok {
		return &acc, nil
	}
	return nil, nil
}

func (f *fakeConnector) FindByIP(ctx context.Context, ip string) (*models.Account, error) {
	if f.failure != nil {
		return nil, f.fail()
	}
	for _, binding := range f.ips {
		if binding.IP == ip && binding.AccountID != "" {
			return f.FindAccount(ctx, binding.AccountID)
		}
	}
	return nil, nil
}

func (f *fakeConnector) FindByMAC(ctx context.Context, mac string) (*models.Account, error) {
	if f.failure != nil {
		return nil, f.fail()
	}
	for _, binding := range f.macs {
		if binding.MAC == mac {
			return f.FindAccount(ctx, binding.AccountID)
		}
	}
	return nil, nil
}

func (f *fakeConnector) TrafficLogs(_ context.Context, accountID string, from, to time.Time) ([]models.TrafficLogEntry, error) {
	if f.failure != nil {
		return nil, f.fail()
	}
	var logs []models.TrafficLogEntry
	for _, entry := range f.traffic {
		if entry.AccountID != accountID || entry.Date.Before(from) || entry.Date.After(to) {
			continue
		}
		logs = append(logs, entry)
	}
	return logs, nil
}

func (f *fakeConnector) StatementLedger(_ context.Context, accountID string) ([]models.LedgerEntry, error) {
	if f.failure != nil {
		return nil, f.fail()
	}
	return filterLedger(f.statements, accountID), nil
}

func (f *fakeConnector) FeeLedger(_ context.Context, accountID string) ([]models.LedgerEntry, error) {
	if f.failure != nil {
		return nil, f.fail()
	}
	return filterLedger(f.fees, accountID), nil
}

func filterLedger(entries []models.LedgerEntry, accountID string) []models.LedgerEntry {
	var rows []models.LedgerEntry
	for _, entry := range entries {
		if entry.AccountID == accountID {
			rows = append(rows, entry)
		}
	}
	return rows
}

func (f *fakeConnector) LocationFor(_ context.Context, accountID string) (*models.Location, error) {
	if f.failure != nil {
		return nil, f.fail()
	}
	if loc, ok := f.locations[accountID]; ok {
		return &loc, nil
	}
	return nil, nil
}

func (f *fakeConnector) IPsFor(_ context.Context, accountID string) ([]string, error) {
	if f.failure != nil {
		return nil, f.fail()
	}
	var ips []string
	for _, binding := range f.ips {
		if binding.AccountID == accountID {
			ips = append(ips, binding.IP)
		}
	}
	return ips, nil
}

func (f *fakeConnector) MACsFor(_ context.Context, accountID string) ([]string, error) {
	if f.failure != nil {
		return nil, f.fail()
	}
	var macs []string
	for _, binding := range f.macs {
		if binding.AccountID == accountID {
			macs = append(macs, binding.MAC)
		}
	}
	return macs, nil
}

// --- fixture builders ---
// Each builder is a plain function; tests compose them with ordinary
// calls instead of type hierarchies.

const (
	testAllowance = int64(3 * 1024 * 1024)
	testAccountID = "abc123"
)

func oneAccountFixture() *fakeConnector {
	be := newFakeConnector("south-campus")
	be.accounts[testAccountID] = models.Account{
		ID:             testAccountID,
		Name:           "Alice Abbey",
		Backend:        be.name,
		TrafficBalance: 10000000000,
		Active:         true,
	}
	be.locations[testAccountID] = models.Location{
		Building: "HSS46", Floor: "0", Flat: "1", Room: "b",
	}
	be.ips = []models.IPBinding{
		{IP: "10.10.7.2", AccountID: testAccountID},
		{IP: "10.10.7.200", AccountID: ""}, // unclaimed
	}
	be.macs = []models.MACBinding{
		{MAC: "aa:bb:cc:dd:ee:01", AccountID: testAccountID},
	}
	return be
}

// trafficFixture adds a full week of logs ending at asOf.
func trafficFixture(be *fakeConnector, asOf time.Time) {
	for delta := -6; delta <= 0; delta++ {
		date := asOf.AddDate(0, 0, delta)
		be.traffic = append(be.traffic, models.TrafficLogEntry{
			AccountID: testAccountID,
			Date:      date,
			BytesIn:   int64((delta + 7) * 1024 * 100),
			BytesOut:  int64((delta + 7) * 1024 * 300),
		})
	}
}

// trafficFixtureDaysMissing adds a week of logs with two days missing.
func trafficFixtureDaysMissing(be *fakeConnector, asOf time.Time) {
	trafficFixture(be, asOf)
	kept := be.traffic[:0]
	for i, entry := range be.traffic {
		if i == 2 || i == 5 {
			continue
		}
		kept = append(kept, entry)
	}
	be.traffic = kept
}

// financeFixture adds a single fee of 3.50 and no statements.
func financeFixture(be *fakeConnector, ts time.Time) models.LedgerEntry {
	fee := models.LedgerEntry{
		AccountID:   testAccountID,
		Amount:      decimal.RequireFromString("3.5"),
		Timestamp:   ts,
		Description: "Connection fee",
	}
	be.fees = append(be.fees, fee)
	return fee
}

// propertiesFixture builds a backend with one active and one passive
// member.
func propertiesFixture() *fakeConnector {
	be := newFakeConnector("north-campus")
	be.accounts["active1"] = models.Account{
		ID: "active1", Name: "Active Member", Backend: be.name, Active: true,
	}
	be.accounts["passive1"] = models.Account{
		ID: "passive1", Name: "Passive Member", Backend: be.name, Active: false,
	}
	return be
}
