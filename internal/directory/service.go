package directory

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"resnet-portal/internal/models"
	"resnet-portal/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Compile-time check: *Service must satisfy store.Connector.
var _ store.Connector = (*Service)(nil)

// Directory attribute names of the account subtree.
const (
	attrUID            = "uid"
	attrName           = "cn"
	attrTrafficBalance = "trafficBalance"
	attrActive         = "active"
	attrBuilding       = "building"
	attrFloor          = "floor"
	attrFlat           = "flat"
	attrRoom           = "room"
	attrIP             = "ipHostNumber"
	attrMAC            = "macAddress"
	attrTrafficLog     = "trafficLog"
	attrStatement      = "statementRecord"
	attrFee            = "feeRecord"
)

const dateLayout = "2006-01-02"

// Service adapts an opaque directory service into the backend connector
// contract. All type normalization (balances, flags, record attributes)
// happens here so the core only ever sees well-formed values.
type Service struct {
	name   string
	client Client
}

func NewService(name string, client Client) (*Service, error) {
	if name == "" {
		return nil, fmt.Errorf("deployment name cannot be empty")
	}
	if client == nil {
		return nil, fmt.Errorf("directory client cannot be nil")
	}
	zap.L().Info("Directory connector initialized", zap.String("deployment", name))
	return &Service{name: name, client: client}, nil
}

func (s *Service) Name() string { return s.name }

func (s *Service) Close() {
	if err := s.client.Close(); err != nil {
		zap.L().Warn("Failed to close directory client",
			zap.String("deployment", s.name), zap.Error(err))
	}
}

func (s *Service) fail(op string, err error) error {
	return fmt.Errorf("%s: %s: %w: %w", s.name, op, store.ErrBackendUnavailable, err)
}

func (s *Service) inconsistent(op, detail string) error {
	return fmt.Errorf("%s: %s: %s: %w", s.name, op, detail, store.ErrDataInconsistency)
}

// parseAccount normalizes a directory entry into an account record.
func (s *Service) parseAccount(e Entry) (*models.Account, error) {
	uid := e.Attr(attrUID)
	if uid == "" {
		return nil, s.inconsistent("parse account", "entry "+e.DN+" has no uid")
	}
	acc := models.Account{
		ID:      uid,
		Name:    e.Attr(attrName),
		Backend: s.name,
		Active:  strings.EqualFold(e.Attr(attrActive), "TRUE"),
	}
	if raw := e.Attr(attrTrafficBalance); raw != "" {
		balance, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, s.inconsistent("parse account", "bad trafficBalance for "+uid)
		}
		acc.TrafficBalance = balance
	}
	return &acc, nil
}

func (s *Service) ListAccounts(ctx context.Context) ([]models.Account, error) {
	entries, err := s.client.List(ctx)
	if err != nil {
		return nil, s.fail("list accounts", err)
	}
	var accounts []models.Account
	for _, e := range entries {
		if e.Attr(attrUID) == "" {
			continue // binding-only entries (e.g. unclaimed IPs)
		}
		acc, err := s.parseAccount(e)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *acc)
	}
	return accounts, nil
}

func (s *Service) FindAccount(ctx context.Context, id string) (*models.Account, error) {
	entry, err := s.searchOne(ctx, attrUID, id, "find account")
	if entry == nil || err != nil {
		return nil, err
	}
	return s.parseAccount(*entry)
}

func (s *Service) FindByIP(ctx context.Context, ip string) (*models.Account, error) {
	entry, err := s.searchOne(ctx, attrIP, ip, "find account by ip")
	if entry == nil || err != nil {
		return nil, err
	}
	if entry.Attr(attrUID) == "" {
		// The address exists but nobody claimed it.
		return nil, nil
	}
	return s.parseAccount(*entry)
}

func (s *Service) FindByMAC(ctx context.Context, mac string) (*models.Account, error) {
	entry, err := s.searchOne(ctx, attrMAC, strings.ToLower(mac), "find account by mac")
	if entry == nil || err != nil {
		return nil, err
	}
	return s.parseAccount(*entry)
}

func (s *Service) searchOne(ctx context.Context, attribute, value, op string) (*Entry, error) {
	entries, err := s.client.Search(ctx, attribute, value)
	if err != nil {
		return nil, s.fail(op, err)
	}
	if len(entries) == 0 {
		return nil, nil
	}
	if len(entries) > 1 {
		return nil, s.inconsistent(op, fmt.Sprintf("%d entries match %s=%s", len(entries), attribute, value))
	}
	return &entries[0], nil
}

func (s *Service) accountEntry(ctx context.Context, accountID, op string) (*Entry, error) {
	return s.searchOne(ctx, attrUID, accountID, op)
}

func (s *Service) TrafficLogs(ctx context.Context, accountID string, from, to time.Time) ([]models.TrafficLogEntry, error) {
	entry, err := s.accountEntry(ctx, accountID, "traffic logs")
	if entry == nil || err != nil {
		return nil, err
	}
	var logs []models.TrafficLogEntry
	for _, raw := range entry.Attrs[attrTrafficLog] {
		parts := strings.SplitN(raw, "|", 3)
		if len(parts) != 3 {
			return nil, s.inconsistent("traffic logs", "malformed trafficLog value "+raw)
		}
		date, err := time.Parse(dateLayout, parts[0])
		if err != nil {
			return nil, s.inconsistent("traffic logs", "bad date in "+raw)
		}
		bytesIn, errIn := strconv.ParseInt(parts[1], 10, 64)
		bytesOut, errOut := strconv.ParseInt(parts[2], 10, 64)
		if errIn != nil || errOut != nil {
			return nil, s.inconsistent("traffic logs", "bad byte counts in "+raw)
		}
		if date.Before(from) || date.After(to) {
			continue
		}
		logs = append(logs, models.TrafficLogEntry{
			AccountID: accountID,
			Date:      date,
			BytesIn:   bytesIn,
			BytesOut:  bytesOut,
		})
	}
	return logs, nil
}

func (s *Service) StatementLedger(ctx context.Context, accountID string) ([]models.LedgerEntry, error) {
	return s.ledgerRows(ctx, accountID, attrStatement, "statement ledger")
}

func (s *Service) FeeLedger(ctx context.Context, accountID string) ([]models.LedgerEntry, error) {
	return s.ledgerRows(ctx, accountID, attrFee, "fee ledger")
}

func (s *Service) ledgerRows(ctx context.Context, accountID, attribute, op string) ([]models.LedgerEntry, error) {
	entry, err := s.accountEntry(ctx, accountID, op)
	if entry == nil || err != nil {
		return nil, err
	}
	var rows []models.LedgerEntry
	for _, raw := range entry.Attrs[attribute] {
		parts := strings.SplitN(raw, "|", 3)
		if len(parts) != 3 {
			return nil, s.inconsistent(op, "malformed record "+raw)
		}
		ts, err := time.Parse(time.RFC3339, parts[0])
		if err != nil {
			return nil, s.inconsistent(op, "bad timestamp in "+raw)
		}
		amount, err := decimal.NewFromString(parts[1])
		if err != nil {
			return nil, s.inconsistent(op, "bad amount in "+raw)
		}
		rows = append(rows, models.LedgerEntry{
			AccountID:   accountID,
			Amount:      amount,
			Timestamp:   ts,
			Description: parts[2],
		})
	}
	return rows, nil
}

func (s *Service) LocationFor(ctx context.Context, accountID string) (*models.Location, error) {
	entry, err := s.accountEntry(ctx, accountID, "location lookup")
	if entry == nil || err != nil {
		return nil, err
	}
	loc := models.Location{
		Building: entry.Attr(attrBuilding),
		Floor:    entry.Attr(attrFloor),
		Flat:     entry.Attr(attrFlat),
		Room:     entry.Attr(attrRoom),
	}
	if loc == (models.Location{}) {
		return nil, nil
	}
	return &loc, nil
}

func (s *Service) IPsFor(ctx context.Context, accountID string) ([]string, error) {
	entry, err := s.accountEntry(ctx, accountID, "ip lookup")
	if entry == nil || err != nil {
		return nil, err
	}
	return append([]string(nil), entry.Attrs[attrIP]...), nil
}

func (s *Service) MACsFor(ctx context.Context, accountID string) ([]string, error) {
	entry, err := s.accountEntry(ctx, accountID, "mac lookup")
	if entry == nil || err != nil {
		return nil, err
	}
	macs := make([]string, 0, len(entry.Attrs[attrMAC]))
	for _, mac := range entry.Attrs[attrMAC] {
		macs = append(macs, strings.ToLower(mac))
	}
	return macs, nil
}
