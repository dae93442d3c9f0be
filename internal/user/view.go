package user

import (
	"context"
	"strings"
	"time"

	"resnet-portal/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/text/message"
)

// View composes the resolver and the derivation engines into the
// read-only per-account object the portal exposes. Each call works on a
// fixed backend snapshot; nothing is cached across calls.
type View struct {
	resolver   *Resolver
	allowance  int64
	mailDomain string
	printer    *message.Printer
	now        func() time.Time
}

func NewView(resolver *Resolver, cfg models.PortalConfig) *View {
	return &View{
		resolver:   resolver,
		allowance:  cfg.DailyCreditBytes,
		mailDomain: cfg.MailDomain,
		printer:    newPrinter(cfg.Locale),
		now:        time.Now,
	}
}

// Get resolves an account id into a full user view.
func (v *View) Get(ctx context.Context, id string) (*models.UserView, error) {
	res, err := v.resolver.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return v.build(ctx, res)
}

// FromIP resolves the user behind an IP address. Unowned addresses yield
// the anonymous view, never an error.
func (v *View) FromIP(ctx context.Context, ip string) (*models.UserView, error) {
	res, err := v.resolver.ByIP(ctx, ip)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return AnonymousUser(), nil
	}
	return v.build(ctx, res)
}

// FromMAC resolves the user behind a MAC address (any case accepted).
func (v *View) FromMAC(ctx context.Context, mac string) (*models.UserView, error) {
	res, err := v.resolver.ByMAC(ctx, mac)
	if err != nil {
		return nil, err
	}
	return v.build(ctx, res)
}

// AnonymousUser is the distinguished result for IPs nobody claimed. It
// is a valid view, not an error.
func AnonymousUser() *models.UserView {
	return &models.UserView{
		Anonymous:      true,
		FinanceBalance: decimal.Zero,
	}
}

func (v *View) build(ctx context.Context, res *Resolution) (*models.UserView, error) {
	acc := res.Account
	be := res.Backend

	loc, err := be.LocationFor(ctx, acc.ID)
	if err != nil {
		return nil, err
	}
	ips, err := be.IPsFor(ctx, acc.ID)
	if err != nil {
		return nil, err
	}
	macs, err := be.MACsFor(ctx, acc.ID)
	if err != nil {
		return nil, err
	}
	history, err := History(ctx, be, acc, v.now(), v.allowance)
	if err != nil {
		return nil, err
	}
	balance, lastUpdate, err := FinanceBalance(ctx, be, acc.ID)
	if err != nil {
		return nil, err
	}
	transactions, err := CombinedTransactions(ctx, be, acc.ID)
	if err != nil {
		return nil, err
	}

	return &models.UserView{
		ID:      acc.ID,
		Name:    acc.Name,
		Address: formatAddress(loc),
		Mail:    acc.ID + "@" + v.mailDomain,
		Backend: acc.Backend,
		// bytes become kilobytes exactly once, here at the boundary
		TrafficBalanceKB:  float64(acc.TrafficBalance) / 1024,
		IPs:               ips,
		MACs:              macs,
		TrafficHistory:    history,
		FinanceBalance:    balance,
		LastFinanceUpdate: lastUpdate,
		Transactions:      transactions,
		HasConnection:     acc.Active,
		Status:            statusLabel(v.printer, acc.Active),
	}, nil
}

// formatAddress renders a dorm location as "<building> <floor>-<flat><room>",
// tolerating any subset of missing parts.
func formatAddress(loc *models.Location) string {
	if loc == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(loc.Building)
	if loc.Floor != "" || loc.Flat != "" || loc.Room != "" {
		if loc.Building != "" {
			b.WriteString(" ")
		}
		b.WriteString(loc.Floor)
		if loc.Flat != "" {
			if loc.Floor != "" {
				b.WriteString("-")
			}
			b.WriteString(loc.Flat)
		}
		b.WriteString(loc.Room)
	}
	return b.String()
}
