package user

import (
	"context"
	"strings"
	"testing"
	"time"

	"resnet-portal/internal/models"
	"resnet-portal/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPortalConfig() models.PortalConfig {
	return models.PortalConfig{
		DailyCreditBytes: testAllowance,
		MailDomain:       "wh12.tu-dresden.de",
		Locale:           "de",
	}
}

func newTestView(cfg models.PortalConfig, backends ...store.Connector) *View {
	view := NewView(NewResolver(backends...), cfg)
	view.now = func() time.Time { return historyAsOf }
	return view
}

func TestViewGetBasics(t *testing.T) {
	be := oneAccountFixture()
	trafficFixture(be, historyAsOf)
	financeFixture(be, financeTS)
	view := newTestView(testPortalConfig(), be)

	v, err := view.Get(context.Background(), testAccountID)
	require.NoError(t, err)

	assert.Equal(t, testAccountID, v.ID)
	assert.Equal(t, "Alice Abbey", v.Name)
	assert.Equal(t, "abc123@wh12.tu-dresden.de", v.Mail)
	assert.Equal(t, "south-campus", v.Backend)
	assert.Equal(t, []string{"10.10.7.2"}, v.IPs)
	assert.Equal(t, []string{"aa:bb:cc:dd:ee:01"}, v.MACs)
	assert.Len(t, v.TrafficHistory, HistoryDays)
	assert.False(t, v.Anonymous)
}

func TestViewTrafficBalanceConversion(t *testing.T) {
	be := oneAccountFixture()
	view := newTestView(testPortalConfig(), be)

	v, err := view.Get(context.Background(), testAccountID)
	require.NoError(t, err)
	// 10_000_000_000 bytes, divided by 1024 exactly once
	assert.Equal(t, 9765625.0, v.TrafficBalanceKB)
}

func TestViewAddressContainsAllParts(t *testing.T) {
	be := oneAccountFixture()
	view := newTestView(testPortalConfig(), be)

	v, err := view.Get(context.Background(), testAccountID)
	require.NoError(t, err)
	for _, part := range []string{"HSS46", "0", "1", "b"} {
		assert.True(t, strings.Contains(v.Address, part), "part %q missing from %q", part, v.Address)
	}
}

func TestViewAddressToleratesMissingParts(t *testing.T) {
	be := oneAccountFixture()
	be.locations[testAccountID] = models.Location{Building: "HSS46"}
	view := newTestView(testPortalConfig(), be)

	v, err := view.Get(context.Background(), testAccountID)
	require.NoError(t, err)
	assert.Equal(t, "HSS46", v.Address)
}

func TestViewAddressWithoutLocation(t *testing.T) {
	be := oneAccountFixture()
	delete(be.locations, testAccountID)
	view := newTestView(testPortalConfig(), be)

	v, err := view.Get(context.Background(), testAccountID)
	require.NoError(t, err)
	assert.Empty(t, v.Address)
}

func TestViewStatusAgreesWithConnection(t *testing.T) {
	view := newTestView(testPortalConfig(), propertiesFixture())

	for _, id := range []string{"active1", "passive1"} {
		v, err := view.Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, v.HasConnection, v.Status == "Aktiv", "account %s", id)
	}
}

func TestViewStatusLabelsGerman(t *testing.T) {
	view := newTestView(testPortalConfig(), propertiesFixture())

	v, err := view.Get(context.Background(), "active1")
	require.NoError(t, err)
	assert.Equal(t, "Aktiv", v.Status)

	v, err = view.Get(context.Background(), "passive1")
	require.NoError(t, err)
	assert.Equal(t, "Passiv", v.Status)
}

func TestViewStatusLabelsEnglish(t *testing.T) {
	cfg := testPortalConfig()
	cfg.Locale = "en"
	view := newTestView(cfg, propertiesFixture())

	v, err := view.Get(context.Background(), "active1")
	require.NoError(t, err)
	assert.Equal(t, "Active", v.Status)

	v, err = view.Get(context.Background(), "passive1")
	require.NoError(t, err)
	assert.Equal(t, "Passive", v.Status)
}

func TestViewFromIPOwned(t *testing.T) {
	be := oneAccountFixture()
	view := newTestView(testPortalConfig(), be)

	v, err := view.FromIP(context.Background(), "10.10.7.2")
	require.NoError(t, err)
	assert.Equal(t, testAccountID, v.ID)
	assert.False(t, v.Anonymous)
}

func TestViewFromIPUnclaimedIsAnonymous(t *testing.T) {
	be := oneAccountFixture()
	view := newTestView(testPortalConfig(), be)

	for _, ip := range []string{"10.10.7.200", "10.10.99.99"} {
		v, err := view.FromIP(context.Background(), ip)
		require.NoError(t, err, ip)
		require.NotNil(t, v, ip)
		assert.True(t, v.Anonymous, ip)
		assert.True(t, v.FinanceBalance.IsZero())
	}
}

func TestViewFromMAC(t *testing.T) {
	be := oneAccountFixture()
	view := newTestView(testPortalConfig(), be)

	v, err := view.FromMAC(context.Background(), "AA:BB:CC:DD:EE:01")
	require.NoError(t, err)
	assert.Equal(t, testAccountID, v.ID)
}

func TestViewGetNotFound(t *testing.T) {
	view := newTestView(testPortalConfig(), newFakeConnector("empty"))

	_, err := view.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, store.ErrAccountNotFound)
}

func TestViewFinancePassedThrough(t *testing.T) {
	be := oneAccountFixture()
	fee := financeFixture(be, financeTS)
	view := newTestView(testPortalConfig(), be)

	v, err := view.Get(context.Background(), testAccountID)
	require.NoError(t, err)
	assert.Equal(t, "3.50", v.FinanceBalance.StringFixed(2))
	require.NotNil(t, v.LastFinanceUpdate)
	assert.True(t, v.LastFinanceUpdate.Equal(fee.Timestamp))
	assert.Len(t, v.Transactions, 1)
}
