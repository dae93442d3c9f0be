package user

import (
	"context"
	"testing"
	"time"

	"resnet-portal/internal/models"
	"resnet-portal/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var financeTS = time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)

func TestFinanceBalanceZeroWithoutRows(t *testing.T) {
	be := oneAccountFixture()

	balance, last, err := FinanceBalance(context.Background(), be, testAccountID)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
	assert.Nil(t, last)
}

func TestFinanceBalanceSingleFee(t *testing.T) {
	be := oneAccountFixture()
	fee := financeFixture(be, financeTS)

	balance, last, err := FinanceBalance(context.Background(), be, testAccountID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("3.5")), "got %s", balance)
	require.NotNil(t, last)
	assert.True(t, last.Equal(fee.Timestamp))
}

func TestFinanceBalanceSumsBothLedgers(t *testing.T) {
	be := oneAccountFixture()
	financeFixture(be, financeTS)
	be.statements = append(be.statements,
		models.LedgerEntry{
			AccountID: testAccountID,
			Amount:    decimal.RequireFromString("21.00"),
			Timestamp: financeTS.AddDate(0, 0, -20),
		},
		models.LedgerEntry{
			AccountID: testAccountID,
			Amount:    decimal.RequireFromString("-4.25"),
			Timestamp: financeTS.AddDate(0, 0, 3),
		},
	)

	balance, last, err := FinanceBalance(context.Background(), be, testAccountID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("20.25")), "got %s", balance)
	require.NotNil(t, last)
	assert.True(t, last.Equal(financeTS.AddDate(0, 0, 3)))
}

func TestCombinedTransactionsLength(t *testing.T) {
	be := oneAccountFixture()
	financeFixture(be, financeTS)
	for i := 0; i < 4; i++ {
		be.statements = append(be.statements, models.LedgerEntry{
			AccountID: testAccountID,
			Amount:    decimal.New(int64(i), 0),
			Timestamp: financeTS.AddDate(0, 0, -i),
		})
	}

	transactions, err := CombinedTransactions(context.Background(), be, testAccountID)
	require.NoError(t, err)
	assert.Len(t, transactions, len(be.statements)+len(be.fees))
}

func TestCombinedTransactionsSorted(t *testing.T) {
	be := oneAccountFixture()
	financeFixture(be, financeTS)
	financeFixture(be, financeTS.AddDate(0, 0, -7))
	be.statements = append(be.statements,
		models.LedgerEntry{AccountID: testAccountID, Amount: decimal.New(1, 0), Timestamp: financeTS.AddDate(0, 0, -3)},
		models.LedgerEntry{AccountID: testAccountID, Amount: decimal.New(2, 0), Timestamp: financeTS},
		models.LedgerEntry{AccountID: testAccountID, Amount: decimal.New(3, 0), Timestamp: financeTS.AddDate(0, 0, -14)},
	)

	transactions, err := CombinedTransactions(context.Background(), be, testAccountID)
	require.NoError(t, err)
	for i := 1; i < len(transactions); i++ {
		assert.False(t, transactions[i].Timestamp.Before(transactions[i-1].Timestamp),
			"index %d out of order", i)
	}
}

func TestCombinedTransactionsSourceTags(t *testing.T) {
	be := oneAccountFixture()
	financeFixture(be, financeTS)
	be.statements = append(be.statements, models.LedgerEntry{
		AccountID: testAccountID,
		Amount:    decimal.New(5, 0),
		Timestamp: financeTS.AddDate(0, 0, -1),
	})

	transactions, err := CombinedTransactions(context.Background(), be, testAccountID)
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, models.TransactionSourceStatement, transactions[0].Source)
	assert.Equal(t, models.TransactionSourceFee, transactions[1].Source)
}

func TestCombinedTransactionsMissingTimestampRejected(t *testing.T) {
	be := oneAccountFixture()
	be.fees = append(be.fees, models.LedgerEntry{
		AccountID: testAccountID,
		Amount:    decimal.New(1, 0),
	})

	_, err := CombinedTransactions(context.Background(), be, testAccountID)
	assert.ErrorIs(t, err, store.ErrDataInconsistency)
}
