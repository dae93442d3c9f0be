package user

import (
	"context"
	"fmt"
	"sort"
	"time"

	"resnet-portal/internal/models"
	"resnet-portal/internal/store"

	"github.com/shopspring/decimal"
)

// FinanceBalance sums every statement and fee of the account (signed)
// and reports the most recent ledger timestamp. An account with no
// ledger rows has a balance of exactly zero and no last update; that is
// never an error.
func FinanceBalance(ctx context.Context, backend store.Connector, accountID string) (decimal.Decimal, *time.Time, error) {
	rows, err := ledgerRows(ctx, backend, accountID)
	if err != nil {
		return decimal.Zero, nil, err
	}

	balance := decimal.Zero
	var last *time.Time
	for _, tx := range rows {
		balance = balance.Add(tx.Amount)
		if last == nil || tx.Timestamp.After(*last) {
			ts := tx.Timestamp
			last = &ts
		}
	}
	return balance, last, nil
}

// CombinedTransactions merges the statement and fee ledgers into one
// stream sorted by timestamp ascending. Entries with equal timestamps
// keep a stable relative order.
func CombinedTransactions(ctx context.Context, backend store.Connector, accountID string) ([]models.Transaction, error) {
	rows, err := ledgerRows(ctx, backend, accountID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Timestamp.Before(rows[j].Timestamp)
	})
	return rows, nil
}

// ledgerRows projects both ledgers onto the common transaction shape,
// unsorted. Rows missing required fields are surfaced, not skipped.
func ledgerRows(ctx context.Context, backend store.Connector, accountID string) ([]models.Transaction, error) {
	statements, err := backend.StatementLedger(ctx, accountID)
	if err != nil {
		return nil, err
	}
	fees, err := backend.FeeLedger(ctx, accountID)
	if err != nil {
		return nil, err
	}

	rows := make([]models.Transaction, 0, len(statements)+len(fees))
	for _, entry := range statements {
		tx, err := projectEntry(entry, models.TransactionSourceStatement)
		if err != nil {
			return nil, err
		}
		rows = append(rows, tx)
	}
	for _, entry := range fees {
		tx, err := projectEntry(entry, models.TransactionSourceFee)
		if err != nil {
			return nil, err
		}
		rows = append(rows, tx)
	}
	return rows, nil
}

func projectEntry(entry models.LedgerEntry, source string) (models.Transaction, error) {
	if entry.Timestamp.IsZero() {
		return models.Transaction{}, fmt.Errorf("%s ledger row for %s has no timestamp: %w",
			source, entry.AccountID, store.ErrDataInconsistency)
	}
	return models.Transaction{
		Source:      source,
		Amount:      entry.Amount,
		Timestamp:   entry.Timestamp,
		Description: entry.Description,
	}, nil
}
