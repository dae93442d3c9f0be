package database

import (
	"context"

	"resnet-portal/internal/models"

	"github.com/shopspring/decimal"
)

func (s *Service) StatementLedger(ctx context.Context, accountID string) ([]models.LedgerEntry, error) {
	return s.ledgerRows(ctx, queryStatementLedger, accountID, "statement ledger")
}

func (s *Service) FeeLedger(ctx context.Context, accountID string) ([]models.LedgerEntry, error) {
	return s.ledgerRows(ctx, queryFeeLedger, accountID, "fee ledger")
}

func (s *Service) ledgerRows(ctx context.Context, query, accountID, op string) ([]models.LedgerEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, s.fail(op, err)
	}
	defer rows.Close()

	var entries []models.LedgerEntry
	for rows.Next() {
		var entry models.LedgerEntry
		var amount string
		if err := rows.Scan(&entry.AccountID, &amount, &entry.Timestamp, &entry.Description); err != nil {
			return nil, s.fail("scan "+op, err)
		}
		entry.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, s.fail("parse "+op+" amount", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail(op, err)
	}
	return entries, nil
}
