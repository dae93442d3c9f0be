package database

import (
	"context"
	"database/sql"
	"errors"

	"resnet-portal/internal/models"
)

func (s *Service) scanAccount(row interface{ Scan(...any) error }) (*models.Account, error) {
	var acc models.Account
	var active int
	if err := row.Scan(&acc.ID, &acc.Name, &acc.TrafficBalance, &active); err != nil {
		return nil, err
	}
	acc.Backend = s.name
	acc.Active = active != 0
	return &acc, nil
}

func (s *Service) ListAccounts(ctx context.Context) ([]models.Account, error) {
	rows, err := s.db.QueryContext(ctx, queryListAccounts)
	if err != nil {
		return nil, s.fail("list accounts", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		acc, err := s.scanAccount(rows)
		if err != nil {
			return nil, s.fail("scan account", err)
		}
		accounts = append(accounts, *acc)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail("list accounts", err)
	}
	return accounts, nil
}

func (s *Service) FindAccount(ctx context.Context, id string) (*models.Account, error) {
	acc, err := s.scanAccount(s.db.QueryRowContext(ctx, queryFindAccount, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, s.fail("find account", err)
	}
	return acc, nil
}

// FindByIP returns the owning account of an IP. Unclaimed addresses (a
// binding row with a NULL account, or no row at all) are an absent result.
func (s *Service) FindByIP(ctx context.Context, ip string) (*models.Account, error) {
	acc, err := s.scanAccount(s.db.QueryRowContext(ctx, queryFindAccountByIP, ip))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, s.fail("find account by ip", err)
	}
	return acc, nil
}

func (s *Service) FindByMAC(ctx context.Context, mac string) (*models.Account, error) {
	acc, err := s.scanAccount(s.db.QueryRowContext(ctx, queryFindAccountByMAC, mac))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, s.fail("find account by mac", err)
	}
	return acc, nil
}

func (s *Service) LocationFor(ctx context.Context, accountID string) (*models.Location, error) {
	var loc models.Location
	err := s.db.QueryRowContext(ctx, queryLocationFor, accountID).
		Scan(&loc.Building, &loc.Floor, &loc.Flat, &loc.Room)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, s.fail("location lookup", err)
	}
	return &loc, nil
}

func (s *Service) IPsFor(ctx context.Context, accountID string) ([]string, error) {
	return s.stringColumn(ctx, queryIPsFor, accountID, "ip lookup")
}

func (s *Service) MACsFor(ctx context.Context, accountID string) ([]string, error) {
	return s.stringColumn(ctx, queryMACsFor, accountID, "mac lookup")
}

func (s *Service) stringColumn(ctx context.Context, query, accountID, op string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, s.fail(op, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, s.fail(op, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail(op, err)
	}
	return values, nil
}
