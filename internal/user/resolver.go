package user

import (
	"context"
	"errors"
	"strings"

	"resnet-portal/internal/models"
	"resnet-portal/internal/store"
)

// Resolution is an account together with the backend that owns it.
// Follow-up queries (traffic, ledgers, bindings) go to that backend.
type Resolution struct {
	Account models.Account
	Backend store.Connector
}

// Resolver locates the owning backend for an identifier. Exactly one
// backend is expected to own any given account id, IP or MAC.
type Resolver struct {
	backends []store.Connector
}

func NewResolver(backends ...store.Connector) *Resolver {
	return &Resolver{backends: backends}
}

// ByID resolves an account id. Ids are matched exactly. Every backend is
// tried before the lookup is declared a miss.
func (r *Resolver) ByID(ctx context.Context, id string) (*Resolution, error) {
	return r.resolve(func(be store.Connector) (*models.Account, error) {
		return be.FindAccount(ctx, id)
	})
}

// ByIP resolves the owner of an IP address. An unclaimed address is a
// valid outcome and returns (nil, nil): the caller must be able to tell
// "this IP has no owner" apart from "no such user".
func (r *Resolver) ByIP(ctx context.Context, ip string) (*Resolution, error) {
	res, err := r.resolve(func(be store.Connector) (*models.Account, error) {
		return be.FindByIP(ctx, ip)
	})
	if errors.Is(err, store.ErrAccountNotFound) {
		return nil, nil
	}
	return res, err
}

// ByMAC resolves the owner of a MAC address. The input is canonicalized
// to lowercase before any backend sees it.
func (r *Resolver) ByMAC(ctx context.Context, mac string) (*Resolution, error) {
	canonical := strings.ToLower(strings.TrimSpace(mac))
	return r.resolve(func(be store.Connector) (*models.Account, error) {
		return be.FindByMAC(ctx, canonical)
	})
}

func (r *Resolver) resolve(lookup func(store.Connector) (*models.Account, error)) (*Resolution, error) {
	for _, be := range r.backends {
		acc, err := lookup(be)
		if err != nil {
			// A broken backend is fatal for the whole call; falling back
			// to the remaining backends could misreport "not found".
			return nil, err
		}
		if acc != nil {
			return &Resolution{Account: *acc, Backend: be}, nil
		}
	}
	return nil, store.ErrAccountNotFound
}
