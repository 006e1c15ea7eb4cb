// Package services contains the application services the CLI drives: the
// credential lifecycle (login, registration, silent refresh, logout) and
// the profile resource.
package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/storefront-client/internal/client/api"
	"github.com/dmitrijs2005/storefront-client/internal/client/tokens"
	"github.com/dmitrijs2005/storefront-client/internal/logging"
)

// AuthService defines the credential lifecycle operations for the CLI.
//
// Contract:
//   - Login: authenticate against the server and persist the credential
//     pair locally.
//   - Register: create the account, then persist the returned credentials
//     (registration signs the user in).
//   - SilentRefresh: opportunistically rotate an expired access credential;
//     never fails the caller.
//   - Logout: drop all local credential state.
//
// All methods honor context cancellation.
type AuthService interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, req *api.RegisterRequest) error
	SilentRefresh(ctx context.Context)
	Logout(ctx context.Context) error
}

// authService is the concrete AuthService backed by the API client and
// the local token store.
type authService struct {
	client api.Client
	tokens *tokens.Store
	log    logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client
// and token store.
func NewAuthService(client api.Client, tokens *tokens.Store, log logging.Logger) AuthService {
	return &authService{client: client, tokens: tokens, log: log}
}

func (a *authService) Login(ctx context.Context, email, password string) error {
	res, err := a.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return a.persist(ctx, res)
}

func (a *authService) Register(ctx context.Context, req *api.RegisterRequest) error {
	res, err := a.client.Register(ctx, req)
	if err != nil {
		return err
	}
	return a.persist(ctx, res)
}

func (a *authService) persist(ctx context.Context, res *api.AuthResult) error {
	if err := a.tokens.Set(ctx, res.Access, res.Refresh); err != nil {
		return err
	}
	return a.tokens.SetIdentity(ctx, res.Role, res.Email)
}

// SilentRefresh rotates the access credential when it is missing but a
// refresh credential is still on hand. It is a no-op when an access
// credential already exists, and issues no network call when there is
// nothing to refresh with. A refresh the server rejected drops both
// credentials so the client falls back to the signed-out state instead
// of retrying a dead credential forever; a transport failure keeps them,
// the credential may still be good once the backend is reachable.
func (a *authService) SilentRefresh(ctx context.Context) {
	access, err := a.tokens.Access(ctx)
	if err != nil {
		a.log.Warn(ctx, "silent refresh: reading access credential failed", "error", err)
		return
	}
	if access != "" {
		return
	}

	refresh, err := a.tokens.Refresh(ctx)
	if err != nil {
		a.log.Warn(ctx, "silent refresh: reading refresh credential failed", "error", err)
		return
	}
	if refresh == "" {
		return
	}

	pair, err := a.client.RefreshToken(ctx, refresh)
	if err != nil {
		// Only a server verdict invalidates the credential. A transport
		// failure means the backend never saw it, so it stays for the
		// next attempt.
		var serr *api.ServerError
		if !errors.As(err, &serr) {
			a.log.Warn(ctx, "silent refresh unreachable, keeping credentials", "error", err)
			return
		}
		a.log.Warn(ctx, "silent refresh rejected, dropping credentials", "error", err)
		if cerr := a.tokens.Clear(ctx); cerr != nil {
			a.log.Error(ctx, "clearing credentials after rejected refresh failed", "error", cerr)
		}
		return
	}

	rotated := pair.Refresh
	if rotated == "" {
		// The server kept the old refresh credential.
		rotated = refresh
	}
	if err := a.tokens.Set(ctx, pair.Access, rotated); err != nil {
		a.log.Error(ctx, "persisting refreshed credentials failed", "error", err)
	}
}

func (a *authService) Logout(ctx context.Context) error {
	return a.tokens.Clear(ctx)
}
