// Package api is the typed client for the storefront backend's HTTP
// contract: identity bootstrap, token refresh, catalog, order and payment
// creation, and the profile resource.
package api

import "context"

// Client defines the backend operations used by the rest of the client.
//
// All methods honor context cancellation. Failures reported by the server
// itself (non-2xx, or a success=false body on the order/payment paths)
// come back as *ServerError so callers can surface the server's text.
type Client interface {
	// Authentication bootstrap. These calls never carry a bearer
	// credential (the request pipeline excludes them by path).
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, req *RegisterRequest) (*AuthResult, error)
	RefreshToken(ctx context.Context, refresh string) (*TokenPair, error)

	// Catalog. Optionally authenticated.
	ListProducts(ctx context.Context) ([]Product, error)

	// Order submission paths.
	CreateOrder(ctx context.Context, draft *OrderDraft) (*OrderResult, error)
	CreatePayment(ctx context.Context, draft *OrderDraft) (*PaymentResult, error)

	// Profile resource.
	Me(ctx context.Context) (*Profile, error)
	UpdateMe(ctx context.Context, p *Profile) error
	DeleteMe(ctx context.Context) error
}
