package services

import (
	"context"

	"github.com/dmitrijs2005/storefront-client/internal/client/api"
	"github.com/dmitrijs2005/storefront-client/internal/client/tokens"
)

// ProfileService manages the signed-in user's profile resource. Deleting
// the account also drops the local credential state, since the server
// will reject every further authenticated call anyway.
type ProfileService interface {
	Get(ctx context.Context) (*api.Profile, error)
	Update(ctx context.Context, p *api.Profile) error
	Delete(ctx context.Context) error
}

type profileService struct {
	client api.Client
	tokens *tokens.Store
}

func NewProfileService(client api.Client, tokens *tokens.Store) ProfileService {
	return &profileService{client: client, tokens: tokens}
}

func (p *profileService) Get(ctx context.Context) (*api.Profile, error) {
	return p.client.Me(ctx)
}

func (p *profileService) Update(ctx context.Context, profile *api.Profile) error {
	return p.client.UpdateMe(ctx, profile)
}

func (p *profileService) Delete(ctx context.Context) error {
	if err := p.client.DeleteMe(ctx); err != nil {
		return err
	}
	return p.tokens.Clear(ctx)
}
