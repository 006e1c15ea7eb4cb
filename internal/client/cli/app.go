package cli

import (
	"bufio"
	"context"
	"net/http/cookiejar"
	"os"

	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/storefront-client/internal/client/api"
	"github.com/dmitrijs2005/storefront-client/internal/client/cart"
	"github.com/dmitrijs2005/storefront-client/internal/client/checkout"
	"github.com/dmitrijs2005/storefront-client/internal/client/config"
	"github.com/dmitrijs2005/storefront-client/internal/client/services"
	"github.com/dmitrijs2005/storefront-client/internal/client/store"
	"github.com/dmitrijs2005/storefront-client/internal/client/tokens"
	"github.com/dmitrijs2005/storefront-client/internal/client/transport"
	"github.com/dmitrijs2005/storefront-client/internal/logging"
)

type App struct {
	config  *config.Config
	tokens  *tokens.Store
	cart    *cart.Store
	client  api.Client
	auth    services.AuthService
	profile services.ProfileService
	summary *checkout.Engine
	submit  *checkout.Submitter
	log     logging.Logger
	reader  *bufio.Reader
}

// NewApp wires the whole client together: state DB, cookie jar, token
// store, the authenticated HTTP pipeline and the services on top of it.
func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := store.OpenDatabase(ctx, c.StateDBPath)
	if err != nil {
		log.Error(ctx, "error initializing state database", "error", err)
		return nil, err
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	tokenStore, err := tokens.NewStore(db, jar, c.APIBaseURL, log)
	if err != nil {
		return nil, err
	}

	httpClient := transport.NewClient(nil, transport.BearerAuth(tokenStore))
	httpClient.Jar = jar
	httpClient.Timeout = c.RequestTimeout

	apiClient := api.NewHTTPClient(c.APIBaseURL, httpClient)
	cartStore := cart.NewStore(db, tokenStore, log)
	recovery := store.NewSQLiteStore(db)

	return &App{
		config:  c,
		tokens:  tokenStore,
		cart:    cartStore,
		client:  apiClient,
		auth:    services.NewAuthService(apiClient, tokenStore, log),
		profile: services.NewProfileService(apiClient, tokenStore),
		summary: checkout.NewEngine(apiClient, cartStore, float64(c.DeliveryFee), log),
		submit:  checkout.NewSubmitter(apiClient, cartStore, recovery, log),
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Run performs the startup housekeeping and hands control to the REPL.
// The one-time legacy cart purge and the silent session restore both run
// before the first prompt so the user lands in a consistent state.
func (a *App) Run(ctx context.Context) {
	if err := a.cart.PurgeLegacy(ctx); err != nil {
		a.log.Warn(ctx, "legacy cart purge failed", "error", err)
	}
	go a.auth.SilentRefresh(ctx)
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	ok, err := a.tokens.IsAuthenticated(context.Background())
	if err != nil {
		a.log.Warn(context.Background(), "reading auth state failed", "error", err)
		return false
	}
	return ok
}
