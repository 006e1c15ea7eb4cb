package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// HTTPClient is the concrete Client over the backend's REST endpoints.
// The supplied *http.Client is expected to carry the request pipeline
// (bearer injection) as its transport.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{baseURL: baseURL, http: httpClient}
}

// errBody is the subset of an error response we try to read. Different
// endpoints use different field names.
type errBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func (b *errBody) message() string {
	if b.Error != "" {
		return b.Error
	}
	return b.Detail
}

// do issues a JSON request and decodes a 2xx response into out (when out
// is non-nil). Non-2xx responses become a *ServerError carrying whatever
// error text the body held.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		return &ServerError{Status: resp.StatusCode, Message: eb.message()}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var res AuthResult
	req := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/login/", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Register(ctx context.Context, req *RegisterRequest) (*AuthResult, error) {
	var res AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/register/", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) RefreshToken(ctx context.Context, refresh string) (*TokenPair, error) {
	var res TokenPair
	req := map[string]string{"refresh": refresh}
	if err := c.do(ctx, http.MethodPost, "/api/token/refresh/", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) ListProducts(ctx context.Context) ([]Product, error) {
	var res []Product
	if err := c.do(ctx, http.MethodGet, "/api/products/", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// CreateOrder posts the draft to order creation. The order service may
// answer 200 with success=false, so the failure flag is checked in
// addition to the HTTP status.
func (c *HTTPClient) CreateOrder(ctx context.Context, draft *OrderDraft) (*OrderResult, error) {
	var res OrderResult
	if err := c.do(ctx, http.MethodPost, "/api/orders/create/", draft, &res); err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, &ServerError{Message: res.Error}
	}
	return &res, nil
}

// CreatePayment posts the draft to payment creation; same failure-flag
// convention as CreateOrder.
func (c *HTTPClient) CreatePayment(ctx context.Context, draft *OrderDraft) (*PaymentResult, error) {
	var res PaymentResult
	if err := c.do(ctx, http.MethodPost, "/api/payment/create/", draft, &res); err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, &ServerError{Message: res.Error}
	}
	return &res, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*Profile, error) {
	var res Profile
	if err := c.do(ctx, http.MethodGet, "/api/users/me/", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) UpdateMe(ctx context.Context, p *Profile) error {
	return c.do(ctx, http.MethodPut, "/api/users/me/", p, nil)
}

func (c *HTTPClient) DeleteMe(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/users/me/", nil, nil)
}
