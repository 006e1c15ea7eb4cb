package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/storefront-client/internal/client/cart"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, srv.Client())
}

func TestRefreshToken_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/token/refresh/", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "r-old", body["refresh"])

		json.NewEncoder(w).Encode(map[string]string{"access": "a-new", "refresh": "r-new"})
	})

	pair, err := c.RefreshToken(context.Background(), "r-old")
	require.NoError(t, err)
	require.Equal(t, "a-new", pair.Access)
	require.Equal(t, "r-new", pair.Refresh)
}

func TestRefreshToken_Failure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "token is expired"})
	})

	_, err := c.RefreshToken(context.Background(), "r-old")

	var se *ServerError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusUnauthorized, se.Status)
	require.Equal(t, "token is expired", se.UserMessage())
}

func TestListProducts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/products/", r.URL.Path)
		w.Write([]byte(`[
			{"product_id": 1, "price": 500, "product_name": "Vase", "images": ["v.png"]},
			{"product_id": 2, "price": 120.5, "product_name": "Bowl", "images": "b.png"}
		]`))
	})

	products, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Equal(t, int64(1), products[0].ProductID)
	require.Equal(t, 500.0, products[0].Price)
	require.Equal(t, ImageList{"b.png"}, products[1].Images)
}

func TestCreateOrder_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/orders/create/", r.URL.Path)

		var draft OrderDraft
		require.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
		require.Equal(t, "on_delivery", draft.PaymentType)
		require.Equal(t, []cart.Line{{ProductID: 1, Quantity: 2}}, draft.Items)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"success":     true,
			"order_id":    "ORD_00000007",
			"order_db_id": 7,
		})
	})

	res, err := c.CreateOrder(context.Background(), &OrderDraft{
		PaymentType: PaymentOnDelivery,
		Items:       []cart.Line{{ProductID: 1, Quantity: 2}},
	})
	require.NoError(t, err)
	require.Equal(t, "ORD_00000007", res.DisplayID())
}

func TestCreateOrder_FailureFlagIn200(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "product out of stock"})
	})

	_, err := c.CreateOrder(context.Background(), &OrderDraft{})

	var se *ServerError
	require.ErrorAs(t, err, &se)
	require.Equal(t, "product out of stock", se.UserMessage())
}

func TestCreateOrder_FailureWithoutMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.CreateOrder(context.Background(), &OrderDraft{})

	var se *ServerError
	require.ErrorAs(t, err, &se)
	require.Equal(t, genericFailure, se.UserMessage())
}

func TestCreatePayment_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/payment/create/", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"success":          true,
			"payment_id":       "pay-1",
			"confirmation_url": "https://gateway.example/confirm/pay-1",
		})
	})

	res, err := c.CreatePayment(context.Background(), &OrderDraft{PaymentType: PaymentOnline})
	require.NoError(t, err)
	require.Equal(t, "pay-1", res.PaymentID)
	require.Equal(t, "https://gateway.example/confirm/pay-1", res.ConfirmationURL)
}

func TestOrderResult_DisplayID_FallsBackToDBID(t *testing.T) {
	r := &OrderResult{OrderDBID: 15}
	require.Equal(t, "15", r.DisplayID())

	r = &OrderResult{OrderID: "ORD_1", OrderDBID: 15}
	require.Equal(t, "ORD_1", r.DisplayID())

	r = &OrderResult{}
	require.Equal(t, "", r.DisplayID())
}

func TestProfileEndpoints(t *testing.T) {
	var lastMethod string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/users/me/", r.URL.Path)
		lastMethod = r.Method
		if r.Method == http.MethodGet {
			json.NewEncoder(w).Encode(Profile{FirstName: "Ann", Email: "a@b.c"})
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	ctx := context.Background()

	p, err := c.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "Ann", p.FirstName)

	require.NoError(t, c.UpdateMe(ctx, p))
	require.Equal(t, http.MethodPut, lastMethod)

	require.NoError(t, c.DeleteMe(ctx))
	require.Equal(t, http.MethodDelete, lastMethod)
}
