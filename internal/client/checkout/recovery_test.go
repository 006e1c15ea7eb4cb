package checkout

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/storefront-client/internal/client/api"
	"github.com/dmitrijs2005/storefront-client/internal/client/cart"
)

func TestRestoreOrderData_Empty(t *testing.T) {
	s := NewSubmitter(&fakeClient{}, &memCart{}, recoveryStore(t), nil)

	form := &Form{}
	ok, err := s.RestoreOrderData(context.Background(), form)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, &Form{}, form)
}

func TestRestoreOrderData_RoundTrip(t *testing.T) {
	ctx := context.Background()
	recovery := recoveryStore(t)

	draft := &api.OrderDraft{
		Phone:        "+79001234567",
		Email:        "ivan@example.com",
		FirstName:    "Ivan",
		LastName:     "Petrov",
		DeliveryType: api.DeliveryCourier,
		Country:      "RU",
		Region:       "Moscow Oblast",
		City:         "Moscow",
		Street:       "Tverskaya",
		House:        "1",
		Apartment:    "12",
		PaymentType:  api.PaymentOnDelivery,
		Items:        []cart.Line{{ProductID: 1, Quantity: 2}},
		Total:        1000,
	}
	b, err := json.Marshal(draft)
	require.NoError(t, err)
	require.NoError(t, recovery.Set(ctx, KeyRestoreOrderData, b))

	s := NewSubmitter(&fakeClient{}, &memCart{}, recovery, nil)
	form := &Form{}
	ok, err := s.RestoreOrderData(ctx, form)
	require.NoError(t, err)
	require.True(t, ok)

	require.Equal(t, draft.Phone, form.Phone)
	require.Equal(t, draft.Email, form.Email)
	require.Equal(t, draft.FirstName, form.FirstName)
	require.Equal(t, draft.LastName, form.LastName)
	require.Equal(t, draft.DeliveryType, form.DeliveryType)
	require.Equal(t, draft.Country, form.Country)
	require.Equal(t, draft.City, form.City)
	require.Equal(t, draft.Apartment, form.Apartment)
	require.Equal(t, draft.PaymentType, form.PaymentType)

	// The slot is consumed on a successful restore.
	left, err := recovery.Get(ctx, KeyRestoreOrderData)
	require.NoError(t, err)
	require.Nil(t, left)

	ok, err = s.RestoreOrderData(ctx, &Form{})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRestoreOrderData_CorruptDraftIsDiscarded(t *testing.T) {
	ctx := context.Background()
	recovery := recoveryStore(t)
	require.NoError(t, recovery.Set(ctx, KeyRestoreOrderData, []byte("{not json")))

	s := NewSubmitter(&fakeClient{}, &memCart{}, recovery, nil)
	form := &Form{}
	ok, err := s.RestoreOrderData(ctx, form)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, &Form{}, form)

	left, err := recovery.Get(ctx, KeyRestoreOrderData)
	require.NoError(t, err)
	require.Nil(t, left, "an unreadable draft is removed, not retried")
}
