package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/storefront-client/internal/client/api"
)

func contactForm() *Form {
	return &Form{Phone: "+7 (900) 123-45-67", FirstName: "Ivan", LastName: "Petrov"}
}

func TestWizard_StartsAtContact(t *testing.T) {
	w := NewWizard(nil, nil, nil)
	require.Equal(t, StepContact, w.Step())
}

func TestWizard_ContactValidation(t *testing.T) {
	tests := []struct {
		name    string
		form    *Form
		wantMsg string
	}{
		{
			name:    "all empty",
			form:    &Form{},
			wantMsg: "please fill in all required fields: phone, first name and last name",
		},
		{
			name:    "whitespace only names",
			form:    &Form{Phone: "+79001234567", FirstName: "  ", LastName: "Petrov"},
			wantMsg: "please fill in all required fields: phone, first name and last name",
		},
		{
			name:    "too few digits",
			form:    &Form{Phone: "123-456", FirstName: "Ivan", LastName: "Petrov"},
			wantMsg: "please enter a valid phone number",
		},
		{
			name: "formatted phone with enough digits",
			form: contactForm(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWizard(tt.form, nil, nil)
			err := w.GoToStep(context.Background(), StepDelivery)
			if tt.wantMsg == "" {
				require.NoError(t, err)
				require.Equal(t, StepDelivery, w.Step())
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, StepContact, verr.Step)
			require.Equal(t, tt.wantMsg, verr.Message)
			require.Equal(t, StepContact, w.Step(), "failed validation must not move the step")
		})
	}
}

func TestWizard_DeliveryValidation(t *testing.T) {
	ctx := context.Background()

	form := contactForm()
	w := NewWizard(form, nil, nil)
	require.NoError(t, w.GoToStep(ctx, StepDelivery))

	err := w.GoToStep(ctx, StepPayment)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "please choose a delivery method", verr.Message)

	w.SetDeliveryType(ctx, api.DeliveryCourier)
	err = w.GoToStep(ctx, StepPayment)
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "please fill in all delivery address fields", verr.Message)
	require.Equal(t, StepDelivery, w.Step())

	form.Country = "RU"
	form.Region = "Moscow Oblast"
	form.City = "Moscow"
	form.Street = "Tverskaya"
	form.House = "1"
	require.NoError(t, w.GoToStep(ctx, StepPayment))
	require.Equal(t, StepPayment, w.Step())
}

func TestWizard_PickupSkipsAddress(t *testing.T) {
	ctx := context.Background()
	w := NewWizard(contactForm(), nil, nil)
	require.NoError(t, w.GoToStep(ctx, StepDelivery))

	w.SetDeliveryType(ctx, api.DeliveryPickup)
	require.NoError(t, w.GoToStep(ctx, StepPayment))
}

func TestWizard_ValidationIsIdempotent(t *testing.T) {
	w := NewWizard(contactForm(), nil, nil)

	require.NoError(t, w.ValidateCurrentStep())
	require.NoError(t, w.ValidateCurrentStep())
	require.Equal(t, StepContact, w.Step())
}

func TestWizard_RequiredAddressFieldsToggle(t *testing.T) {
	ctx := context.Background()
	w := NewWizard(&Form{}, nil, nil)

	require.Nil(t, w.RequiredAddressFields())
	require.False(t, w.AddressSectionVisible())

	w.SetDeliveryType(ctx, api.DeliveryCourier)
	required := w.RequiredAddressFields()
	require.Equal(t, []string{"country", "region", "city", "street", "house"}, required)
	require.True(t, w.AddressSectionVisible())

	w.SetDeliveryType(ctx, api.DeliveryPickup)
	require.Nil(t, w.RequiredAddressFields())
	require.False(t, w.AddressSectionVisible())

	// Toggling back restores the same configuration.
	w.SetDeliveryType(ctx, api.DeliveryCourier)
	require.Equal(t, required, w.RequiredAddressFields())
}

func TestWizard_ForceSkipsValidation(t *testing.T) {
	w := NewWizard(&Form{}, nil, nil)
	w.Force(StepPayment)
	require.Equal(t, StepPayment, w.Step())
}

func TestWizard_UnknownStep(t *testing.T) {
	w := NewWizard(contactForm(), nil, nil)
	require.Error(t, w.GoToStep(context.Background(), Step(7)))
	require.Equal(t, StepContact, w.Step())
}

type refreshRecorder struct {
	calls int
	err   error
}

func (r *refreshRecorder) RefreshSummary(ctx context.Context) (*Summary, error) {
	r.calls++
	return nil, r.err
}

func TestWizard_SelectionTriggersRefresh(t *testing.T) {
	ctx := context.Background()
	rec := &refreshRecorder{}
	w := NewWizard(&Form{}, rec, nil)

	w.SetDeliveryType(ctx, api.DeliveryCourier)
	w.SetPaymentType(ctx, api.PaymentOnline)
	require.Equal(t, 2, rec.calls)
}

func TestWizard_RefreshFailureIsNonBlocking(t *testing.T) {
	ctx := context.Background()
	rec := &refreshRecorder{err: errors.New("catalog down")}
	w := NewWizard(contactForm(), rec, nil)

	w.SetDeliveryType(ctx, api.DeliveryPickup)
	require.NoError(t, w.GoToStep(ctx, StepDelivery))
	require.Equal(t, StepDelivery, w.Step())
}
