package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/storefront-client/internal/client/api"
	"github.com/dmitrijs2005/storefront-client/internal/client/cart"
	"github.com/dmitrijs2005/storefront-client/internal/client/store"
	"github.com/dmitrijs2005/storefront-client/internal/common"
	"github.com/dmitrijs2005/storefront-client/internal/logging"
)

const (
	// KeyRestoreOrderData is the single recovery slot holding the last
	// order draft, persisted so an interrupted submission can be retried.
	KeyRestoreOrderData = "restore_order_data"

	// KeyPaymentID tracks the in-flight gateway payment.
	KeyPaymentID = "payment_id"
)

// AddressIncompleteError is returned when a courier order reaches
// submission with an address that slipped past the step gate. The
// submission protocol pushes the wizard back to the delivery step when
// reporting it.
type AddressIncompleteError struct {
	Field string
}

func (e *AddressIncompleteError) Error() string {
	return fmt.Sprintf("please fill in the %s field of the delivery address", e.Field)
}

// CartStore is the slice of the cart cache submission needs.
type CartStore interface {
	Read(ctx context.Context) ([]cart.Line, error)
	Clear(ctx context.Context) error
}

// Outcome describes where submission landed. For pay-on-delivery orders
// RedirectURL points at the local success page and the cart has been
// cleared; for online payments it is the gateway confirmation URL and the
// cart is kept until payment completes.
type Outcome struct {
	RedirectURL string
	OrderID     string
	PaymentID   string
	CartCleared bool
}

// Submitter runs the dual-path order submission protocol: direct order
// creation for pay-on-delivery, payment handoff for online payments. The
// two paths persist the recovery draft at different moments so a failure
// never loses the order and a success never leaves a stale draft behind.
type Submitter struct {
	client   api.Client
	cart     CartStore
	recovery store.Store
	log      logging.Logger
}

func NewSubmitter(client api.Client, cartStore CartStore, recovery store.Store, log logging.Logger) *Submitter {
	return &Submitter{client: client, cart: cartStore, recovery: recovery, log: log}
}

// Submit assembles the order draft from the wizard's form, recomputes the
// authoritative total from a fresh catalog fetch and runs the payment
// branch. The wizard must be on the payment step.
func (s *Submitter) Submit(ctx context.Context, w *Wizard) (*Outcome, error) {
	if w.Step() != StepPayment {
		return nil, &ValidationError{Step: w.Step(), Message: "please complete the previous checkout steps first"}
	}
	if err := w.ValidateCurrentStep(); err != nil {
		return nil, err
	}

	form := w.Form()
	if form.DeliveryType == api.DeliveryCourier {
		if field, ok := missingAddressField(form); ok {
			w.Force(StepDelivery)
			return nil, &AddressIncompleteError{Field: field}
		}
	}

	lines, err := s.cart.Read(ctx)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, common.ErrEmptyCart
	}

	draft := buildDraft(form, lines)

	total, err := s.authoritativeTotal(ctx, lines)
	if err != nil {
		return nil, err
	}
	draft.Total = total

	switch form.PaymentType {
	case api.PaymentOnDelivery:
		return s.submitOnDelivery(ctx, draft)
	case api.PaymentOnline:
		return s.submitOnline(ctx, draft)
	default:
		return nil, &ValidationError{Step: StepPayment, Message: "please choose a payment method"}
	}
}

// missingAddressField re-checks the address essentials right before the
// order leaves. The delivery step gate already requires the full address;
// this is the last line against a form mutated after that gate passed.
func missingAddressField(f *Form) (string, bool) {
	fields := []struct {
		name  string
		value string
	}{
		{"city", f.City},
		{"street", f.Street},
	}
	for _, fld := range fields {
		if strings.TrimSpace(fld.value) == "" {
			return fld.name, true
		}
	}
	return "", false
}

func buildDraft(f *Form, lines []cart.Line) *api.OrderDraft {
	return &api.OrderDraft{
		Phone:     strings.TrimSpace(f.Phone),
		Email:     strings.TrimSpace(f.Email),
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),

		DeliveryType: f.DeliveryType,
		Country:      strings.TrimSpace(f.Country),
		Region:       strings.TrimSpace(f.Region),
		City:         strings.TrimSpace(f.City),
		Street:       strings.TrimSpace(f.Street),
		House:        strings.TrimSpace(f.House),
		Apartment:    strings.TrimSpace(f.Apartment),

		PaymentType:   f.PaymentType,
		PaymentMethod: f.PaymentMethod(),

		Items:         lines,
		TransactionID: uuid.NewString(),
	}
}

// authoritativeTotal recomputes the amount from a fresh catalog fetch,
// independent of whatever summary was last displayed. Lines whose
// product is gone from the catalog contribute nothing. The delivery fee
// is settled server-side and is not part of the submitted amount.
func (s *Submitter) authoritativeTotal(ctx context.Context, lines []cart.Line) (float64, error) {
	products, err := s.client.ListProducts(ctx)
	if err != nil {
		return 0, err
	}
	prices := make(map[int64]float64, len(products))
	for _, p := range products {
		prices[p.ProductID] = p.Price
	}
	var total float64
	for _, line := range lines {
		if price, ok := prices[line.ProductID]; ok {
			total += price * float64(line.Quantity)
		}
	}
	return total, nil
}

// submitOnDelivery persists the recovery draft BEFORE the network call:
// if the process dies mid-request the draft survives for a retry. On
// success the cart is cleared and the caller is redirected to the local
// success page.
func (s *Submitter) submitOnDelivery(ctx context.Context, draft *api.OrderDraft) (*Outcome, error) {
	if err := s.saveDraft(ctx, draft); err != nil {
		return nil, err
	}

	res, err := s.client.CreateOrder(ctx, draft)
	if err != nil {
		return nil, err
	}

	if err := s.cart.Clear(ctx); err != nil {
		// The order is placed; a stale local cart is an annoyance, not a
		// reason to fail the submission.
		if s.log != nil {
			s.log.Warn(ctx, "cart clear after order creation failed", "error", err)
		}
	}

	id := res.DisplayID()
	return &Outcome{
		RedirectURL: "/checkout-success/?order_id=" + url.QueryEscape(id),
		OrderID:     id,
		CartCleared: true,
	}, nil
}

// submitOnline hands the draft to the payment gateway. The draft and the
// payment id are persisted only AFTER the gateway accepted, so the
// confirmation page can resume the order; the cart stays intact until the
// payment actually completes.
func (s *Submitter) submitOnline(ctx context.Context, draft *api.OrderDraft) (*Outcome, error) {
	res, err := s.client.CreatePayment(ctx, draft)
	if err != nil {
		return nil, err
	}

	if err := s.recovery.Set(ctx, KeyPaymentID, []byte(res.PaymentID)); err != nil {
		return nil, err
	}
	if err := s.saveDraft(ctx, draft); err != nil {
		return nil, err
	}

	return &Outcome{
		RedirectURL: res.ConfirmationURL,
		PaymentID:   res.PaymentID,
	}, nil
}

func (s *Submitter) saveDraft(ctx context.Context, draft *api.OrderDraft) error {
	b, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return s.recovery.Set(ctx, KeyRestoreOrderData, b)
}
