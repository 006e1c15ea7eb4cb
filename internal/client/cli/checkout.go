package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/storefront-client/internal/client/api"
	"github.com/dmitrijs2005/storefront-client/internal/client/checkout"
)

// Checkout walks the three-step checkout: contact, delivery, payment.
// Each transition re-runs the step's validation, so the user cannot reach
// the payment step with an unusable form.
func (a *App) Checkout(ctx context.Context) error {
	lines, err := a.cart.Read(ctx)
	if err != nil {
		printlnFn("Could not read the cart:", err.Error())
		return err
	}
	if len(lines) == 0 {
		printlnFn("Your cart is empty")
		return nil
	}

	form := &checkout.Form{}
	if email, err := a.tokens.Email(ctx); err == nil {
		form.Email = email
	}
	if restored, err := a.submit.RestoreOrderData(ctx, form); err == nil && restored {
		printlnFn("Restored the details from your previous attempt")
	}

	w := checkout.NewWizard(form, a.summary, a.log)

	for {
		switch w.Step() {
		case checkout.StepContact:
			if err := a.contactStep(ctx, w); err != nil {
				return err
			}
		case checkout.StepDelivery:
			if err := a.deliveryStep(ctx, w); err != nil {
				return err
			}
		case checkout.StepPayment:
			done, err := a.paymentStep(ctx, w)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}

func (a *App) contactStep(ctx context.Context, w *checkout.Wizard) error {
	form := w.Form()
	var err error
	if form.Phone, err = promptKeeping(a, "Phone", form.Phone); err != nil {
		return err
	}
	if form.Email, err = promptKeeping(a, "Email", form.Email); err != nil {
		return err
	}
	if form.FirstName, err = promptKeeping(a, "First name", form.FirstName); err != nil {
		return err
	}
	if form.LastName, err = promptKeeping(a, "Last name", form.LastName); err != nil {
		return err
	}

	if err := w.GoToStep(ctx, checkout.StepDelivery); err != nil {
		printlnFn(err.Error())
	}
	return nil
}

func (a *App) deliveryStep(ctx context.Context, w *checkout.Wizard) error {
	answer, err := getSimpleText(a.reader, "Delivery: courier or pickup?", os.Stdout)
	if err != nil {
		return err
	}
	switch answer {
	case "courier":
		w.SetDeliveryType(ctx, api.DeliveryCourier)
	case "pickup":
		w.SetDeliveryType(ctx, api.DeliveryPickup)
	default:
		printlnFn("Please answer courier or pickup")
		return nil
	}

	form := w.Form()
	if w.AddressSectionVisible() {
		if form.Country, err = promptKeeping(a, "Country", form.Country); err != nil {
			return err
		}
		if form.Region, err = promptKeeping(a, "Region", form.Region); err != nil {
			return err
		}
		if form.City, err = promptKeeping(a, "City", form.City); err != nil {
			return err
		}
		if form.Street, err = promptKeeping(a, "Street", form.Street); err != nil {
			return err
		}
		if form.House, err = promptKeeping(a, "House", form.House); err != nil {
			return err
		}
		if form.Apartment, err = promptKeeping(a, "Apartment (optional)", form.Apartment); err != nil {
			return err
		}
	}

	if err := w.GoToStep(ctx, checkout.StepPayment); err != nil {
		printlnFn(err.Error())
	}
	return nil
}

// paymentStep shows the reconciled summary, reads the payment choice and
// submits. It reports done=true when the order went through (or the user
// hit a server-side rejection worth stopping for); a validation push-back
// returns done=false so the outer loop resumes at the step the wizard now
// points at.
func (a *App) paymentStep(ctx context.Context, w *checkout.Wizard) (bool, error) {
	summary, err := a.summary.RefreshSummary(ctx)
	if err != nil {
		printlnFn("Could not refresh the order summary:", serverText(err))
		return true, err
	}
	for _, item := range summary.Items {
		printlnFn(item.Name, "x", item.Quantity, "—", a.amount(item.LineTotal))
	}
	printlnFn("Subtotal:", a.amount(summary.Subtotal))
	printlnFn("Delivery:", a.amount(summary.DeliveryFee))
	printlnFn("Total:   ", a.amount(summary.Total))

	answer, err := getSimpleText(a.reader, "Payment: online or cash (on delivery)?", os.Stdout)
	if err != nil {
		return true, err
	}
	switch answer {
	case "online":
		w.SetPaymentType(ctx, api.PaymentOnline)
	case "cash":
		w.SetPaymentType(ctx, api.PaymentOnDelivery)
	default:
		printlnFn("Please answer online or cash")
		return false, nil
	}

	out, err := a.submit.Submit(ctx, w)
	if err != nil {
		var verr *checkout.ValidationError
		var aerr *checkout.AddressIncompleteError
		if errors.As(err, &verr) || errors.As(err, &aerr) {
			// The wizard already points at the step that needs fixing.
			printlnFn(err.Error())
			return false, nil
		}
		printlnFn("Order submission failed:", serverText(err))
		return true, err
	}

	if out.OrderID != "" {
		printlnFn("Order placed! Your order number is", out.OrderID)
	} else {
		printlnFn("Payment created, finish it at:", out.RedirectURL)
	}
	return true, nil
}
