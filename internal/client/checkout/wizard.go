package checkout

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storefront-client/internal/client/api"
	"github.com/dmitrijs2005/storefront-client/internal/logging"
)

// Step is one of the three checkout steps. Exactly one step is active at
// any time.
type Step int

const (
	StepContact Step = iota + 1
	StepDelivery
	StepPayment
)

func (s Step) valid() bool {
	return s >= StepContact && s <= StepPayment
}

// ValidationError blocks a step transition or a submission. Message is
// user-facing; the step state is unchanged when it is returned.
type ValidationError struct {
	Step    Step
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// SummaryRefresher recomputes the order summary. The wizard triggers it
// on every delivery- or payment-selection change so displayed totals
// never go stale relative to the last known server prices.
type SummaryRefresher interface {
	RefreshSummary(ctx context.Context) (*Summary, error)
}

// Wizard is the checkout step state machine. Transitions are guarded by
// the source step's validator; there is no terminal state — submission is
// a side effect triggered from the payment step, not a transition.
type Wizard struct {
	step    Step
	form    *Form
	summary SummaryRefresher
	log     logging.Logger
}

// NewWizard starts at the contact step.
func NewWizard(form *Form, summary SummaryRefresher, log logging.Logger) *Wizard {
	if form == nil {
		form = &Form{}
	}
	return &Wizard{step: StepContact, form: form, summary: summary, log: log}
}

func (w *Wizard) Step() Step  { return w.step }
func (w *Wizard) Form() *Form { return w.form }

// GoToStep validates the currently active step and, only if it passes,
// activates target. On a validation failure the active step does not
// change. The guard is idempotent: re-validating an already-valid step
// leaves the same step active.
func (w *Wizard) GoToStep(ctx context.Context, target Step) error {
	if !target.valid() {
		return fmt.Errorf("unknown step %d", target)
	}
	if err := w.validateStep(w.step); err != nil {
		return err
	}
	w.step = target
	return nil
}

// ValidateCurrentStep runs the active step's validator without moving.
func (w *Wizard) ValidateCurrentStep() error {
	return w.validateStep(w.step)
}

// Force activates target without running any validation gate. Used by
// the submission protocol to push the user back to the delivery step
// when the address turns out to be incomplete.
func (w *Wizard) Force(target Step) {
	if target.valid() {
		w.step = target
	}
}

func (w *Wizard) validateStep(s Step) error {
	switch s {
	case StepContact:
		if !allFilled(w.form.Phone, w.form.FirstName, w.form.LastName) {
			return &ValidationError{Step: s, Message: "please fill in all required fields: phone, first name and last name"}
		}
		if digitCount(w.form.Phone) < minPhoneDigits {
			return &ValidationError{Step: s, Message: "please enter a valid phone number"}
		}
		return nil

	case StepDelivery:
		if w.form.DeliveryType == "" {
			return &ValidationError{Step: s, Message: "please choose a delivery method"}
		}
		if w.form.DeliveryType == api.DeliveryCourier {
			if !allFilled(w.form.Country, w.form.Region, w.form.City, w.form.Street, w.form.House) {
				return &ValidationError{Step: s, Message: "please fill in all delivery address fields"}
			}
		}
		return nil

	case StepPayment:
		// Payment happens on the gateway side or on delivery; nothing to
		// validate here.
		return nil
	}
	return nil
}

// SetDeliveryType records the delivery selection and refreshes the
// summary. Selecting courier flips the address sub-fields to required
// and reveals the address section; the alternative flips them back.
func (w *Wizard) SetDeliveryType(ctx context.Context, deliveryType string) {
	w.form.DeliveryType = deliveryType
	w.refreshSummary(ctx)
}

// SetPaymentType records the payment selection and refreshes the summary.
func (w *Wizard) SetPaymentType(ctx context.Context, paymentType string) {
	w.form.PaymentType = paymentType
	w.refreshSummary(ctx)
}

// RequiredAddressFields lists the address fields that are currently
// mandatory. Toggling the delivery method back and forth restores the
// same configuration.
func (w *Wizard) RequiredAddressFields() []string {
	if w.form.DeliveryType == api.DeliveryCourier {
		return []string{"country", "region", "city", "street", "house"}
	}
	return nil
}

// AddressSectionVisible reports whether the address section is shown.
func (w *Wizard) AddressSectionVisible() bool {
	return w.form.DeliveryType == api.DeliveryCourier
}

// Summary refresh failures are non-blocking: the previously displayed
// values stay in place and the error is only logged.
func (w *Wizard) refreshSummary(ctx context.Context) {
	if w.summary == nil {
		return
	}
	if _, err := w.summary.RefreshSummary(ctx); err != nil && w.log != nil {
		w.log.Warn(ctx, "order summary refresh failed", "error", err)
	}
}
