// Package checkout drives the three-step checkout flow: the step state
// machine with per-step validation gates, the summary reconciliation
// engine, and the dual-path order submission protocol.
package checkout

import (
	"strings"

	"github.com/dmitrijs2005/storefront-client/internal/client/api"
)

// minPhoneDigits is the minimum number of digits a phone number must
// contain once all formatting characters are stripped.
const minPhoneDigits = 10

// Form is the checkout form state across all three steps.
type Form struct {
	// Step 1: contact.
	Phone     string
	Email     string
	FirstName string
	LastName  string

	// Step 2: delivery. Address sub-fields are required if and only if
	// DeliveryType is courier.
	DeliveryType string
	Country      string
	Region       string
	City         string
	Street       string
	House        string
	Apartment    string

	// Step 3: payment.
	PaymentType string
}

// PaymentMethod derives the wire-level payment method from the selected
// payment type.
func (f *Form) PaymentMethod() string {
	if f.PaymentType == api.PaymentOnline {
		return "card"
	}
	return "cash"
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

func allFilled(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}
