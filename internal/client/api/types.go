package api

import (
	"strconv"

	"github.com/dmitrijs2005/storefront-client/internal/client/cart"
)

// TokenPair is the credential pair returned by login, registration and
// refresh. Refresh is empty when the server did not rotate it.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AuthResult is the login/registration response. Role and Email are
// advisory UX fields; real access control stays server-side.
type AuthResult struct {
	TokenPair
	CustomerID int64  `json:"customer_id"`
	Role       string `json:"role"`
	Email      string `json:"email"`
}

// Product is one catalog row.
type Product struct {
	ProductID   int64     `json:"product_id"`
	Price       float64   `json:"price"`
	ProductName string    `json:"product_name"`
	Images      ImageList `json:"images"`
}

// DeliveryType and PaymentType values accepted by order creation.
const (
	DeliveryCourier = "courier"
	DeliveryPickup  = "pickup"

	PaymentOnline     = "online"
	PaymentOnDelivery = "on_delivery"
)

// OrderDraft is the fully assembled submission payload. It is ephemeral:
// constructed at submission time, persisted to the recovery slot only on
// failure (or before handing off to the payment gateway), discarded on
// success.
type OrderDraft struct {
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	DeliveryType string `json:"delivery_type"`
	Country      string `json:"country"`
	Region       string `json:"region"`
	City         string `json:"city"`
	Street       string `json:"street"`
	House        string `json:"house"`
	Apartment    string `json:"apartment"`

	PaymentType   string `json:"payment_type"`
	PaymentMethod string `json:"payment_method"`

	Items []cart.Line `json:"items"`

	// Total is the authoritative amount recomputed from a fresh catalog
	// fetch right before submission, independent of the displayed summary.
	Total float64 `json:"total"`

	// TransactionID is a client-generated idempotency key echoed back by
	// the order service.
	TransactionID string `json:"transaction_id,omitempty"`
}

// OrderResult is the order-creation response.
type OrderResult struct {
	Success    bool    `json:"success"`
	OrderID    string  `json:"order_id"`
	OrderDBID  int64   `json:"order_db_id"`
	CustomerID int64   `json:"customer_id"`
	Total      float64 `json:"total"`
	Message    string  `json:"message"`
	Error      string  `json:"error"`
}

// DisplayID returns the human-facing order identifier, falling back to
// the numeric DB id when the formatted one is absent.
func (r *OrderResult) DisplayID() string {
	if r.OrderID != "" {
		return r.OrderID
	}
	if r.OrderDBID != 0 {
		return strconv.FormatInt(r.OrderDBID, 10)
	}
	return ""
}

// PaymentResult is the payment-creation response. ConfirmationURL points
// at the gateway page the whole client redirects to.
type PaymentResult struct {
	Success         bool   `json:"success"`
	PaymentID       string `json:"payment_id"`
	ConfirmationURL string `json:"confirmation_url"`
	Error           string `json:"error"`
}

// Profile is the /api/users/me/ representation.
type Profile struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}
