// Package common defines shared constants and sentinel errors used across
// the storefront client layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

// ErrEmptyCart rejects a checkout submission with no cart lines.
var ErrEmptyCart = errors.New("cart is empty")
