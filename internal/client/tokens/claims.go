package tokens

import (
	"encoding/json"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Claim names checked for the subject identifier, in priority order.
// The identity service issues tokens with customer_id; user_id is the
// legacy claim name.
const (
	claimCustomerID = "customer_id"
	claimUserID     = "user_id"
)

// SubjectID decodes the payload segment of a credential without verifying
// the signature and returns the subject identifier claim.
//
// This extraction is advisory: it exists for per-subject cart namespacing
// and UX only, and must never gate an authorization decision — access
// control stays server-side. Any malformation (wrong segment count, bad
// base64, bad JSON, missing claim) yields ("", false); it never returns
// an error and never panics.
func SubjectID(token string) (string, bool) {
	if token == "" {
		return "", false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", false
	}

	for _, name := range []string{claimCustomerID, claimUserID} {
		if v, ok := claims[name]; ok {
			if s, ok := claimToString(v); ok {
				return s, true
			}
		}
	}
	return "", false
}

// claimToString normalizes the identifier claim, which the backend emits
// as a number but older tokens carry as a string.
func claimToString(v any) (string, bool) {
	switch value := v.(type) {
	case string:
		return value, value != ""
	case float64:
		return strconv.FormatInt(int64(value), 10), true
	case json.Number:
		return value.String(), true
	default:
		return "", false
	}
}
