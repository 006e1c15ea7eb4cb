package common

// AuthorizationHeaderName is the HTTP header that carries the access
// credential on outbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is prepended to the access credential in the
// authorization header.
const BearerPrefix = "Bearer "
