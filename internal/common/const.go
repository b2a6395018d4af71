package common

// AuthorizationHeaderName is the HTTP header used to carry the bearer token
// on outbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix prepends the token in the Authorization header value.
const BearerPrefix = "Bearer "

// RequestIDHeaderName carries a client-generated id for request correlation.
const RequestIDHeaderName = "X-Request-Id"

// Local store keys. Both are cleared together on logout or 401.
const (
	StoreKeyAccessToken = "access_token"
	StoreKeyUser        = "user"
)
