package weather

import "errors"

// Failure taxonomy for provider fetches. Only ErrRateLimited has an automatic
// mitigation (stale-cache fallback in DataSource); the rest must reach the
// caller.
var (
	// ErrAuthentication covers 401/403 responses: bad or not-yet-activated
	// API key. Fatal for the city until the key is fixed.
	ErrAuthentication = errors.New("weather provider rejected api key")

	// ErrRateLimited covers 429 responses.
	ErrRateLimited = errors.New("weather provider rate limited")

	// ErrTransport covers network failures, timeouts, 5xx responses and an
	// open circuit breaker.
	ErrTransport = errors.New("weather provider unreachable")

	// ErrMalformedResponse covers responses that decode but lack the
	// expected currentConditions shape, or fail to decode at all.
	ErrMalformedResponse = errors.New("weather provider returned malformed response")
)
