package httpapi

// DefaultMaxBodyBytes is the request body limit for /predict. Base64 photos
// from phone cameras regularly exceed a few MiB.
const DefaultMaxBodyBytes int64 = 10 << 20

// maxBodyBytes controls the maximum allowed request body size for /predict.
var maxBodyBytes = DefaultMaxBodyBytes

// SetMaxBodyBytes allows configuring the maximum request body size.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
		return
	}
	maxBodyBytes = n
}

// inferTimeout bounds a single /predict call.
// Zero means no additional timeout beyond server/connection timeouts.
var inferTimeout = int64(0) // seconds

// SetInferTimeoutSeconds sets the predict timeout in seconds (0 disables).
func SetInferTimeoutSeconds(sec int64) {
	if sec < 0 {
		sec = 0
	}
	inferTimeout = sec
}

// hideErrors replaces raw 500 error text with a generic message.
var hideErrors bool

// SetHideErrors toggles generic error messages for failed predictions.
// The full error is still logged.
func SetHideErrors(v bool) { hideErrors = v }

// CORS configuration. Enabled for every origin unless switched off.
var (
	corsEnabled        = true
	corsAllowedOrigins = []string{"*"}
	corsAllowedMethods []string
	corsAllowedHeaders []string
)

var (
	defaultCORSMethods = []string{"GET", "POST", "OPTIONS"}
	defaultCORSHeaders = []string{"Accept", "Content-Type", "X-Request-Id", "X-Log-Level"}
)

// SetCORSOptions configures CORS behavior for the HTTP server.
// Empty methods or headers fall back to the defaults.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
	corsAllowedMethods = append([]string(nil), methods...)
	corsAllowedHeaders = append([]string(nil), headers...)
}

func corsMethods() []string {
	if len(corsAllowedMethods) == 0 {
		return defaultCORSMethods
	}
	return corsAllowedMethods
}

func corsHeaders() []string {
	if len(corsAllowedHeaders) == 0 {
		return defaultCORSHeaders
	}
	return corsAllowedHeaders
}

func corsOrigins() []string {
	if len(corsAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return corsAllowedOrigins
}
