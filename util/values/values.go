package values

// Status strings returned inside ServerResponse and mapped to HTTP
// status codes by util.StatusCode.
const (
	Success          = "success"
	Created          = "created"
	Error            = "error"
	SystemErr        = "system-error"
	BadRequestBody   = "bad-request-body"
	Unprocessable    = "unprocessable"
	NotAllowed       = "not-allowed"
	NotAllowedMethod = "method-not-allowed"
	Conflict         = "conflict"
	NotFound         = "not-found"
	NotAuthorised    = "not-authorised"
	TokenExpired     = "token-expired"
	ActiveLogin      = "active-login"
)

const (
	HeaderRequestSource = "X-Request-Source"
	HeaderRequestID     = "X-Request-ID"
)

type contextKey string

// ContextTracingKey carries the tracing.Context for a request.
const ContextTracingKey = contextKey("tracing-context")
