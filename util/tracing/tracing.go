package tracing

// Context identifies a single request as it moves through the handlers.
// It is attached to the request context by the RequestTracing middleware.
type Context struct {
	RequestID     string
	RequestSource string
}
