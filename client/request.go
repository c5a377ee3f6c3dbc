package client

import "time"

// ResponseType selects the shape of a successful response body.
type ResponseType string

const (
	// ResponseTypeText yields the body as a string. This is the default.
	ResponseTypeText ResponseType = "text"
	// ResponseTypeJSON decodes the body as JSON into an untyped value.
	ResponseTypeJSON ResponseType = "json"
	// ResponseTypeDocument parses the body as an HTML document.
	ResponseTypeDocument ResponseType = "document"
	// ResponseTypeArrayBuffer yields the raw body bytes.
	ResponseTypeArrayBuffer ResponseType = "arraybuffer"
	// ResponseTypeBlob yields the raw body bytes.
	ResponseTypeBlob ResponseType = "blob"
)

// Request describes one outbound HTTP attempt. It is a value type fixed at
// build time; the adapter never mutates it after the sequence is created.
type Request struct {
	// URL is the absolute request URL.
	URL string
	// Method is the HTTP method (GET, POST, etc).
	Method string
	// ResponseType selects the success body shape. Empty means text.
	ResponseType ResponseType
	// Body is the request body. Empty means no body is sent.
	Body string
	// Headers are request headers, applied as an unordered set.
	Headers map[string]string
	// Timeout bounds the attempt. Zero means no deadline: the attempt may
	// run indefinitely.
	Timeout time.Duration
	// WithCredentials attaches the client's cookie jar to the attempt.
	WithCredentials bool
	// Auth overrides the client-level auth for this request.
	Auth *AuthConfig
}

// RequestOption configures a single request built via Get or Post.
type RequestOption func(*Request)

// WithHeaders merges headers into the request.
func WithHeaders(headers map[string]string) RequestOption {
	return func(r *Request) {
		if r.Headers == nil {
			r.Headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			r.Headers[k] = v
		}
	}
}

// WithHeader sets a single request header.
func WithHeader(key, value string) RequestOption {
	return func(r *Request) {
		if r.Headers == nil {
			r.Headers = make(map[string]string, 1)
		}
		r.Headers[key] = value
	}
}

// WithTimeout bounds the request. Whichever of the timeout and the
// terminal event fires first wins; the other is dropped.
func WithTimeout(d time.Duration) RequestOption {
	return func(r *Request) {
		r.Timeout = d
	}
}

// WithCredentials attaches the client's cookie jar to the request.
func WithCredentials() RequestOption {
	return func(r *Request) {
		r.WithCredentials = true
	}
}

// WithResponseType selects the success body shape.
func WithResponseType(rt ResponseType) RequestOption {
	return func(r *Request) {
		r.ResponseType = rt
	}
}

// WithAuth overrides authentication for the request.
func WithAuth(auth *AuthConfig) RequestOption {
	return func(r *Request) {
		r.Auth = auth
	}
}
