package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// RawResponse is a transport's completion snapshot: whatever came off the
// wire, undecoded.
type RawResponse struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Status is the full status line, e.g. "404 Not Found".
	Status string
	// Headers are the response headers, flattened to single values.
	Headers map[string]string
	// Body is the raw response body.
	Body []byte
}

// StatusText returns the reason phrase without the leading status code.
func (r *RawResponse) StatusText() string {
	text := strings.TrimPrefix(r.Status, strconv.Itoa(r.StatusCode))
	return strings.TrimSpace(text)
}

// Transport performs exactly one network exchange. Implementations must
// honor ctx cancellation to support abort and timeout, and must return
// either a completion snapshot or an error, never both.
type Transport interface {
	RoundTrip(ctx context.Context, req Request) (*RawResponse, error)
}

// netTransport is the live Transport on net/http. The underlying client
// carries no global timeout; deadlines arrive per request through ctx.
type netTransport struct {
	client *http.Client
	jar    http.CookieJar
}

func newNetTransport() (*netTransport, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &netTransport{
		client: &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()},
		jar:    jar,
	}, nil
}

// RoundTrip implements Transport.
func (t *netTransport) RoundTrip(ctx context.Context, req Request) (*RawResponse, error) {
	var bodyReader io.Reader
	if req.Body != "" {
		bodyReader = strings.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	req.Auth.apply(httpReq)

	hc := t.client
	if req.WithCredentials {
		// Same transport, with the shared jar attached for this attempt only.
		hc = &http.Client{Transport: t.client.Transport, Jar: t.jar}
	}

	resp, err := hc.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &RawResponse{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Headers:    flattenHeaders(resp.Header),
		Body:       body,
	}, nil
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
