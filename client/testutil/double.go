package testutil

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/kbukum/httpseq/client"
	"github.com/kbukum/httpseq/logger"
	"github.com/kbukum/httpseq/single"
)

// inTest reports whether the process is a test binary. A seam so the guard
// itself can be unit-tested.
var inTest = testing.Testing

func mustTest(what string) {
	if !inTest() {
		panic(fmt.Sprintf("httpseq/testutil: %s constructed outside a test binary", what))
	}
}

// Handler produces the reply for one request. It runs on the
// subscription's goroutine and may compute inline or block on asynchronous
// work of its own; a configured request timeout or a canceled subscription
// releases the caller either way.
type Handler func(ctx context.Context, req client.Request) (*Reply, error)

// Reply is the double's canned transport completion.
type Reply struct {
	// StatusCode is the HTTP status code. Codes outside [200,300) are
	// classified as failures exactly like the live adapter.
	StatusCode int
	// Body is the response body.
	Body string
	// Headers are the response headers.
	Headers map[string]string
}

// ReplyOption configures a reply built via NewReply.
type ReplyOption func(*Reply)

// ReplyStatus overrides the reply's status code.
func ReplyStatus(code int) ReplyOption {
	return func(r *Reply) {
		r.StatusCode = code
	}
}

// ReplyHeaders merges headers into the reply.
func ReplyHeaders(headers map[string]string) ReplyOption {
	return func(r *Reply) {
		for k, v := range headers {
			r.Headers[k] = v
		}
	}
}

// ReplyHeader sets a single reply header.
func ReplyHeader(key, value string) ReplyOption {
	return func(r *Reply) {
		r.Headers[key] = value
	}
}

// NewReply builds a success reply with the given body. Status defaults
// to 200.
func NewReply(body string, opts ...ReplyOption) *Reply {
	mustTest("reply")
	r := &Reply{
		StatusCode: http.StatusOK,
		Body:       body,
		Headers:    make(map[string]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FailedReply builds the canonical failure reply: status 400, empty body
// and headers.
func FailedReply() *Reply {
	mustTest("reply")
	return &Reply{
		StatusCode: http.StatusBadRequest,
		Headers:    make(map[string]string),
	}
}

// Double is a client whose transport is a test handler. It exposes the
// adapter's full operation surface with identical sequence semantics.
type Double struct {
	client  *client.Client
	handler Handler
	calls   atomic.Int64
}

// New creates a Double driven by handler. It panics outside a test binary.
func New(handler Handler) *Double {
	mustTest("double")
	d := &Double{handler: handler}
	c, err := client.New(client.Config{},
		client.WithTransport(doubleTransport{d}),
		client.WithLogger(logger.Nop()),
	)
	if err != nil {
		panic(fmt.Sprintf("httpseq/testutil: build double client: %v", err))
	}
	d.client = c
	return d
}

// Get builds a GET sequence against the handler.
func (d *Double) Get(url string, opts ...client.RequestOption) *single.Single[string] {
	return d.client.Get(url, opts...)
}

// Post builds a POST sequence against the handler.
func (d *Double) Post(url, body string, opts ...client.RequestOption) *single.Single[string] {
	return d.client.Post(url, body, opts...)
}

// Request builds a full request sequence against the handler.
func (d *Double) Request(req client.Request) *single.Single[*client.Response] {
	return d.client.Request(req)
}

// Client returns the wrapped client for tests that exercise the adapter
// surface directly.
func (d *Double) Client() *client.Client {
	return d.client
}

// Calls reports how many times the handler was invoked. Zero until the
// first subscription: building sequences is free.
func (d *Double) Calls() int64 {
	return d.calls.Load()
}

// doubleTransport adapts a Handler to the client's Transport boundary. The
// handler races the request context so a blocking handler still honors
// timeout and cancelation.
type doubleTransport struct {
	d *Double
}

type handlerResult struct {
	reply *Reply
	err   error
}

func (t doubleTransport) RoundTrip(ctx context.Context, req client.Request) (*client.RawResponse, error) {
	t.d.calls.Add(1)

	ch := make(chan handlerResult, 1)
	go func() {
		reply, err := t.d.handler(ctx, req)
		ch <- handlerResult{reply: reply, err: err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			return nil, res.err
		}
		return rawResponse(res.reply), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func rawResponse(reply *Reply) *client.RawResponse {
	headers := make(map[string]string, len(reply.Headers))
	for k, v := range reply.Headers {
		headers[k] = v
	}
	return &client.RawResponse{
		StatusCode: reply.StatusCode,
		Status:     fmt.Sprintf("%d %s", reply.StatusCode, http.StatusText(reply.StatusCode)),
		Headers:    headers,
		Body:       []byte(reply.Body),
	}
}
