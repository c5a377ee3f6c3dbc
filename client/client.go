package client

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/httpseq/logger"
	"github.com/kbukum/httpseq/single"
)

// Client builds request sequences. A Client is safe for concurrent use;
// concurrent requests are fully independent and may settle in any order.
type Client struct {
	transport Transport
	config    Config
	log       *logger.Logger
	tracer    tracer
}

// Option configures a Client.
type Option func(*Client)

// WithTransport substitutes the transport the client drives. Used by
// client/testutil; applications normally keep the net/http default.
func WithTransport(t Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithLogger substitutes the client's logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// New creates a Client from config.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config: cfg,
		tracer: newTracer(cfg.Trace),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.New(cfg.Log, "client")
	}
	if c.transport == nil {
		t, err := newNetTransport()
		if err != nil {
			return nil, err
		}
		c.transport = t
	}
	return c, nil
}

// Request builds the lazy sequence for one HTTP attempt. Construction
// performs no network activity and never fails; any problem with the
// request surfaces through the sequence's error channel after
// subscription.
func (c *Client) Request(req Request) *single.Single[*Response] {
	return single.New(func(ctx context.Context) (*Response, error) {
		return c.roundTrip(ctx, req)
	})
}

// Get builds a GET sequence projecting the response body as text.
func (c *Client) Get(url string, opts ...RequestOption) *single.Single[string] {
	req := Request{URL: url, Method: http.MethodGet}
	for _, opt := range opts {
		opt(&req)
	}
	return bodyText(c.Request(req))
}

// Post builds a POST sequence projecting the response body as text.
func (c *Client) Post(url, body string, opts ...RequestOption) *single.Single[string] {
	req := Request{URL: url, Method: http.MethodPost, Body: body}
	for _, opt := range opts {
		opt(&req)
	}
	return bodyText(c.Request(req))
}

// bodyText is the Get/Post projection: the success body as a string.
func bodyText(s *single.Single[*Response]) *single.Single[string] {
	return single.Map(s, func(r *Response) (string, error) {
		return r.Text(), nil
	})
}

// roundTrip drives the one transport attempt for a subscribed sequence and
// classifies its outcome. It runs on the subscription's goroutine; ctx is
// the subscription's context, so cancelation aborts the attempt.
func (c *Client) roundTrip(ctx context.Context, req Request) (*Response, error) {
	log := c.log.With(logger.Fields(
		logger.FieldRequestID, uuid.NewString(),
		logger.FieldMethod, req.Method,
		logger.FieldURL, req.URL,
	))

	timeout := req.Timeout
	if timeout == 0 {
		timeout = c.config.Timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	ctx, sp := c.tracer.start(ctx, req)
	defer sp.end()

	start := time.Now()
	log.Debug("sending request")

	raw, err := c.transport.RoundTrip(ctx, c.withDefaults(req))
	if err != nil {
		serr := newTransportError(err)
		sp.fail(serr)
		log.Warn("request failed", logger.Fields(
			logger.FieldError, serr.Error(),
			logger.FieldDuration, time.Since(start).Milliseconds(),
		))
		return nil, serr
	}

	sp.status(raw.StatusCode)

	if raw.StatusCode < 200 || raw.StatusCode >= 300 {
		serr := newStatusError(raw.StatusCode, raw.StatusText())
		sp.fail(serr)
		log.Warn("request failed", logger.Fields(
			logger.FieldStatus, raw.StatusCode,
			logger.FieldError, serr.Error(),
			logger.FieldDuration, time.Since(start).Milliseconds(),
		))
		return nil, serr
	}

	resp, err := newResponse(req.ResponseType, raw)
	if err != nil {
		sp.fail(err)
		log.Warn("response decode failed", logger.Fields(logger.FieldError, err.Error()))
		return nil, err
	}

	log.Debug("request completed", logger.Fields(
		logger.FieldStatus, raw.StatusCode,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return resp, nil
}

// withDefaults layers client-level headers and auth under the request's
// own. The input request value is left untouched.
func (c *Client) withDefaults(req Request) Request {
	merged := make(map[string]string, len(c.config.Headers)+len(req.Headers)+1)
	if c.config.UserAgent != "" {
		merged["User-Agent"] = c.config.UserAgent
	}
	for k, v := range c.config.Headers {
		merged[k] = v
	}
	for k, v := range req.Headers {
		merged[k] = v
	}
	req.Headers = merged
	return req
}
