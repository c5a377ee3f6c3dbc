package client

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/kbukum/httpseq/client"

// tracer opens one client span per subscribed request. Disabled tracing is
// a nil tracer; span methods are nil-safe so the adapter stays branch-free.
type tracer struct {
	t trace.Tracer
}

func newTracer(enabled bool) tracer {
	if !enabled {
		return tracer{}
	}
	return tracer{t: otel.Tracer(tracerName)}
}

func (tr tracer) start(ctx context.Context, req Request) (context.Context, span) {
	if tr.t == nil {
		return ctx, span{}
	}
	ctx, s := tr.t.Start(ctx, "httpseq.request",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.full", req.URL),
		),
	)
	return ctx, span{s: s}
}

type span struct {
	s trace.Span
}

func (sp span) status(code int) {
	if sp.s == nil {
		return
	}
	sp.s.SetAttributes(attribute.Int("http.response.status_code", code))
}

func (sp span) fail(err error) {
	if sp.s == nil {
		return
	}
	sp.s.RecordError(err)
	sp.s.SetStatus(codes.Error, err.Error())
}

func (sp span) end() {
	if sp.s == nil {
		return
	}
	sp.s.End()
}
