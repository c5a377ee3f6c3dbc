package testutil

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/kbukum/httpseq/client"
	"github.com/kbukum/httpseq/single"
)

func TestDouble_GetSuccess(t *testing.T) {
	d := New(func(_ context.Context, _ client.Request) (*Reply, error) {
		return NewReply("hello"), nil
	})

	body, err := d.Get("https://example.test/foobar").
		Subscribe(context.Background()).Wait(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body != "hello" {
		t.Errorf("expected hello, got %q", body)
	}
}

func TestDouble_FailedReply(t *testing.T) {
	d := New(func(_ context.Context, _ client.Request) (*Reply, error) {
		return FailedReply(), nil
	})

	sub := d.Get("https://example.test/foobar").Subscribe(context.Background())
	_, err := sub.Wait(context.Background())
	serr, ok := client.AsStatus(err)
	if !ok {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if serr.StatusCode != 400 {
		t.Errorf("expected 400, got %d", serr.StatusCode)
	}
	if sub.State() != single.Failed {
		t.Errorf("expected failed, got %s", sub.State())
	}
}

func TestDouble_SuccessReplyWithFailureStatus(t *testing.T) {
	d := New(func(_ context.Context, _ client.Request) (*Reply, error) {
		return NewReply("gone", ReplyStatus(404)), nil
	})

	_, err := d.Get("https://example.test/foobar").
		Subscribe(context.Background()).Wait(context.Background())
	serr, ok := client.AsStatus(err)
	if !ok {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if serr.StatusCode != 404 {
		t.Errorf("expected 404, got %d", serr.StatusCode)
	}
	if serr.Error() != "404: Not Found" {
		t.Errorf("unexpected error string %q", serr.Error())
	}
}

func TestDouble_Lazy(t *testing.T) {
	d := New(func(_ context.Context, _ client.Request) (*Reply, error) {
		return NewReply("ignored"), nil
	})

	seq := d.Get("https://example.test/foobar")
	time.Sleep(20 * time.Millisecond)
	if got := d.Calls(); got != 0 {
		t.Fatalf("handler invoked %d times before subscription", got)
	}

	if _, err := seq.Subscribe(context.Background()).Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := d.Calls(); got != 1 {
		t.Errorf("handler invoked %d times, want 1", got)
	}
}

func TestDouble_Timeout(t *testing.T) {
	resolved := make(chan struct{})
	d := New(func(ctx context.Context, _ client.Request) (*Reply, error) {
		// Handler that outlives the request deadline.
		time.Sleep(100 * time.Millisecond)
		reply := NewReply("late")
		close(resolved)
		return reply, nil
	})

	sub := d.Get("https://example.test/foobar", client.WithTimeout(10*time.Millisecond)).
		Subscribe(context.Background())

	_, err := sub.Wait(context.Background())
	if _, ok := client.AsStatus(err); !ok {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if sub.State() != single.Failed {
		t.Fatalf("expected failed, got %s", sub.State())
	}

	// Even after the handler eventually resolves, the terminal outcome
	// must not change.
	<-resolved
	time.Sleep(20 * time.Millisecond)
	if sub.State() != single.Failed {
		t.Errorf("late resolution changed state to %s", sub.State())
	}
	if _, err := sub.Result(); err == nil {
		t.Error("late resolution delivered a value")
	}
}

func TestDouble_AsyncHandler(t *testing.T) {
	d := New(func(ctx context.Context, _ client.Request) (*Reply, error) {
		// Deferred production: resolve on a separate goroutine.
		ch := make(chan *Reply, 1)
		go func() {
			time.Sleep(10 * time.Millisecond)
			ch <- NewReply("deferred")
		}()
		select {
		case r := <-ch:
			return r, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})

	body, err := d.Get("https://example.test/foobar").
		Subscribe(context.Background()).Wait(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body != "deferred" {
		t.Errorf("expected deferred, got %q", body)
	}
}

func TestDouble_HandlerError(t *testing.T) {
	boom := errors.New("handler exploded")
	d := New(func(_ context.Context, _ client.Request) (*Reply, error) {
		return nil, boom
	})

	_, err := d.Get("https://example.test/foobar").
		Subscribe(context.Background()).Wait(context.Background())
	serr, ok := client.AsStatus(err)
	if !ok {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if serr.StatusCode != 0 {
		t.Errorf("expected status 0, got %d", serr.StatusCode)
	}
	if !errors.Is(err, boom) {
		t.Error("expected handler error in the chain")
	}
}

func TestDouble_Cancel(t *testing.T) {
	d := New(func(ctx context.Context, _ client.Request) (*Reply, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	sub := d.Get("https://example.test/foobar").Subscribe(context.Background())
	sub.Cancel()

	if _, err := sub.Result(); !errors.Is(err, single.ErrCanceled) {
		t.Fatalf("expected ErrCanceled, got %v", err)
	}
	if got := d.Calls(); got != 1 {
		t.Errorf("handler invoked %d times, want 1", got)
	}
}

func TestDouble_Post(t *testing.T) {
	d := New(func(_ context.Context, req client.Request) (*Reply, error) {
		if req.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", req.Method)
		}
		if req.Body != "payload" {
			t.Errorf("expected payload, got %q", req.Body)
		}
		return NewReply("posted"), nil
	})

	body, err := d.Post("https://example.test/submit", "payload").
		Subscribe(context.Background()).Wait(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body != "posted" {
		t.Errorf("expected posted, got %q", body)
	}
}

func TestDouble_RequestSeesOptions(t *testing.T) {
	d := New(func(_ context.Context, req client.Request) (*Reply, error) {
		if req.Headers["X-Probe"] != "1" {
			t.Errorf("expected probe header, got %v", req.Headers)
		}
		if req.ResponseType != client.ResponseTypeJSON {
			t.Errorf("expected json response type, got %s", req.ResponseType)
		}
		return NewReply(`{"ok":true}`, ReplyHeader("Content-Type", "application/json")), nil
	})

	resp, err := d.Request(client.Request{
		URL:          "https://example.test/api",
		Method:       http.MethodGet,
		ResponseType: client.ResponseTypeJSON,
		Headers:      map[string]string{"X-Probe": "1"},
	}).Subscribe(context.Background()).Wait(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	obj, ok := resp.JSON().(map[string]any)
	if !ok || obj["ok"] != true {
		t.Errorf("unexpected decoded body %v", resp.JSON())
	}
	if resp.Header("Content-Type") != "application/json" {
		t.Errorf("reply headers not carried through: %v", resp.Headers())
	}
}

func TestReplyBuilder(t *testing.T) {
	r := NewReply("body")
	if r.StatusCode != 200 {
		t.Errorf("expected default 200, got %d", r.StatusCode)
	}

	r = NewReply("body",
		ReplyStatus(201),
		ReplyHeaders(map[string]string{"A": "1", "B": "2"}),
		ReplyHeader("B", "3"),
	)
	if r.StatusCode != 201 {
		t.Errorf("expected 201, got %d", r.StatusCode)
	}
	if r.Headers["A"] != "1" || r.Headers["B"] != "3" {
		t.Errorf("unexpected headers %v", r.Headers)
	}

	f := FailedReply()
	if f.StatusCode != 400 || f.Body != "" || len(f.Headers) != 0 {
		t.Errorf("unexpected failure reply %+v", f)
	}
}

func TestProductionGuard(t *testing.T) {
	orig := inTest
	inTest = func() bool { return false }
	defer func() { inTest = orig }()

	assertPanics := func(name string, fn func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("%s did not panic outside a test binary", name)
			}
		}()
		fn()
	}

	assertPanics("New", func() {
		New(func(_ context.Context, _ client.Request) (*Reply, error) {
			return nil, nil
		})
	})
	assertPanics("NewReply", func() { NewReply("x") })
	assertPanics("FailedReply", func() { FailedReply() })
}
