// Package testutil provides a deterministic, callback-driven substitute
// for the live HTTP transport.
//
// A Double wraps a real client.Client around a handler-backed transport,
// so laziness, single emission, cancelation, and status classification are
// the production adapter's own, exercised without network I/O:
//
//	d := testutil.New(func(ctx context.Context, req client.Request) (*testutil.Reply, error) {
//	    return testutil.NewReply("hello"), nil
//	})
//	body, err := d.Get("https://example.test/foobar").Subscribe(ctx).Wait(ctx)
//
// Handlers may return immediately or block on their own asynchronous work;
// both run on the subscription's goroutine and behave identically to the
// caller. Replies are built with NewReply (success, default status 200) or
// FailedReply (status 400, empty body and headers).
//
// The package is test-only: constructing a Double or a Reply outside a
// test binary panics.
package testutil
