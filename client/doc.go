// Package client exposes HTTP requests as lazy, cancelable, single-shot
// asynchronous sequences.
//
// Each call to Get, Post, or Request builds a single.Single describing one
// network attempt. Nothing touches the network until the sequence is
// subscribed; canceling the subscription aborts the in-flight attempt and
// guarantees no outcome is delivered afterward. Every request settles with
// exactly one of: a successful Response (status in [200,300)), or a
// *StatusError covering non-2xx completions, transport failures, and
// timeouts uniformly.
//
//	c, err := client.New(client.Config{})
//	if err != nil { ... }
//
//	seq := c.Get("https://api.example.com/health")
//	sub := seq.Subscribe(ctx)
//	body, err := sub.Wait(ctx)
//
// The sequence is built against a narrow Transport boundary. The default
// transport rides on net/http; client/testutil provides a deterministic
// callback-driven substitute for tests.
package client
