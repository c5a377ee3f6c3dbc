package client

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// Response is the immutable result of a successful request. The body
// variant is resolved at the transport boundary according to the request's
// ResponseType; the accessor matching that type returns the decoded form,
// Text and Bytes always return the raw payload.
type Response struct {
	headers map[string]string
	rtype   ResponseType
	raw     []byte
	doc     *goquery.Document
	value   any
}

// newResponse resolves the body variant for the requested type. Decode
// failures (malformed JSON, unparsable HTML) surface as ordinary errors on
// the sequence, not as status failures.
func newResponse(rt ResponseType, raw *RawResponse) (*Response, error) {
	if rt == "" {
		rt = ResponseTypeText
	}
	resp := &Response{
		headers: raw.Headers,
		rtype:   rt,
		raw:     raw.Body,
	}
	switch rt {
	case ResponseTypeJSON:
		if err := json.Unmarshal(raw.Body, &resp.value); err != nil {
			return nil, fmt.Errorf("decode json body: %w", err)
		}
	case ResponseTypeDocument:
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw.Body))
		if err != nil {
			return nil, fmt.Errorf("parse document body: %w", err)
		}
		resp.doc = doc
	case ResponseTypeText, ResponseTypeArrayBuffer, ResponseTypeBlob:
	default:
		return nil, fmt.Errorf("unknown response type %q", rt)
	}
	return resp, nil
}

// Type returns the response type the body was resolved as.
func (r *Response) Type() ResponseType {
	return r.rtype
}

// Headers returns the response headers. Multi-valued headers are flattened
// to their first value.
func (r *Response) Headers() map[string]string {
	return r.headers
}

// Header returns a single response header value.
func (r *Response) Header(key string) string {
	return r.headers[key]
}

// Text returns the raw body as a string, regardless of response type.
func (r *Response) Text() string {
	return string(r.raw)
}

// Bytes returns the raw body.
func (r *Response) Bytes() []byte {
	return r.raw
}

// Document returns the parsed HTML document, or nil for other response
// types.
func (r *Response) Document() *goquery.Document {
	return r.doc
}

// JSON returns the decoded JSON value, or nil for other response types.
func (r *Response) JSON() any {
	return r.value
}
