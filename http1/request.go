package http1

import (
	"github.com/indigo-web/h1feed/http/header"
	"github.com/indigo-web/h1feed/http/method"
	"github.com/indigo-web/h1feed/http/proto"
)

// Request is a snapshot of everything the parser located. All the spans point into
// the buffer the parser was fed with the last time.
type Request struct {
	Method, URI, Query, Protocol Span
	HasQuery                     bool
	// ContentLength is -1 if the header wasn't presented
	ContentLength int
	Headers       [header.Count]Field
	Body          Span
}

func (p *Parser) Request() Request {
	return Request{
		Method:        p.method,
		URI:           p.uri,
		Query:         p.query,
		Protocol:      p.protocol,
		HasQuery:      p.hasQuery,
		ContentLength: p.contentLength,
		Headers:       p.headers,
		Body:          Span{Offset: p.bodyStart, Length: p.bodyReceived},
	}
}

// Level returns the current coarse phase. It's Body once the head is complete, even
// if the body is still being received.
func (p *Parser) Level() Level {
	return p.level
}

// Status returns the fine-grained state within the current level.
func (p *Parser) Status() Status {
	return p.status
}

// Consumed returns the number of bytes the request takes, including its body. It's
// meaningful only after Ok was returned.
func (p *Parser) Consumed() int {
	return p.bodyBoundary
}

// Method returns the method token as is. Any token of a valid length is accepted.
func (p *Parser) Method() []byte {
	return p.method.Of(p.data)
}

func (p *Parser) MethodType() method.Method {
	return method.FromBytes(p.Method())
}

// URI returns the request path without the query string.
func (p *Parser) URI() []byte {
	return p.uri.Of(p.data)
}

// Query returns the query string. It may be presented, but empty, e.g. GET /? HTTP/1.1
func (p *Parser) Query() (query []byte, found bool) {
	return p.query.Of(p.data), p.hasQuery
}

// Protocol returns the raw protocol version token, e.g. HTTP/1.1
func (p *Parser) Protocol() []byte {
	return p.protocol.Of(p.data)
}

func (p *Parser) Proto() proto.Proto {
	return proto.FromBytes(p.Protocol())
}

// ContentLength returns the parsed Content-Length value. A request without the
// header has no body.
func (p *Parser) ContentLength() (length int, found bool) {
	if p.contentLength == contentLengthUnset {
		return 0, false
	}

	return p.contentLength, true
}

// Header returns the value of a known header, with the leading and trailing spaces
// trimmed.
func (p *Parser) Header(typ header.Type) (value []byte, found bool) {
	if int(typ) >= header.Count || !p.headers[typ].Present {
		return nil, false
	}

	return p.headers[typ].Value.Of(p.data), true
}

func (p *Parser) Body() []byte {
	return Span{Offset: p.bodyStart, Length: p.bodyReceived}.Of(p.data)
}
