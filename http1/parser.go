package http1

import (
	"fmt"

	"github.com/indigo-web/h1feed/config"
	"github.com/indigo-web/h1feed/http/header"
	"github.com/indigo-web/h1feed/http/status"
)

const (
	minMethodLength = 2
	// contentLengthUnset distinguishes a missing Content-Length header from an explicit 0
	contentLengthUnset = -1
)

// Parser is an incremental parser of a single HTTP/1.x request head. It must be fed
// with the whole cumulative buffer of the request every time new bytes arrive. The
// buffer may grow (and even move in memory), but its already fed prefix must stay
// byte-identical. Parsing resumes from where the previous call stopped, so the result
// is the same no matter how the bytes were split between calls.
//
// Parser never copies, modifies or retains ownership of the buffer. All the parsed
// values are spans into it. A Parser is good for exactly one request: once it
// reports Ok or Error, every next Feed returns the same verdict. Pipelined requests
// need a new parser, fed with the extra bytes returned alongside Ok.
type Parser struct {
	cfg  *config.Config
	data []byte

	level  Level
	status Status
	state  RequestState
	err    error
	// pos is the index of the first byte not processed yet
	pos        int
	start, end int
	lineChars  int

	scope                                 header.Scope
	headerKey, headerSep, headerValue     int
	method, uri, query, protocol          Span
	hasQuery                              bool
	headers                               [header.Count]Field
	contentLength                         int
	bodyStart, bodyReceived, bodyBoundary int
}

// NewParser returns a parser of a single request. The cfg must be obtained via
// config.Default() and possibly modified afterwards, but not built by hand.
func NewParser(cfg *config.Config) *Parser {
	return &Parser{
		cfg:           cfg,
		level:         FirstLine,
		status:        Method,
		state:         Pending,
		contentLength: contentLengthUnset,
	}
}

// Feed processes the bytes of data, which weren't seen by the previous calls. The data
// is the whole request received so far, starting from its first byte.
//
// Extra is returned along with Ok only and contains bytes following the request body,
// which belong to the next pipelined request. Err is always a status.HTTPError and is
// returned along with Error only.
func (p *Parser) Feed(data []byte) (state RequestState, extra []byte, err error) {
	switch p.state {
	case Pending:
	case Ok:
		return Ok, data[p.bodyBoundary:], nil
	case Error:
		return Error, nil, p.err
	default:
		panic(fmt.Sprintf("BUG: unexpected state: %v", p.state))
	}

	p.data = data

	for p.pos < len(data) && p.level < Body {
		consumed, err := p.step(data[p.pos], p.pos)
		if err != nil {
			return p.fail(err)
		}

		if consumed {
			p.pos++
			p.lineChars++
		}
	}

	switch p.level {
	case FirstLine:
		if p.status == Method && p.pos == p.start {
			return p.fail(status.ErrBadMethod)
		}
	case Body:
		return p.trackBody(data)
	}

	return Pending, nil, nil
}

// step processes a single byte. The byte may be left unconsumed, so it'll be processed
// again with a new status.
func (p *Parser) step(char byte, i int) (consumed bool, err error) {
	switch p.level {
	case FirstLine:
		return p.stepFirstLine(char, i)
	case Headers:
		return p.stepHeaders(char, i)
	case HeadersEnd:
		if char != '\n' {
			return false, status.ErrBareCR
		}

		return true, p.enterBody(i + 1)
	default:
		panic(fmt.Sprintf("BUG: unexpected level: %v", p.level))
	}
}

func (p *Parser) stepFirstLine(char byte, i int) (consumed bool, err error) {
	switch p.status {
	case Method:
		switch {
		case char == ' ':
			p.closeField(i)
			if n := p.end - p.start; n < minMethodLength || n > p.cfg.Parser.MaxMethodLength {
				return false, status.ErrBadMethod
			}

			p.method = p.field()
			p.status = URI
			p.next(i + 1)
		case i+1-p.start > p.cfg.Parser.MaxMethodLength:
			return false, status.ErrBadMethod
		}
	case URI:
		if char != ' ' && char != '?' {
			break
		}

		p.closeField(i)
		if p.end == p.start {
			return false, status.ErrEmptyURI
		}

		p.uri = p.field()
		p.next(i + 1)

		if char == '?' {
			p.hasQuery = true
			p.status = QueryString
		} else {
			p.status = ProtocolVersion
		}
	case QueryString:
		if char == ' ' {
			p.closeField(i)
			p.query = p.field()
			p.status = ProtocolVersion
			p.next(i + 1)
		}
	case ProtocolVersion:
		switch {
		case char == '\r':
			p.closeField(i)
			if p.end-p.start != p.cfg.Parser.ProtoLength {
				return false, status.ErrBadProtocol
			}

			p.protocol = p.field()
			p.status = LineFeedPending
			p.next(i + 1)
		case char == '\n':
			return false, status.ErrBareLF
		case i+1-p.start > p.cfg.Parser.ProtoLength:
			return false, status.ErrBadProtocol
		}
	case LineFeedPending:
		if char != '\n' {
			return false, status.ErrBareCR
		}

		p.status = FirstLineContinue
		p.next(i + 1)
	case FirstLineContinue:
		if char == '\r' {
			p.status = FirstLineFinalize
			break
		}

		// the byte is the first one of a header key
		p.level = Headers
		p.status = HeaderKey
		p.lineChars = 0
		p.next(i)

		return false, nil
	case FirstLineFinalize:
		if char != '\n' {
			return false, status.ErrBareCR
		}

		// the blank line right after the request line closes an empty headers block
		return true, p.enterBody(i + 1)
	default:
		panic(fmt.Sprintf("BUG: unexpected status at the first line: %v", p.status))
	}

	return true, nil
}

func (p *Parser) stepHeaders(char byte, i int) (consumed bool, err error) {
	switch p.status {
	case HeaderKey:
		if p.lineChars == 0 {
			if char == '\r' {
				p.level = HeadersEnd
				return true, nil
			}

			p.headerKey = i
			p.scope = header.ScopeOf(char, p.cfg.Headers.FoldCase)
			p.next(i)
		}

		switch char {
		case ':':
			p.closeField(i)
			if p.end == p.start {
				return false, status.ErrEmptyHeaderKey
			}

			p.headerSep = i
			p.status = HeaderValue
			p.next(i + 1)
		case '\r':
			return false, status.ErrBadHeaderLine
		case '\n':
			return false, status.ErrBareLF
		}
	case HeaderValue:
		if char == ' ' || char == '\t' {
			break
		}

		p.headerValue = i
		p.status = HeaderValueStarted
		p.next(i)

		return false, nil
	case HeaderValueStarted:
		switch char {
		case '\r':
			p.closeField(i)
			if p.end == p.start {
				return false, status.ErrEmptyHeaderValue
			}

			if err = p.classify(); err != nil {
				return false, err
			}

			p.status = HeaderLineEnd
			p.next(i + 1)
		case '\n':
			return false, status.ErrBareLF
		}
	case HeaderLineEnd:
		if char != '\n' {
			return false, status.ErrBareCR
		}

		p.status = HeaderKey
		// the line feed itself is going to be counted right after
		p.lineChars = -1
		p.next(i + 1)
	default:
		panic(fmt.Sprintf("BUG: unexpected status at headers: %v", p.status))
	}

	return true, nil
}

// classify resolves the just closed header line against the known headers table. Unknown
// headers are silently skipped.
func (p *Parser) classify() error {
	key := spanOf(p.headerKey, p.headerSep)
	value := spanOf(p.headerValue, trimRight(p.data, p.headerValue, p.end))

	typ := header.Classify(key.Of(p.data), p.scope, p.cfg.Headers.FoldCase)
	if typ == header.Unknown {
		return nil
	}

	if typ == header.ContentLength {
		length, err := parseContentLength(value.Of(p.data), p.cfg.Body.MaxSize)
		if err != nil {
			return err
		}

		if p.contentLength != contentLengthUnset && p.contentLength != length {
			return status.ErrConflictingContentLength
		}

		p.contentLength = length
	}

	slot := &p.headers[typ]
	if slot.Present {
		switch p.cfg.Headers.OnDuplicate {
		case config.Reject:
			return status.ErrDuplicateHeader
		case config.LastWins:
		default:
			return nil
		}
	}

	*slot = Field{
		Present: true,
		Key:     key,
		Value:   value,
	}

	return nil
}

func (p *Parser) enterBody(at int) error {
	if p.cfg.Headers.RejectTransferEncoding && p.headers[header.TransferEncoding].Present {
		return status.ErrUnsupportedEncoding
	}

	p.level = Body
	p.bodyStart = at

	return nil
}

func (p *Parser) fail(err error) (RequestState, []byte, error) {
	p.state = Error
	p.err = err

	return Error, nil, err
}

func (p *Parser) closeField(at int) {
	p.end = at
}

func (p *Parser) field() Span {
	return spanOf(p.start, p.end)
}

// next marks the beginning of a new field.
func (p *Parser) next(at int) {
	p.start, p.end = at, at
}

// trimRight returns the new end of data[from:to] without trailing spaces. The value is
// guaranteed to start with a non-space, so it never becomes empty.
func trimRight(data []byte, from, to int) int {
	for to > from+1 && (data[to-1] == ' ' || data[to-1] == '\t') {
		to--
	}

	return to
}

func parseContentLength(raw []byte, maxSize int) (length int, err error) {
	if len(raw) == 0 {
		return 0, status.ErrBadContentLength
	}

	if raw[0] == '-' {
		if _, err = parseContentLength(raw[1:], maxSize); err == status.ErrBadContentLength {
			return 0, err
		}

		return 0, status.ErrNegativeContentLength
	}

	for _, char := range raw {
		char -= '0'
		if char > 9 {
			return 0, status.ErrBadContentLength
		}

		if length > (maxSize-int(char))/10 {
			return 0, status.ErrBodyTooLarge
		}

		length = length*10 + int(char)
	}

	if length > maxSize {
		return 0, status.ErrBodyTooLarge
	}

	return length, nil
}
