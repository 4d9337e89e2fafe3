package status

// HTTPError is the only error type the parser returns. Code is the response status
// the caller should send (if feasible) before closing the connection.
type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

var (
	ErrBadMethod                = NewError(BadRequest, "request method is empty or too long")
	ErrEmptyURI                 = NewError(BadRequest, "request URI is empty")
	ErrBadProtocol              = NewError(BadRequest, "malformed protocol version")
	ErrBareLF                   = NewError(BadRequest, "line feed is not preceded by carriage return")
	ErrBareCR                   = NewError(BadRequest, "carriage return is not followed by line feed")
	ErrBadHeaderLine            = NewError(BadRequest, "malformed header line")
	ErrEmptyHeaderKey           = NewError(BadRequest, "empty header name")
	ErrEmptyHeaderValue         = NewError(BadRequest, "empty header value")
	ErrDuplicateHeader          = NewError(BadRequest, "header is not allowed to be repeated")
	ErrBadContentLength         = NewError(BadRequest, "content-length is not a number")
	ErrNegativeContentLength    = NewError(BadRequest, "content-length is negative")
	ErrConflictingContentLength = NewError(BadRequest, "conflicting content-length values")
	ErrBodyTooLarge             = NewError(RequestEntityTooLarge, "request body is too large")
	ErrHeaderFieldsTooLarge     = NewError(RequestHeaderFieldsTooLarge, "too large request head")
	ErrUnsupportedEncoding      = NewError(NotImplemented, "transfer-encoding is not supported")
	ErrRequestTimeout           = NewError(RequestTimeout, "request timeout")
)
