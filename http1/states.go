package http1

// RequestState is the verdict of a single Feed call.
type RequestState uint8

const (
	// Pending means the request is well-formed so far, but more bytes are required.
	Pending RequestState = iota + 1
	// Ok means the request head and its body (if any) are completely parsed.
	Ok
	// Error means the request is malformed. The connection's framing is lost.
	Error
)

func (r RequestState) String() string {
	switch r {
	case Pending:
		return "pending"
	case Ok:
		return "ok"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Level is a coarse phase of the parsing. It never decreases during a single parse.
type Level uint8

const (
	FirstLine Level = iota + 1
	Headers
	HeadersEnd
	Body
)

func (l Level) String() string {
	lut := [...]string{FirstLine: "first-line", Headers: "headers", HeadersEnd: "headers-end", Body: "body"}
	if int(l) >= len(lut) || l == 0 {
		return "unknown"
	}

	return lut[l]
}

// Status is a fine-grained state within a level.
type Status uint8

const (
	// FirstLine level
	Method Status = iota + 1
	URI
	QueryString
	ProtocolVersion
	LineFeedPending
	FirstLineContinue
	FirstLineFinalize

	// Headers level
	HeaderKey
	HeaderValue
	HeaderValueStarted
	HeaderLineEnd
)

func (s Status) String() string {
	lut := [...]string{
		Method:             "method",
		URI:                "uri",
		QueryString:        "query-string",
		ProtocolVersion:    "protocol-version",
		LineFeedPending:    "line-feed-pending",
		FirstLineContinue:  "first-line-continue",
		FirstLineFinalize:  "first-line-finalize",
		HeaderKey:          "header-key",
		HeaderValue:        "header-value",
		HeaderValueStarted: "header-value-started",
		HeaderLineEnd:      "header-line-end",
	}
	if int(s) >= len(lut) || s == 0 {
		return "unknown"
	}

	return lut[s]
}
