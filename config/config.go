package config

import (
	"time"
)

// DuplicatePolicy decides what happens when a known header occurs more than once
// in a single request.
type DuplicatePolicy uint8

const (
	// FirstWins keeps the first occurrence, ignoring the rest.
	FirstWins DuplicatePolicy = iota + 1
	// LastWins overrides the slot with every next occurrence.
	LastWins
	// Reject fails the request with status.ErrDuplicateHeader.
	Reject
)

type (
	Parser struct {
		// MaxMethodLength limits the method token. The lower limit is fixed to 2 bytes.
		MaxMethodLength int
		// ProtoLength is the exact length of the protocol version token, e.g. HTTP/1.1
		ProtoLength int
	}

	Headers struct {
		// OnDuplicate applies to known headers only. Conflicting Content-Length values
		// are rejected regardless of it.
		OnDuplicate DuplicatePolicy
		// FoldCase enables case-insensitive recognition of known headers. Disabled by
		// default, so only canonically cased names are recognized.
		FoldCase bool `test:"nullable"`
		// RejectTransferEncoding fails requests carrying Transfer-Encoding with
		// status.ErrUnsupportedEncoding, as their body isn't framed by Content-Length.
		// Disabled by default, so the header is stored as any other known one.
		RejectTransferEncoding bool `test:"nullable"`
	}

	Body struct {
		// MaxSize is the greatest Content-Length value accepted.
		MaxSize int
	}

	NETRequestBuffer struct {
		// Default is the initial capacity of a connection's request buffer.
		Default int
		// Maximal limits the whole request, including its body, as the parser needs
		// the body to be contiguous with the head.
		Maximal int
	}

	NET struct {
		// ReadBufferSize is the size of a single read from the connection.
		ReadBufferSize int
		// ReadTimeout is a deadline for every single read. Exceeding it closes
		// the request in progress.
		ReadTimeout time.Duration
		// RequestBuffer stores all the bytes of the request being parsed.
		RequestBuffer NETRequestBuffer
	}
)

// Config holds restrictions and policies of the parser and the stream reader driving it.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	Parser  Parser
	Headers Headers
	Body    Body
	NET     NET
}

// Default returns default config.
func Default() *Config {
	return &Config{
		Parser: Parser{
			MaxMethodLength: 10,
			ProtoLength:     len("HTTP/x.x"),
		},
		Headers: Headers{
			OnDuplicate: FirstWins,
		},
		Body: Body{
			MaxSize: 16 * 1024 * 1024,
		},
		NET: NET{
			ReadBufferSize: 4 * 1024,
			ReadTimeout:    90 * time.Second,
			RequestBuffer: NETRequestBuffer{
				Default: 4 * 1024,
				// the body is a part of the buffer, so the limit must be at least as
				// permitting as the body size limit
				Maximal: 16*1024*1024 + 64*1024,
			},
		},
	}
}
