// Package header holds the closed set of header names the parser recognizes and
// resolves a header key to one of them without building a map.
package header

// Type identifies a known header. It is also the index of its slot in the parser's
// headers table and of its Entry in Table.
type Type uint8

const (
	Accept Type = iota
	AcceptCharset
	AcceptEncoding
	AcceptLanguage
	Authorization
	Cookie
	Connection
	ContentLength
	ContentRange
	ContentType
	IfModifiedSince
	Host
	LastModified
	LastModifiedSince
	Referer
	Range
	TransferEncoding
	UserAgent

	// Count is the number of known headers
	Count int = iota
)

// Unknown is returned for every header name that isn't in Table.
const Unknown = Type(Count)

type Entry struct {
	Name   string
	Length int
}

func entry(name string) Entry {
	return Entry{Name: name, Length: len(name)}
}

// Table MUST keep entries sharing the first letter next to each other, as scopes are
// built upon this.
var Table = [Count]Entry{
	Accept:            entry("Accept"),
	AcceptCharset:     entry("Accept-Charset"),
	AcceptEncoding:    entry("Accept-Encoding"),
	AcceptLanguage:    entry("Accept-Language"),
	Authorization:     entry("Authorization"),
	Cookie:            entry("Cookie"),
	Connection:        entry("Connection"),
	ContentLength:     entry("Content-Length"),
	ContentRange:      entry("Content-Range"),
	ContentType:       entry("Content-Type"),
	IfModifiedSince:   entry("If-Modified-Since"),
	Host:              entry("Host"),
	LastModified:      entry("Last-Modified"),
	LastModifiedSince: entry("Last-Modified-Since"),
	Referer:           entry("Referer"),
	Range:             entry("Range"),
	TransferEncoding:  entry("Transfer-Encoding"),
	UserAgent:         entry("User-Agent"),
}

func (t Type) String() string {
	if int(t) >= Count {
		return "unknown"
	}

	return Table[t].Name
}
