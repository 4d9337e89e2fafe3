// Package dump renders parsed requests for diagnostics. Only the known headers are
// rendered, as the rest aren't retained by the parser.
package dump

import (
	"strconv"

	"github.com/indigo-web/h1feed/http/header"
	"github.com/indigo-web/h1feed/http1"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Request reconstructs the request head in canonical form, followed by the received
// part of the body.
func Request(p *http1.Parser) string {
	var buff []byte

	buff = append(buff, p.Method()...)
	buff = append(buff, ' ')
	buff = append(buff, p.URI()...)

	if query, found := p.Query(); found {
		buff = append(buff, '?')
		buff = append(buff, query...)
	}

	buff = append(buff, ' ')
	buff = append(buff, p.Protocol()...)
	buff = append(buff, '\r', '\n')

	for typ := header.Type(0); int(typ) < header.Count; typ++ {
		if typ == header.ContentLength {
			continue
		}

		if value, found := p.Header(typ); found {
			buff = headerLine(buff, header.Table[typ].Name, value)
		}
	}

	if length, found := p.ContentLength(); found {
		buff = headerLine(buff, header.Table[header.ContentLength].Name, strconv.AppendInt(nil, int64(length), 10))
	}

	buff = append(buff, '\r', '\n')
	buff = append(buff, p.Body()...)

	return string(buff)
}

func headerLine(b []byte, key string, value []byte) []byte {
	b = append(b, key...)
	b = append(b, ':', ' ')
	b = append(b, value...)

	return append(b, '\r', '\n')
}

type document struct {
	Method        string            `json:"method"`
	URI           string            `json:"uri"`
	Query         *string           `json:"query,omitempty"`
	Protocol      string            `json:"protocol"`
	ContentLength *int              `json:"content_length,omitempty"`
	Headers       map[string]string `json:"headers"`
	Body          string            `json:"body"`
	Consumed      int               `json:"consumed"`
}

// JSON renders the request as a JSON object. The query and content_length keys are
// omitted when the request has none.
func JSON(p *http1.Parser) ([]byte, error) {
	doc := document{
		Method:   string(p.Method()),
		URI:      string(p.URI()),
		Protocol: string(p.Protocol()),
		Headers:  make(map[string]string),
		Body:     string(p.Body()),
		Consumed: p.Consumed(),
	}

	if query, found := p.Query(); found {
		q := string(query)
		doc.Query = &q
	}

	if length, found := p.ContentLength(); found {
		doc.ContentLength = &length
	}

	for typ := header.Type(0); int(typ) < header.Count; typ++ {
		if value, found := p.Header(typ); found {
			doc.Headers[header.Table[typ].Name] = string(value)
		}
	}

	return json.Marshal(doc)
}
