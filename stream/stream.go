// Package stream drives the parser over a connection: it accumulates the bytes of a
// request, feeds them to the parser, and keeps the bytes of pipelined requests for
// the next one.
package stream

import (
	"errors"
	"io"
	"net"
	"os"

	"github.com/indigo-web/h1feed/config"
	"github.com/indigo-web/h1feed/http/status"
	"github.com/indigo-web/h1feed/http1"
	"github.com/indigo-web/h1feed/internal/buffer"
	"github.com/indigo-web/h1feed/internal/tcp"
	"go.opentelemetry.io/otel/metric"
)

// Reader produces requests from a single connection. It must not be used concurrently.
type Reader struct {
	cfg      *config.Config
	client   tcp.Client
	buff     *buffer.Buffer
	metrics  metrics
	consumed int
}

func New(cfg *config.Config, client tcp.Client) *Reader {
	return &Reader{
		cfg:     cfg,
		client:  client,
		buff:    buffer.New(cfg.NET.RequestBuffer.Default, cfg.NET.RequestBuffer.Maximal),
		metrics: globalMetrics,
	}
}

// NewWithMeter is like New, but records metrics via the passed meter instead of
// the global one.
func NewWithMeter(cfg *config.Config, client tcp.Client, meter metric.Meter) (*Reader, error) {
	m, err := newMetrics(meter)
	if err != nil {
		return nil, err
	}

	r := New(cfg, client)
	r.metrics = m

	return r, nil
}

// Next returns the parser of the next request, which reached Ok. Its spans are valid
// until the next call. Errors of the client are returned as is, except the read
// timeout, which becomes status.ErrRequestTimeout, and io.EOF in the middle of a
// request, which becomes io.ErrUnexpectedEOF. So io.EOF itself means the connection
// was closed between requests. Other errors are
// status.HTTPError values. After an error the connection must be closed, as the
// requests framing is lost.
func (r *Reader) Next() (*http1.Parser, error) {
	r.buff.Shift(r.consumed)
	r.consumed = 0

	parser := http1.NewParser(r.cfg)
	feeds := 0

	for {
		if r.buff.Len() > 0 {
			feeds++

			state, _, err := parser.Feed(r.buff.Bytes())
			switch state {
			case http1.Ok:
				r.consumed = parser.Consumed()
				r.metrics.done(feeds)

				return parser, nil
			case http1.Error:
				r.metrics.failed(err)

				return nil, err
			}
		}

		data, err := r.client.Read()
		if err != nil {
			switch {
			case errors.Is(err, os.ErrDeadlineExceeded):
				err = status.ErrRequestTimeout
				r.metrics.failed(err)
			case errors.Is(err, io.EOF) && r.buff.Len() > 0:
				err = io.ErrUnexpectedEOF
				r.metrics.failed(err)
			}

			return nil, err
		}

		if !r.buff.Append(data) {
			r.metrics.failed(status.ErrHeaderFieldsTooLarge)

			return nil, status.ErrHeaderFieldsTooLarge
		}
	}
}

// Remote returns the address of the peer, if the client has one.
func (r *Reader) Remote() net.Addr {
	return r.client.Remote()
}

func (r *Reader) Close() error {
	return r.client.Close()
}
