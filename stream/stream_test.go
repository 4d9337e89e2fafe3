package stream

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/h1feed/config"
	"github.com/indigo-web/h1feed/http/header"
	"github.com/indigo-web/h1feed/http/status"
	"github.com/indigo-web/h1feed/internal/requestgen"
	"github.com/indigo-web/h1feed/internal/tcp/dummy"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

type timeoutClient struct {
	dummy.Client
}

func (timeoutClient) Read() ([]byte, error) {
	return nil, os.ErrDeadlineExceeded
}

func TestReader(t *testing.T) {
	cfg := config.Default()

	t.Run("single", func(t *testing.T) {
		r := New(cfg, dummy.NewClient([]byte("GET / HTTP/1.1\r\nHost: x\r\n\r\n")))
		parser, err := r.Next()
		require.NoError(t, err)
		require.Equal(t, "/", string(parser.URI()))
		host, found := parser.Header(header.Host)
		require.True(t, found)
		require.Equal(t, "x", string(host))

		_, err = r.Next()
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("fragmented", func(t *testing.T) {
		body := uniuri.NewLen(100)
		raw := requestgen.GenerateWithBody("hello", requestgen.Headers(5), body)

		for _, n := range []int{1, 2, 7, 64} {
			r := New(cfg, dummy.NewClient(dummy.Split(raw, n)...))
			parser, err := r.Next()
			require.NoError(t, err, n)
			require.Equal(t, "/hello", string(parser.URI()))
			require.Equal(t, body, string(parser.Body()))
		}
	})

	t.Run("pipelined", func(t *testing.T) {
		raw := "GET /first HTTP/1.1\r\n\r\n" +
			"POST /second HTTP/1.1\r\nContent-Length: 5\r\n\r\nhello" +
			"GET /third HTTP/1.1\r\n\r\n"

		for _, n := range []int{1, 3, len(raw)} {
			r := New(cfg, dummy.NewClient(dummy.Split([]byte(raw), n)...))

			parser, err := r.Next()
			require.NoError(t, err)
			require.Equal(t, "/first", string(parser.URI()))

			parser, err = r.Next()
			require.NoError(t, err)
			require.Equal(t, "/second", string(parser.URI()))
			require.Equal(t, "hello", string(parser.Body()))

			parser, err = r.Next()
			require.NoError(t, err)
			require.Equal(t, "/third", string(parser.URI()))

			_, err = r.Next()
			require.ErrorIs(t, err, io.EOF)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		r := New(cfg, dummy.NewClient([]byte("GET / HTTP/1.1\nHost: x\r\n\r\n")))
		_, err := r.Next()
		require.ErrorIs(t, err, status.ErrBareLF)
	})

	t.Run("unexpected eof", func(t *testing.T) {
		r := New(cfg, dummy.NewClient([]byte("GET / HTTP/1.1\r\nHost")))
		_, err := r.Next()
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("unexpected eof after a request", func(t *testing.T) {
		raw := []byte("GET /first HTTP/1.1\r\n\r\nPOST / HTTP/1.1\r\nContent-Length: 5\r\n\r\nhel")
		r := New(cfg, dummy.NewClient(dummy.Split(raw, 7)...))
		parser, err := r.Next()
		require.NoError(t, err)
		require.Equal(t, "/first", string(parser.URI()))

		_, err = r.Next()
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
		require.NotErrorIs(t, err, io.EOF)
	})

	t.Run("too large", func(t *testing.T) {
		small := config.Default()
		small.NET.RequestBuffer.Default = 16
		small.NET.RequestBuffer.Maximal = 64
		raw := requestgen.Generate("", requestgen.Headers(10))

		r := New(small, dummy.NewClient(dummy.Split(raw, 16)...))
		_, err := r.Next()
		require.ErrorIs(t, err, status.ErrHeaderFieldsTooLarge)
	})

	t.Run("timeout", func(t *testing.T) {
		r := New(cfg, &timeoutClient{})
		_, err := r.Next()
		require.ErrorIs(t, err, status.ErrRequestTimeout)
	})

	t.Run("close", func(t *testing.T) {
		client := dummy.NewClient([]byte("GET / HTTP/1.1\r\n\r\n"))
		r := New(cfg, client)
		require.NoError(t, r.Close())
		_, err := r.Next()
		require.Error(t, err)
	})
}

func TestMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() {
		_ = provider.Shutdown(context.Background())
	}()

	raw := "GET / HTTP/1.1\r\n\r\n" + "GET / HTTP/1.1\r\n\r\n" + "GET / HTTP/1.1\n\r\n"
	r, err := NewWithMeter(config.Default(), dummy.NewClient(dummy.Split([]byte(raw), 1)...), provider.Meter("test"))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = r.Next()
		require.NoError(t, err)
	}

	_, err = r.Next()
	require.Error(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	var seen int
	for _, m := range rm.ScopeMetrics[0].Metrics {
		switch m.Name {
		case "h1feed.requests":
			seen++
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)

			results := make(map[string]int64)
			for _, point := range sum.DataPoints {
				result, found := point.Attributes.Value(attribute.Key("result"))
				require.True(t, found)
				results[result.AsString()] += point.Value
			}

			require.Equal(t, map[string]int64{"ok": 2, "error": 1}, results)
		case "h1feed.feeds":
			seen++
			hist, ok := m.Data.(metricdata.Histogram[int64])
			require.True(t, ok)
			require.Len(t, hist.DataPoints, 1)
			require.Equal(t, uint64(2), hist.DataPoints[0].Count)
			// every byte came in a separate read
			require.Equal(t, int64(2*len("GET / HTTP/1.1\r\n\r\n")), hist.DataPoints[0].Sum)
		}
	}

	require.Equal(t, 2, seen)
}
