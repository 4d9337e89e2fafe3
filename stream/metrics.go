package stream

import (
	"context"
	"strconv"

	"github.com/indigo-web/h1feed/http/status"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentation = "github.com/indigo-web/h1feed/stream"

var (
	resultOk    = metric.WithAttributes(attribute.String("result", "ok"))
	resultError = attribute.String("result", "error")
)

type metrics struct {
	requests metric.Int64Counter
	feeds    metric.Int64Histogram
}

var globalMetrics metrics

func init() {
	var err error
	globalMetrics, err = newMetrics(otel.Meter(instrumentation))
	if err != nil {
		panic(err)
	}
}

func newMetrics(meter metric.Meter) (m metrics, err error) {
	m.requests, err = meter.Int64Counter("h1feed.requests",
		metric.WithDescription("The number of requests parsed, by result"),
		metric.WithUnit("{request}"))
	if err != nil {
		return m, err
	}

	m.feeds, err = meter.Int64Histogram("h1feed.feeds",
		metric.WithDescription("The number of parser calls it took to complete a request"),
		metric.WithUnit("{call}"))

	return m, err
}

func (m metrics) done(feeds int) {
	ctx := context.Background()
	m.requests.Add(ctx, 1, resultOk)
	m.feeds.Record(ctx, int64(feeds))
}

func (m metrics) failed(err error) {
	code := "none"
	if httpErr, ok := err.(status.HTTPError); ok {
		code = strconv.Itoa(int(httpErr.Code))
	}

	m.requests.Add(context.Background(), 1, metric.WithAttributes(resultError, attribute.String("code", code)))
}
