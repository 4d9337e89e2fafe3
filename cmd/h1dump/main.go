// Command h1dump feeds a raw HTTP/1.x request to the parser and prints what it found.
//
//	h1dump [-step N] [-pipeline] [-metrics] [-fold-case] [-reject-transfer-encoding] [-listen addr] [file]
//
// The request is read from the file, or from stdin if none is given. With -listen, the
// requests are read from the first accepted connection instead, and nothing is sent
// back. It exits with 1 if the request is malformed and with 2 if the input ends before
// the request does.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"

	"github.com/indigo-web/h1feed/config"
	"github.com/indigo-web/h1feed/http/status"
	"github.com/indigo-web/h1feed/http1"
	"github.com/indigo-web/h1feed/internal/dump"
	"github.com/indigo-web/h1feed/internal/tcp"
	"github.com/indigo-web/h1feed/internal/tcp/dummy"
	"github.com/indigo-web/h1feed/stream"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

const (
	exitOk = iota
	exitMalformed
	exitIncomplete
	exitUsage
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("h1dump", flag.ContinueOnError)
	flags.SetOutput(stderr)
	step := flags.Int("step", 0, "feed the request by N bytes at a time, 0 feeds it at once")
	pipeline := flags.Bool("pipeline", false, "parse every pipelined request of the input")
	withMetrics := flags.Bool("metrics", false, "log the collected metrics at exit (pipeline and listen modes only)")
	foldCase := flags.Bool("fold-case", false, "match header names case-insensitively")
	rejectTE := flags.Bool("reject-transfer-encoding", false, "fail requests carrying Transfer-Encoding")
	listen := flags.String("listen", "", "accept a single connection on the address and parse its requests")

	if err := flags.Parse(args); err != nil {
		return exitUsage
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))
	cfg := config.Default()
	cfg.Headers.FoldCase = *foldCase
	cfg.Headers.RejectTransferEncoding = *rejectTE

	var client tcp.Client

	if len(*listen) > 0 {
		conn, err := accept(*listen, logger)
		if err != nil {
			logger.Error("cannot accept a connection", "addr", *listen, "err", err)
			return exitUsage
		}

		client = tcp.NewClient(conn, cfg)
	} else {
		data, err := readInput(flags.Arg(0), stdin)
		if err != nil {
			logger.Error("cannot read the input", "err", err)
			return exitUsage
		}

		if !*pipeline {
			return single(cfg, data, *step, stdout, logger)
		}

		if *step <= 0 {
			*step = max(len(data), 1)
		}

		client = dummy.NewClient(dummy.Split(data, *step)...)
	}

	var reader *sdkmetric.ManualReader
	opts := []sdkmetric.Option{}
	if *withMetrics {
		reader = sdkmetric.NewManualReader()
		opts = append(opts, sdkmetric.WithReader(reader))
	}

	provider := sdkmetric.NewMeterProvider(opts...)
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			logger.Error("cannot shut the meter provider down", "err", err)
		}
	}()

	code := pipelined(cfg, client, provider, stdout, logger)
	if reader != nil {
		logMetrics(reader, logger)
	}

	return code
}

func readInput(filename string, stdin io.Reader) ([]byte, error) {
	if len(filename) == 0 || filename == "-" {
		return io.ReadAll(stdin)
	}

	return os.ReadFile(filename)
}

func single(cfg *config.Config, data []byte, step int, stdout io.Writer, logger *slog.Logger) int {
	if step <= 0 {
		step = len(data)
	}

	parser := http1.NewParser(cfg)

	var (
		state http1.RequestState
		err   error
		feeds int
	)

	for end := min(step, len(data)); ; end = min(end+step, len(data)) {
		feeds++
		if state, _, err = parser.Feed(data[:end]); state != http1.Pending || end == len(data) {
			break
		}
	}

	logger.Debug("fed", "calls", feeds, "level", parser.Level(), "status", parser.Status())
	fmt.Fprintln(stdout, state)

	switch state {
	case http1.Ok:
		if err = printRequest(parser, stdout); err != nil {
			logger.Error("cannot render the request", "err", err)
			return exitUsage
		}

		if extra := len(data) - parser.Consumed(); extra > 0 {
			logger.Info("the input has bytes after the request", "extra", extra)
		}

		return exitOk
	case http1.Error:
		logger.Error("malformed request", errAttrs(err)...)
		return exitMalformed
	default:
		logger.Warn("the input ended before the request did",
			"level", parser.Level(), "status", parser.Status(), "received", len(data))
		return exitIncomplete
	}
}

func accept(addr string, logger *slog.Logger) (net.Conn, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = listener.Close()
	}()

	logger.Info("waiting for a connection", "addr", listener.Addr())
	conn, err := listener.Accept()
	if err == nil {
		logger.Info("accepted", "remote", conn.RemoteAddr())
	}

	return conn, err
}

func pipelined(
	cfg *config.Config, client tcp.Client, provider *sdkmetric.MeterProvider, stdout io.Writer, logger *slog.Logger,
) int {
	r, err := stream.NewWithMeter(cfg, client, provider.Meter("h1dump"))
	if err != nil {
		_ = client.Close()
		logger.Error("cannot create the stream", "err", err)
		return exitUsage
	}

	defer func() {
		_ = r.Close()
	}()

	for n := 0; ; n++ {
		parser, err := r.Next()
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			logger.Info("end of input", "requests", n)
			return exitOk
		case errors.Is(err, io.ErrUnexpectedEOF):
			fmt.Fprintln(stdout, http1.Pending)
			logger.Warn("the input ended before the request did", "n", n, "remote", r.Remote())
			return exitIncomplete
		default:
			fmt.Fprintln(stdout, http1.Error)
			logger.Error("malformed request", append(errAttrs(err), "n", n, "remote", r.Remote())...)
			return exitMalformed
		}

		fmt.Fprintln(stdout, http1.Ok)
		if err = printRequest(parser, stdout); err != nil {
			logger.Error("cannot render the request", "err", err)
			return exitUsage
		}
	}
}

// errAttrs describes the error along with the response the server would send for it.
func errAttrs(err error) []any {
	attrs := []any{"err", err}

	var httpErr status.HTTPError
	if errors.As(err, &httpErr) {
		attrs = append(attrs, "code", int(httpErr.Code), "status", string(status.Text(httpErr.Code)))
	}

	return attrs
}

func printRequest(parser *http1.Parser, stdout io.Writer) error {
	out, err := dump.JSON(parser)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(stdout, "%s\n", out)
	return err
}

func logMetrics(reader *sdkmetric.ManualReader, logger *slog.Logger) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		logger.Error("cannot collect metrics", "err", err)
		return
	}

	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, point := range data.DataPoints {
					logger.Info(m.Name, "attributes", point.Attributes.Encoded(attribute.DefaultEncoder()), "value", point.Value)
				}
			case metricdata.Histogram[int64]:
				for _, point := range data.DataPoints {
					logger.Info(m.Name, "count", point.Count, "sum", point.Sum)
				}
			}
		}
	}
}
