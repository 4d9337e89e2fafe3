package tcp

import (
	"net"
	"time"

	"github.com/indigo-web/h1feed/config"
)

// Client is the source of a connection's bytes.
type Client interface {
	// Read returns the next piece of the connection's data. The piece stays valid
	// until the next Read only.
	Read() ([]byte, error)
	Remote() net.Addr
	Close() error
}

type connClient struct {
	conn    net.Conn
	timeout time.Duration
	buff    []byte
	// err is postponed, if the read also returned some bytes
	err error
}

// NewClient wraps the conn into the Client, reading at most cfg.NET.ReadBufferSize
// bytes at once. Every read must complete within cfg.NET.ReadTimeout, otherwise
// os.ErrDeadlineExceeded is returned.
func NewClient(conn net.Conn, cfg *config.Config) Client {
	return &connClient{
		conn:    conn,
		timeout: cfg.NET.ReadTimeout,
		buff:    make([]byte, cfg.NET.ReadBufferSize),
	}
}

func (c *connClient) Read() ([]byte, error) {
	if c.err != nil {
		return nil, c.err
	}

	if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return nil, err
	}

	n, err := c.conn.Read(c.buff)
	if n > 0 {
		c.err = err
		return c.buff[:n], nil
	}

	return nil, err
}

func (c *connClient) Remote() net.Addr {
	return c.conn.RemoteAddr()
}

func (c *connClient) Close() error {
	return c.conn.Close()
}
