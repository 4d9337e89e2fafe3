package dummy

import (
	"io"
	"net"
)

// Client returns the pieces it was initialised with, one per read, and io.EOF after
// the last one. In circular mode it starts over instead.
type Client struct {
	data     [][]byte
	pointer  int
	circular bool
	closed   bool
}

func NewClient(data ...[]byte) *Client {
	return &Client{
		data: data,
	}
}

// Circular makes the client to repeat its data forever. This is used mainly for benchmarking
func (c *Client) Circular() *Client {
	c.circular = true
	return c
}

func (c *Client) Read() ([]byte, error) {
	if c.closed {
		return nil, net.ErrClosed
	}

	if c.pointer == len(c.data) {
		if !c.circular || len(c.data) == 0 {
			return nil, io.EOF
		}

		c.pointer = 0
	}

	c.pointer++

	return c.data[c.pointer-1], nil
}

func (*Client) Remote() net.Addr {
	return nil
}

func (c *Client) Close() error {
	c.closed = true
	return nil
}

// Split cuts the data into pieces of n bytes each. The last one may be shorter.
func Split(data []byte, n int) (parts [][]byte) {
	for i := 0; i < len(data); i += n {
		end := i + n
		if end > len(data) {
			end = len(data)
		}

		parts = append(parts, data[i:end])
	}

	return parts
}
