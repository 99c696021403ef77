package comms

import (
	"context"
	"fmt"
	"net"

	"github.com/makerhqsac/wall-of-fortune/internal/queue"
)

type options struct {
	port      int
	broadcast net.IP
}

// Option configures Begin.
type Option func(*options)

// WithPort binds (and by default sends to) port p. Zero picks an ephemeral port.
func WithPort(p int) Option {
	return func(o *options) { o.port = p }
}

// WithBroadcast overrides the destination address used by Send. Tests point it
// at loopback.
func WithBroadcast(addr string) Option {
	return func(o *options) {
		if ip := net.ParseIP(addr); ip != nil {
			o.broadcast = ip
		}
	}
}

// Channel is a named endpoint on the shared UDP broadcast domain. It is polled
// from a single loop; only the message buffer is safe for concurrent use.
type Channel struct {
	name      string
	port      int
	broadcast net.IP
	conn      *net.UDPConn
	buf       []byte
	messages  *queue.FIFO[Message]
}

// Begin binds the shared port on all interfaces with broadcast and address reuse
// enabled. Reads never block.
func Begin(name string, opts ...Option) (*Channel, error) {
	if _, err := Encode(name, ""); err != nil {
		return nil, err
	}
	o := options{port: DefaultPort, broadcast: net.IPv4bcast}
	for _, opt := range opts {
		opt(&o)
	}

	lc := net.ListenConfig{Control: control}
	pc, err := lc.ListenPacket(context.Background(), "udp4", fmt.Sprintf(":%d", o.port))
	if err != nil {
		return nil, fmt.Errorf("comms: bind port %d: %w", o.port, err)
	}
	conn, ok := pc.(*net.UDPConn)
	if !ok {
		_ = pc.Close()
		return nil, fmt.Errorf("comms: unexpected packet conn %T", pc)
	}

	return &Channel{
		name:      name,
		port:      conn.LocalAddr().(*net.UDPAddr).Port,
		broadcast: o.broadcast,
		conn:      conn,
		buf:       make([]byte, MaxDatagram),
		messages:  queue.New[Message](),
	}, nil
}

func (c *Channel) Name() string { return c.name }

// Port is the bound port, resolved when Begin was given port 0.
func (c *Channel) Port() int { return c.port }

// Send broadcasts body on the bound port.
func (c *Channel) Send(body string) error {
	return c.SendTo(body, 0)
}

// SendTo broadcasts body to port, or the bound port when port is 0. There is no
// acknowledgement and no retry.
func (c *Channel) SendTo(body string, port int) error {
	if port == 0 {
		port = c.port
	}
	payload, err := Encode(c.name, body)
	if err != nil {
		return err
	}
	_, err = c.conn.WriteToUDP(payload, &net.UDPAddr{IP: c.broadcast, Port: port})
	return err
}

// Available drains every datagram waiting on the socket into the buffer and
// returns how many messages are buffered. Draining stops at the first
// malformed datagram, which is dropped; anything behind it is picked up on the
// next call.
func (c *Channel) Available() int {
	for {
		n, ok, err := readNonBlocking(c.conn, c.buf)
		if err != nil || !ok {
			break
		}
		m, err := Decode(c.buf[:n])
		if err != nil {
			break
		}
		c.messages.Push(m)
	}
	return c.messages.Len()
}

// Recv pops the oldest buffered message, or the zero Message when empty.
func (c *Channel) Recv() Message {
	m, _ := c.messages.Pop()
	return m
}

func (c *Channel) Close() error {
	return c.conn.Close()
}
