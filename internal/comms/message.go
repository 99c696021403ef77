package comms

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// Delimiter separates the origin panel from the body on the wire.
	Delimiter = ":"
	// DefaultPort is shared by every panel on the broadcast domain.
	DefaultPort = 43822
	// DefaultBroadcast is the limited broadcast address.
	DefaultBroadcast = "255.255.255.255"
	// MaxDatagram is the receive buffer size; longer datagrams are truncated.
	MaxDatagram = 1024
)

// Well-known bodies.
const (
	Reset    = "RESET"
	Complete = "COMPLETE"
	Coin     = "COIN"
	Stop     = "STOP"
	// StartPrefix addresses a single panel: "START:<panel>".
	StartPrefix = "START" + Delimiter
)

var (
	ErrMalformed = errors.New("comms: malformed datagram")
	ErrOrigin    = errors.New("comms: origin contains delimiter")
)

// Message is one decoded datagram.
type Message struct {
	Origin string `json:"origin"`
	Body   string `json:"body"`
}

func (m Message) IsZero() bool { return m.Origin == "" && m.Body == "" }

func (m Message) String() string { return m.Origin + Delimiter + m.Body }

// Start returns the body that starts the named panel.
func Start(panel string) string { return StartPrefix + panel }

// Encode builds the wire form origin:body.
func Encode(origin, body string) ([]byte, error) {
	if strings.Contains(origin, Delimiter) {
		return nil, fmt.Errorf("%w: %q", ErrOrigin, origin)
	}
	return []byte(origin + Delimiter + body), nil
}

// Decode splits a datagram on the first delimiter. The body may contain
// further delimiters.
func Decode(b []byte) (Message, error) {
	if !utf8.Valid(b) {
		return Message{}, fmt.Errorf("%w: invalid utf-8", ErrMalformed)
	}
	origin, body, ok := strings.Cut(string(b), Delimiter)
	if !ok {
		return Message{}, fmt.Errorf("%w: no delimiter", ErrMalformed)
	}
	return Message{Origin: origin, Body: body}, nil
}
