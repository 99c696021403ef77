package hw

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// MCP3008 is an 8 channel 10-bit ADC on SPI.
type MCP3008 struct {
	conn spi.Conn
	VRef float64
}

const mcp3008Channels = 8

func NewMCP3008(p spi.Port) (*MCP3008, error) {
	c, err := p.Connect(physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("hw: mcp3008 connect: %w", err)
	}
	return &MCP3008{conn: c, VRef: 3.3}, nil
}

// Read returns the raw 0..1023 sample of a single-ended channel.
func (a *MCP3008) Read(ch int) (int, error) {
	if ch < 0 || ch >= mcp3008Channels {
		return 0, fmt.Errorf("hw: mcp3008 channel %d out of range", ch)
	}
	w := []byte{1, byte(8+ch) << 4, 0}
	r := make([]byte, len(w))
	if err := a.conn.Tx(w, r); err != nil {
		return 0, fmt.Errorf("hw: mcp3008 tx: %w", err)
	}
	return int(r[1]&3)<<8 | int(r[2]), nil
}

func (a *MCP3008) Volts(ch int) (float64, error) {
	raw, err := a.Read(ch)
	if err != nil {
		return 0, err
	}
	return float64(raw) * a.VRef / 1023, nil
}
