package fortune

import (
	"fmt"
	"io"
	"time"
)

const (
	esc = 0x1B
	gs  = 0x1D
)

type Justify byte

const (
	Left   Justify = 0
	Center Justify = 1
	Right  Justify = 2
)

type Size byte

const (
	Small  Size = 0x00
	Medium Size = 0x01 // double height
	Large  Size = 0x11 // double height and width
)

// Printer speaks the ESC/POS subset understood by small thermal printers.
// The first write error sticks and is returned by Err.
type Printer struct {
	w   io.Writer
	err error
	// WakeDelay is how long the printer needs after Wake.
	WakeDelay time.Duration
	sleep     func(time.Duration)
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, WakeDelay: 50 * time.Millisecond, sleep: time.Sleep}
}

func (p *Printer) write(b ...byte) {
	if p.err != nil {
		return
	}
	if _, err := p.w.Write(b); err != nil {
		p.err = fmt.Errorf("fortune: printer write: %w", err)
	}
}

func (p *Printer) Err() error { return p.err }

// Feed advances n lines.
func (p *Printer) Feed(n int) { p.write(esc, 'd', byte(n)) }

func (p *Printer) Justify(j Justify) { p.write(esc, 'a', byte(j)) }

func (p *Printer) SetSize(s Size) { p.write(gs, '!', byte(s)) }

func (p *Printer) Bold(on bool) {
	var v byte
	if on {
		v = 1
	}
	p.write(esc, 'E', v)
}

func (p *Printer) Println(s string) {
	p.write(append([]byte(s), '\n')...)
}

// Sleep powers the print head down after one second of idle.
func (p *Printer) Sleep() { p.write(esc, '8', 1, 0) }

// Wake must be called before printing after Sleep.
func (p *Printer) Wake() {
	p.write(0xFF)
	p.sleep(p.WakeDelay)
}

// SetDefault restores justification, size, bold and line spacing.
func (p *Printer) SetDefault() {
	p.Justify(Left)
	p.SetSize(Small)
	p.Bold(false)
	p.write(esc, '2')
}

// Fortune prints one fortune centred in bold medium text and parks the
// printer. It returns the first write error.
func (p *Printer) Fortune(f string) error {
	p.Feed(1)
	p.Justify(Center)
	p.SetSize(Medium)
	p.Bold(true)
	for _, l := range Lines(f) {
		p.Println(l)
	}
	p.Bold(false)
	p.Feed(5)
	p.Sleep()
	p.Wake()
	p.SetDefault()
	return p.err
}
