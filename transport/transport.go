// Package transport sends tagged bytes to an ST7032 over I²C.
//
// Every transfer is a single bus transaction made of the control byte (the
// register.Tag) followed by the payload. The controller cannot be read, so
// there is no busy flag to poll: each transfer is followed by a fixed settle
// delay long enough for the slowest regular instruction.
package transport

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/devices/v3/st7032/register"
	"tinygo.org/x/drivers"
)

// DefaultAddr is the fixed I²C address of the ST7032.
const DefaultAddr uint16 = 0x3E

// DefaultDelay is the settle time of regular instructions (26.3µs at 380kHz)
// rounded up.
const DefaultDelay = 30 * time.Microsecond

// ErrEmptyBurst is returned by SendBurst when there is nothing to send.
var ErrEmptyBurst = errors.New("transport: empty burst")

// Transport is the contract the driver consumes. Both methods return the
// number of bytes written on the bus, control byte included.
type Transport interface {
	Send(tag register.Tag, b byte) (int, error)
	SendBurst(tag register.Tag, p []byte) (int, error)
}

// Opts is the configuration of a Conn.
type Opts struct {
	// Delay after each transfer. Zero means DefaultDelay; use a negative
	// value to disable it (tests, or buses slower than the controller).
	Delay time.Duration
}

type txer interface {
	Tx(w, r []byte) error
}

// Conn is a Transport over a periph.io connection.
type Conn struct {
	c     txer
	name  string
	delay time.Duration
	buf   []byte
}

// New returns a Transport writing to c, typically an *i2c.Dev.
func New(c conn.Conn, opts *Opts) *Conn {
	return newConn(c, c.String(), opts)
}

// NewBus returns a Transport writing to addr on bus. Any bus with a
// Tx(addr, w, r) method fits, including periph.io i2c.Bus and TinyGo
// machine.I2C.
func NewBus(bus drivers.I2C, addr uint16, opts *Opts) *Conn {
	if addr == 0 {
		addr = DefaultAddr
	}
	return newConn(&busConn{bus: bus, addr: addr}, fmt.Sprintf("i2c(0x%02X)", addr), opts)
}

func newConn(c txer, name string, opts *Opts) *Conn {
	d := DefaultDelay
	if opts != nil && opts.Delay != 0 {
		d = opts.Delay
	}
	if d < 0 {
		d = 0
	}
	return &Conn{c: c, name: name, delay: d}
}

// Send writes a single payload byte to the register selected by tag.
func (t *Conn) Send(tag register.Tag, b byte) (int, error) {
	return t.tx(tag, []byte{b})
}

// SendBurst writes p to the register selected by tag in one transaction.
func (t *Conn) SendBurst(tag register.Tag, p []byte) (int, error) {
	if len(p) == 0 {
		return 0, ErrEmptyBurst
	}
	return t.tx(tag, p)
}

func (t *Conn) tx(tag register.Tag, p []byte) (int, error) {
	t.buf = append(t.buf[:0], byte(tag))
	t.buf = append(t.buf, p...)
	if err := t.c.Tx(t.buf, nil); err != nil {
		return 0, fmt.Errorf("transport: %s write: %w", tag, err)
	}
	if t.delay > 0 {
		time.Sleep(t.delay)
	}
	return len(t.buf), nil
}

func (t *Conn) String() string {
	return "st7032-transport{" + t.name + "}"
}

// busConn binds a bus to the device address.
type busConn struct {
	bus  drivers.I2C
	addr uint16
}

func (b *busConn) Tx(w, r []byte) error {
	return b.bus.Tx(b.addr, w, r)
}

var _ Transport = &Conn{}
