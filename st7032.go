package st7032

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/devices/v3/st7032/panel"
	"periph.io/x/devices/v3/st7032/register"
	"periph.io/x/devices/v3/st7032/transport"
)

// DefaultLongDelay is the settle time of clear display and return home.
const DefaultLongDelay = time.Millisecond

// DefaultPowerDelay is the time the LCD drive voltage needs to stabilize
// after the follower circuit is turned on during Init.
const DefaultPowerDelay = 200 * time.Millisecond

var (
	// ErrHalted is returned by every operation after Halt, until Init.
	ErrHalted = errors.New("st7032: halted")
	// ErrShortWrite is returned when the transport wrote fewer bytes than
	// requested.
	ErrShortWrite = errors.New("st7032: short write")
	// ErrFourBitMode is returned for function set masks without the 8-bit
	// interface bit. The driver only speaks 8-bit.
	ErrFourBitMode = errors.New("st7032: 4-bit interface not supported")
	// ErrDoubleHeight is returned when double height glyphs are combined
	// with two-line mode.
	ErrDoubleHeight = errors.New("st7032: double height requires one-line mode")
)

// Opts is the configuration for the ST7032 display.
type Opts struct {
	// Panel describes the module. The zero value means panel.SB1602B.
	Panel panel.Panel

	// Logger receives debug traces of table switches and warnings about
	// failed recoveries. Nil discards them.
	Logger *slog.Logger

	// Delays. Zero means the default; negative disables the delay.
	LongDelay  time.Duration // After clear display and return home
	PowerDelay time.Duration // After the follower is turned on by Init

	// Settle delay of each transfer, only used by NewI2C.
	CommandDelay time.Duration
}

// Dev is the device handle for the ST7032 display.
//
// Dev is not safe for concurrent use. Give it a single owner, such as a
// message.Handler, when several goroutines want to show text.
type Dev struct {
	t     transport.Transport
	panel panel.Panel
	log   *slog.Logger

	longDelay  time.Duration
	powerDelay time.Duration

	st     State
	halted bool
}

// NewI2C creates a new ST7032 device on bus at the default address and
// initializes it.
//
// opts can be nil to use defaults (SB1602B panel).
func NewI2C(b i2c.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{}
	}
	t := transport.New(&i2c.Dev{Bus: b, Addr: transport.DefaultAddr}, &transport.Opts{Delay: opts.CommandDelay})
	return New(t, opts)
}

// New creates a new ST7032 device writing through t and initializes it.
//
// opts can be nil to use defaults (SB1602B panel).
func New(t transport.Transport, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{}
	}
	p := opts.Panel
	if p.Lines == 0 && p.Columns == 0 {
		p = panel.SB1602B
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("st7032: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	d := &Dev{
		t:          t,
		panel:      p,
		log:        logger,
		longDelay:  delay(opts.LongDelay, DefaultLongDelay),
		powerDelay: delay(opts.PowerDelay, DefaultPowerDelay),
		st:         newState(p),
	}
	if err := d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}

func delay(v, def time.Duration) time.Duration {
	switch {
	case v == 0:
		return def
	case v < 0:
		return 0
	}
	return v
}

// Init sends the initialization sequence and resets the shadow state to the
// panel defaults. It is run by New; call it again after a power cycle.
func (d *Dev) Init() error {
	d.halted = false
	d.st = newState(d.panel)
	p := d.panel

	// Synchronize the interface width in case the controller was left
	// mid-instruction.
	for _, b := range []byte{0x03, 0x03, 0x03, register.ReturnHome} {
		if err := d.command(b); err != nil {
			return fmt.Errorf("st7032: init: %w", err)
		}
	}

	f := register.EightBit
	if p.Lines == 2 {
		f |= register.TwoLine
	}
	steps := []func() error{
		func() error { return d.functionSet(f) },
		func() error { return d.functionSet(f | register.ExtendedTable) },
		func() error { return d.internalOscSet(p.BiasQuarter, p.OscFrequency) },
		func() error { return d.contrastPowerIconSet(p.Contrast, p.Icons, p.Booster) },
		func() error {
			if err := d.followerControlSet(true, p.FollowerAmp); err != nil {
				return err
			}
			sleep(d.powerDelay)
			return nil
		},
		func() error { return d.entryModeSet(false) },
		func() error { return d.cursorMode(true, true, true) },
		func() error { return d.cursorDisplay(true) },
		d.clearDisplay,
		func() error {
			if !p.Icons {
				return nil
			}
			return d.iconSetAll(false)
		},
		func() error { return d.cursorPosition(0, 0) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return fmt.Errorf("st7032: init: %w", err)
		}
	}
	return nil
}

// State returns a copy of the shadow of the device registers.
func (d *Dev) State() State {
	return d.st
}

// Panel returns the panel profile the device was created with.
func (d *Dev) Panel() panel.Panel {
	return d.panel
}

func (d *Dev) String() string {
	return fmt.Sprintf("st7032.Dev{%s}", d.panel)
}

// Halt turns the display off. Further operations return ErrHalted until
// Init is called.
func (d *Dev) Halt() error {
	if d.halted {
		return nil
	}
	if err := d.command(register.DisplayControlByte(false, false, false)); err != nil {
		return fmt.Errorf("st7032: halt: %w", err)
	}
	d.st.DisplayOn = false
	d.halted = true
	return nil
}

// command sends one instruction byte.
func (d *Dev) command(b byte) error {
	if d.halted {
		return ErrHalted
	}
	n, err := d.t.Send(register.Command, b)
	if err != nil {
		return err
	}
	if n != 2 {
		return fmt.Errorf("%w: %d of 2 bytes", ErrShortWrite, n)
	}
	return nil
}

// data sends p to the data register in one transfer.
func (d *Dev) data(p ...byte) error {
	if d.halted {
		return ErrHalted
	}
	n, err := d.t.SendBurst(register.Data, p)
	if err != nil {
		return err
	}
	if n != len(p)+1 {
		return fmt.Errorf("%w: %d of %d bytes", ErrShortWrite, n, len(p)+1)
	}
	return nil
}

func sleep(v time.Duration) {
	if v > 0 {
		time.Sleep(v)
	}
}

var (
	_ display.TextDisplay     = &Dev{}
	_ display.DisplayContrast = &Dev{}
)
