package st7032

import (
	"periph.io/x/devices/v3/st7032/panel"
	"periph.io/x/devices/v3/st7032/register"
)

// Table is the instruction table currently selected on the controller.
type Table uint8

const (
	Normal Table = iota
	Extended
)

func (t Table) String() string {
	if t == Extended {
		return "extended"
	}
	return "normal"
}

// Cursor is the DDRAM position the next character is written to.
//
// Column is not wrapped: writing past the end of a line keeps counting, as
// the controller does until the end of the 40 character DDRAM line.
type Cursor struct {
	Line   int
	Column int
}

// Oscillator is the content of the internal oscillator register.
type Oscillator struct {
	BiasQuarter bool
	Frequency   uint8
}

// Follower is the content of the follower control register.
type Follower struct {
	On            bool
	Amplification uint8
}

// State is the last value written to every register of the controller.
type State struct {
	Table        Table
	EightBit     bool
	TwoLine      bool
	DoubleHeight bool
	RightToLeft  bool

	Cursor Cursor

	DisplayOn     bool
	Underline     bool
	Blink         bool
	CursorVisible bool

	Oscillator Oscillator
	Follower   Follower
	Contrast   uint8
	IconsOn    bool
	Booster    bool

	IconBitmap [register.IconAddresses]uint8
	Sleeping   bool
}

func newState(p panel.Panel) State {
	return State{
		EightBit:   true,
		TwoLine:    p.Lines == 2,
		Oscillator: Oscillator{BiasQuarter: p.BiasQuarter, Frequency: p.OscFrequency},
		Follower:   Follower{On: true, Amplification: p.FollowerAmp},
	}
}

// function returns the function set mask the controller currently holds.
func (s *State) function() register.Function {
	var f register.Function
	if s.EightBit {
		f |= register.EightBit
	}
	if s.TwoLine {
		f |= register.TwoLine
	}
	if s.DoubleHeight {
		f |= register.DoubleHeight
	}
	if s.Table == Extended {
		f |= register.ExtendedTable
	}
	return f
}

func (s *State) setFunction(f register.Function) {
	s.EightBit = f.Has(register.EightBit)
	s.TwoLine = f.Has(register.TwoLine)
	s.DoubleHeight = f.Has(register.DoubleHeight)
	s.Table = Normal
	if f.Has(register.ExtendedTable) {
		s.Table = Extended
	}
}

// displayControl returns the display control byte matching the shadow.
func (s *State) displayControl() byte {
	return register.DisplayControlByte(s.DisplayOn, s.CursorVisible && s.Underline, s.CursorVisible && s.Blink)
}
