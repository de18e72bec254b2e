package register

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a feature value does not fit in its field.
var ErrOutOfRange = errors.New("register: value out of range")

// Tag is the I²C control byte that precedes every payload. It selects which
// register of the controller receives the bytes that follow.
type Tag byte

const (
	Command Tag = 0x00 // Instruction register
	Data    Tag = 0x40 // DDRAM/CGRAM/icon RAM data register
)

func (t Tag) String() string {
	switch t {
	case Command:
		return "command"
	case Data:
		return "data"
	}
	return fmt.Sprintf("Tag(0x%02X)", byte(t))
}

// Instructions available in both tables.
const (
	ClearDisplay   byte = 0x01
	ReturnHome     byte = 0x02
	EntryModeSet   byte = 0x04
	DisplayControl byte = 0x08
	FunctionSet    byte = 0x20
	SetDDRAMAddr   byte = 0x80
)

// Normal table (IS=0) instructions.
const (
	CursorShift  byte = 0x10
	SetCGRAMAddr byte = 0x40
)

// Extended table (IS=1) instructions.
const (
	InternalOsc       byte = 0x10
	SetIconAddr       byte = 0x40
	PowerIconContrast byte = 0x50
	FollowerControl   byte = 0x60
	ContrastSet       byte = 0x70
)

// Function holds the option bits of the function set instruction.
type Function byte

const (
	EightBit      Function = 0x10
	TwoLine       Function = 0x08
	DoubleHeight  Function = 0x04
	ExtendedTable Function = 0x01

	functionMask = EightBit | TwoLine | DoubleHeight | ExtendedTable
)

// Has reports whether all bits of o are set in f.
func (f Function) Has(o Function) bool {
	return f&o == o
}

// Entry mode option bits.
const (
	EntryIncrement byte = 0x02
	EntryShift     byte = 0x01
)

// Display control option bits.
const (
	DisplayOn byte = 0x04
	CursorOn  byte = 0x02
	BlinkOn   byte = 0x01
)

// Cursor/display shift option bits.
const (
	ShiftCursorLeft   byte = 0x00
	ShiftCursorRight  byte = 0x04
	ShiftDisplayLeft  byte = 0x08
	ShiftDisplayRight byte = 0x0C
)

// Extended table option bits.
const (
	BiasQuarter byte = 0x08 // 1/4 bias instead of 1/5
	IconOn      byte = 0x08
	Booster     byte = 0x04
	FollowerOn  byte = 0x08
)

// Field masks.
const (
	FrequencyMask     byte = 0x07
	AmplificationMask byte = 0x07
	ContrastLowMask   byte = 0x0F
	ContrastHighMask  byte = 0x03
	ContrastMax       byte = 0x3F
	DDRAMMask         byte = 0x7F
	CGRAMMask         byte = 0x3F
	IconAddrMask      byte = 0x0F
	IconDataMask      byte = 0x1F
	GlyphRowMask      byte = 0x1F

	// Line1Offset is the DDRAM address of the first cell of the second line.
	Line1Offset byte = 0x40

	// IconAddresses is the number of addressable icon RAM cells.
	IconAddresses = 16
	// GlyphRows is the number of rows in a CGRAM character.
	GlyphRows = 8
	// Glyphs is the number of programmable CGRAM characters.
	Glyphs = 8
)

func outOfRange(field string, v, max int) error {
	return fmt.Errorf("%w: %s=%d (max %d)", ErrOutOfRange, field, v, max)
}

// FunctionSetByte encodes a function set instruction. The mask is written
// as-is: bits not present are cleared on the device.
func FunctionSetByte(f Function) (byte, error) {
	if f&^functionMask != 0 {
		return 0, fmt.Errorf("%w: function bits 0x%02X", ErrOutOfRange, byte(f))
	}
	return FunctionSet | byte(f), nil
}

// EntryMode encodes an entry mode instruction. Right to left always carries
// the shift bit along with the increment bit.
func EntryMode(rightToLeft bool) byte {
	if rightToLeft {
		return EntryModeSet | EntryIncrement | EntryShift
	}
	return EntryModeSet
}

// DisplayControlByte encodes a display on/off control instruction.
func DisplayControlByte(display, cursor, blink bool) byte {
	b := DisplayControl
	if display {
		b |= DisplayOn
	}
	if cursor {
		b |= CursorOn
	}
	if blink {
		b |= BlinkOn
	}
	return b
}

// DDRAMAddress encodes a set DDRAM address instruction for line 0 or 1.
func DDRAMAddress(line, column int) (byte, error) {
	if line < 0 || line > 1 {
		return 0, outOfRange("line", line, 1)
	}
	if column < 0 || column > int(DDRAMMask) {
		return 0, outOfRange("column", column, int(DDRAMMask))
	}
	b := SetDDRAMAddr | (byte(column) & DDRAMMask)
	if line == 1 {
		b |= Line1Offset
	}
	return b, nil
}

// Shift encodes a single step cursor or display shift. When display is true
// the cursor follows the display in the same direction.
func Shift(display, right bool) byte {
	switch {
	case display && right:
		return CursorShift | ShiftDisplayRight | ShiftCursorRight
	case display:
		return CursorShift | ShiftDisplayLeft | ShiftCursorLeft
	case right:
		return CursorShift | ShiftCursorRight
	}
	return CursorShift | ShiftCursorLeft
}

// CGRAMAddress encodes the set CGRAM address instruction selecting the first
// row of glyph index.
func CGRAMAddress(index uint8) (byte, error) {
	if index >= Glyphs {
		return 0, outOfRange("glyph", int(index), Glyphs-1)
	}
	return SetCGRAMAddr | ((index << 3) & CGRAMMask), nil
}

// GlyphRow validates a single CGRAM row.
func GlyphRow(row uint8) (byte, error) {
	if row&^GlyphRowMask != 0 {
		return 0, outOfRange("glyph row", int(row), int(GlyphRowMask))
	}
	return row, nil
}

// Oscillator encodes the internal oscillator instruction (extended table).
func Oscillator(biasQuarter bool, frequency uint8) (byte, error) {
	if frequency&^FrequencyMask != 0 {
		return 0, outOfRange("frequency", int(frequency), int(FrequencyMask))
	}
	b := InternalOsc | frequency
	if biasQuarter {
		b |= BiasQuarter
	}
	return b, nil
}

// IconAddress encodes the set icon address instruction (extended table).
func IconAddress(addr uint8) (byte, error) {
	if addr&^IconAddrMask != 0 {
		return 0, outOfRange("icon address", int(addr), int(IconAddrMask))
	}
	return SetIconAddr | addr, nil
}

// IconData validates the 5 bit content of one icon RAM cell.
func IconData(bits uint8) (byte, error) {
	if bits&^IconDataMask != 0 {
		return 0, outOfRange("icon bits", int(bits), int(IconDataMask))
	}
	return bits, nil
}

// ContrastLow encodes the contrast set instruction carrying the low 4 bits of
// contrast (extended table).
func ContrastLow(contrast uint8) (byte, error) {
	if contrast > ContrastMax {
		return 0, outOfRange("contrast", int(contrast), int(ContrastMax))
	}
	return ContrastSet | (contrast & ContrastLowMask), nil
}

// PowerIcon encodes the power/icon/contrast instruction carrying the high 2
// bits of contrast along with the icon and booster flags (extended table).
func PowerIcon(contrast uint8, icons, booster bool) (byte, error) {
	if contrast > ContrastMax {
		return 0, outOfRange("contrast", int(contrast), int(ContrastMax))
	}
	b := PowerIconContrast | ((contrast >> 4) & ContrastHighMask)
	if icons {
		b |= IconOn
	}
	if booster {
		b |= Booster
	}
	return b, nil
}

// Follower encodes the follower control instruction (extended table).
func Follower(on bool, amplification uint8) (byte, error) {
	if amplification&^AmplificationMask != 0 {
		return 0, outOfRange("amplification", int(amplification), int(AmplificationMask))
	}
	b := FollowerControl | amplification
	if on {
		b |= FollowerOn
	}
	return b, nil
}
