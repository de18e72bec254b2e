package st7032

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/display"
)

// Write sends p as characters at the cursor in a single transfer. The
// cursor column advances by len(p) without wrapping to the next line.
//
// Bytes 0-7 print the custom characters set with SetGlyph.
func (d *Dev) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if err := d.data(p...); err != nil {
		return 0, wrap("write", err)
	}
	d.st.Cursor.Column += len(p)
	return len(p), nil
}

// WriteString sends s as characters at the cursor.
func (d *Dev) WriteString(s string) (int, error) {
	return d.Write([]byte(s))
}

// Printf formats according to a format specifier and writes the result at
// the cursor. The output is cut to the number of cells of the panel.
func (d *Dev) Printf(format string, a ...any) (int, error) {
	s := fmt.Sprintf(format, a...)
	if n := d.panel.Cells(); len(s) > n {
		s = s[:n]
	}
	return d.WriteString(s)
}

// Clear implements display.TextDisplay.
func (d *Dev) Clear() error {
	return d.ClearDisplay()
}

// Home implements display.TextDisplay.
func (d *Dev) Home() error {
	return d.ReturnHome()
}

// MoveTo implements display.TextDisplay. row and col are 0-based.
func (d *Dev) MoveTo(row, col int) error {
	return d.CursorPosition(row, col)
}

// Move implements display.TextDisplay. Only Forward and Backward are
// supported; the controller has no line feed.
func (d *Dev) Move(dir display.CursorDirection) error {
	switch dir {
	case display.Forward:
		return d.MoveCursor(1)
	case display.Backward:
		return d.MoveCursor(-1)
	case display.Up, display.Down:
		return fmt.Errorf("st7032: move %v: %w", dir, display.ErrNotImplemented)
	}
	return fmt.Errorf("st7032: move %v: %w", dir, display.ErrInvalidCommand)
}

// Cursor implements display.TextDisplay. CursorBlock and CursorBlink both
// select the blinking block; they can be combined with CursorUnderline.
func (d *Dev) Cursor(modes ...display.CursorMode) error {
	var underline, blink bool
	for _, m := range modes {
		switch m {
		case display.CursorOff:
			underline, blink = false, false
		case display.CursorUnderline:
			underline = true
		case display.CursorBlock, display.CursorBlink:
			blink = true
		default:
			return fmt.Errorf("st7032: cursor mode %v: %w", m, display.ErrInvalidCommand)
		}
	}
	return d.CursorMode(d.st.DisplayOn, underline, blink)
}

// Display implements display.TextDisplay. The cursor style is kept.
func (d *Dev) Display(on bool) error {
	st := d.st
	st.DisplayOn = on
	if err := d.command(st.displayControl()); err != nil {
		return wrap("display", err)
	}
	d.st.DisplayOn = on
	return nil
}

// AutoScroll implements display.TextDisplay. It is not supported: the
// controller only shifts the display together with right to left entry.
func (d *Dev) AutoScroll(enabled bool) error {
	return fmt.Errorf("st7032: autoscroll: %w", display.ErrNotImplemented)
}

// Contrast implements display.DisplayContrast. c ranges from 0 to 63.
func (d *Dev) Contrast(c display.Contrast) error {
	if c < 0 || c > 0x3F {
		return fmt.Errorf("st7032: contrast %d: %w", c, errContrastRange)
	}
	return d.ContrastSet(uint8(c))
}

var errContrastRange = errors.New("valid range is 0 to 63")

// Rows implements display.TextDisplay.
func (d *Dev) Rows() int {
	return d.panel.Lines
}

// Cols implements display.TextDisplay.
func (d *Dev) Cols() int {
	return d.panel.Columns
}

// MinRow implements display.TextDisplay. Rows are 0-based.
func (d *Dev) MinRow() int {
	return 0
}

// MinCol implements display.TextDisplay. Columns are 0-based.
func (d *Dev) MinCol() int {
	return 0
}
