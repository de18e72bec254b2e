package st7032

import (
	"fmt"

	"periph.io/x/devices/v3/st7032/register"
)

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("st7032: %s: %w", op, err)
}

// ClearDisplay blanks the DDRAM and moves the cursor to (0, 0).
func (d *Dev) ClearDisplay() error {
	return wrap("clear display", d.clearDisplay())
}

func (d *Dev) clearDisplay() error {
	if err := d.command(register.ClearDisplay); err != nil {
		return err
	}
	sleep(d.longDelay)
	d.st.Cursor = Cursor{}
	return nil
}

// ReturnHome moves the cursor and any display shift back to the start of
// the first line. In right to left mode the start is the last column.
func (d *Dev) ReturnHome() error {
	return wrap("return home", d.returnHome())
}

func (d *Dev) returnHome() error {
	if err := d.command(register.ReturnHome); err != nil {
		return err
	}
	sleep(d.longDelay)
	d.st.Cursor = Cursor{}
	if d.st.RightToLeft {
		return d.cursorPosition(0, d.panel.Columns-1)
	}
	return nil
}

// EntryModeSet selects the writing direction.
func (d *Dev) EntryModeSet(rightToLeft bool) error {
	return wrap("entry mode", d.entryModeSet(rightToLeft))
}

func (d *Dev) entryModeSet(rightToLeft bool) error {
	if err := d.command(register.EntryMode(rightToLeft)); err != nil {
		return err
	}
	d.st.RightToLeft = rightToLeft
	return nil
}

// CursorPosition moves the cursor to column of line. Both are 0-based.
func (d *Dev) CursorPosition(line, column int) error {
	return wrap("cursor position", d.cursorPosition(line, column))
}

func (d *Dev) cursorPosition(line, column int) error {
	if line < 0 || line >= d.panel.Lines {
		return fmt.Errorf("%w: line=%d (panel has %d)", register.ErrOutOfRange, line, d.panel.Lines)
	}
	if column < 0 || column >= d.panel.Columns {
		return fmt.Errorf("%w: column=%d (panel has %d)", register.ErrOutOfRange, column, d.panel.Columns)
	}
	return d.setDDRAM(line, column)
}

// setDDRAM moves the cursor without checking the panel geometry.
func (d *Dev) setDDRAM(line, column int) error {
	b, err := register.DDRAMAddress(line, column&int(register.DDRAMMask))
	if err != nil {
		return err
	}
	if err := d.command(b); err != nil {
		return err
	}
	d.st.Cursor = Cursor{Line: line, Column: column}
	return nil
}

// FunctionSet writes the function set mask f as is. Bits missing from f are
// cleared on the device, including the instruction table bit.
func (d *Dev) FunctionSet(f register.Function) error {
	return wrap("function set", d.functionSet(f))
}

// FunctionSetMode writes the function set register from its features.
// Double height glyphs are kept in one-line mode and dropped in two-line
// mode.
func (d *Dev) FunctionSetMode(eightBit, twoLine, extended bool) error {
	if !eightBit {
		return wrap("function set", ErrFourBitMode)
	}
	f := register.EightBit
	if twoLine {
		f |= register.TwoLine
	} else if d.st.DoubleHeight {
		f |= register.DoubleHeight
	}
	if extended {
		f |= register.ExtendedTable
	}
	return wrap("function set", d.functionSet(f))
}

// TwoLineMode selects one or two line mode, keeping the interface width and
// the instruction table.
func (d *Dev) TwoLineMode(twoLine bool) error {
	return d.FunctionSetMode(d.st.EightBit, twoLine, d.st.Table == Extended)
}

// DoubleHeight selects 5x16 glyphs. Only valid in one-line mode.
func (d *Dev) DoubleHeight(on bool) error {
	f := d.st.function() &^ register.DoubleHeight
	if on {
		f |= register.DoubleHeight
	}
	return wrap("double height", d.functionSet(f))
}

// InternalOscSet sets the bias and the frame frequency adjustment.
func (d *Dev) InternalOscSet(biasQuarter bool, frequency uint8) error {
	return wrap("internal oscillator", d.internalOscSet(biasQuarter, frequency))
}

func (d *Dev) internalOscSet(biasQuarter bool, frequency uint8) error {
	b, err := register.Oscillator(biasQuarter, frequency)
	if err != nil {
		return err
	}
	return d.withExtended(func() error {
		if err := d.command(b); err != nil {
			return err
		}
		d.st.Oscillator = Oscillator{BiasQuarter: biasQuarter, Frequency: frequency}
		return nil
	})
}

// FollowerControlSet turns the voltage follower on or off and sets its
// amplification ratio.
func (d *Dev) FollowerControlSet(on bool, amplification uint8) error {
	return wrap("follower control", d.followerControlSet(on, amplification))
}

func (d *Dev) followerControlSet(on bool, amplification uint8) error {
	b, err := register.Follower(on, amplification)
	if err != nil {
		return err
	}
	return d.withExtended(func() error {
		if err := d.command(b); err != nil {
			return err
		}
		d.st.Follower = Follower{On: on, Amplification: amplification}
		return nil
	})
}

// ContrastPowerIconSet sets the 6 bit contrast along with the icon display
// and booster flags. The contrast is split over two registers; the shadow is
// only updated once both were written.
func (d *Dev) ContrastPowerIconSet(contrast uint8, iconsOn, booster bool) error {
	return wrap("contrast", d.contrastPowerIconSet(contrast, iconsOn, booster))
}

// ContrastSet sets the contrast, keeping the icon and booster flags.
func (d *Dev) ContrastSet(contrast uint8) error {
	return d.ContrastPowerIconSet(contrast, d.st.IconsOn, d.st.Booster)
}

func (d *Dev) contrastPowerIconSet(contrast uint8, iconsOn, booster bool) error {
	low, err := register.ContrastLow(contrast)
	if err != nil {
		return err
	}
	high, err := register.PowerIcon(contrast, iconsOn, booster)
	if err != nil {
		return err
	}
	return d.withExtended(func() error {
		if err := d.command(low); err != nil {
			return err
		}
		if err := d.command(high); err != nil {
			return err
		}
		d.st.Contrast = contrast
		d.st.IconsOn = iconsOn
		d.st.Booster = booster
		return nil
	})
}

// CursorMode sets the display on/off flag and the cursor style. The cursor
// is visible whenever a style is selected.
func (d *Dev) CursorMode(displayOn, underline, blink bool) error {
	return wrap("cursor mode", d.cursorMode(displayOn, underline, blink))
}

func (d *Dev) cursorMode(displayOn, underline, blink bool) error {
	if err := d.command(register.DisplayControlByte(displayOn, underline, blink)); err != nil {
		return err
	}
	d.st.DisplayOn = displayOn
	d.st.Underline = underline
	d.st.Blink = blink
	d.st.CursorVisible = underline || blink
	return nil
}

// CursorDisplay shows or hides the cursor, keeping its style. It does
// nothing when no style is selected.
func (d *Dev) CursorDisplay(show bool) error {
	return wrap("cursor display", d.cursorDisplay(show))
}

func (d *Dev) cursorDisplay(show bool) error {
	if !d.st.Underline && !d.st.Blink {
		return nil
	}
	if err := d.command(register.DisplayControlByte(d.st.DisplayOn, show && d.st.Underline, show && d.st.Blink)); err != nil {
		return err
	}
	d.st.CursorVisible = show
	return nil
}

// DisplayShift scrolls the whole display by count positions, to the right
// when positive. The cursor follows the text so its shadow is unchanged.
//
// Shift instructions only exist in the normal table, which is selected
// first if needed. The same goes for MoveCursor and SetGlyph.
func (d *Dev) DisplayShift(count int) error {
	if err := d.toNormal(); err != nil {
		return wrap("display shift", err)
	}
	b := register.Shift(true, count > 0)
	for i := 0; i < abs(count); i++ {
		if err := d.command(b); err != nil {
			return wrap("display shift", err)
		}
	}
	return nil
}

// MoveCursor moves the cursor by count positions, to the right when
// positive, without writing. The cursor must stay on the visible columns
// of its line.
func (d *Dev) MoveCursor(count int) error {
	if c := d.st.Cursor.Column + count; c < 0 || c >= d.panel.Columns {
		return wrap("move cursor", fmt.Errorf("%w: column=%d (panel has %d)", register.ErrOutOfRange, c, d.panel.Columns))
	}
	if err := d.toNormal(); err != nil {
		return wrap("move cursor", err)
	}
	b := register.Shift(false, count > 0)
	step := 1
	if count < 0 {
		step = -1
	}
	for i := 0; i < abs(count); i++ {
		if err := d.command(b); err != nil {
			return wrap("move cursor", err)
		}
		d.st.Cursor.Column += step
	}
	return nil
}

// Sleep powers the LCD drive circuits down, or back up with the last
// contrast, icon, booster and follower settings. It does nothing when the
// device already is in the requested state.
func (d *Dev) Sleep(sleep bool) error {
	if sleep == d.st.Sleeping {
		return nil
	}
	if !sleep {
		if err := d.followerControlSet(d.st.Follower.On, d.st.Follower.Amplification); err != nil {
			return wrap("wake", err)
		}
		if err := d.contrastPowerIconSet(d.st.Contrast, d.st.IconsOn, d.st.Booster); err != nil {
			return wrap("wake", err)
		}
		d.st.Sleeping = false
		return nil
	}
	follower, _ := register.Follower(false, 0)
	power, _ := register.PowerIcon(0, false, false)
	return wrap("sleep", d.withExtended(func() error {
		if err := d.command(follower); err != nil {
			return err
		}
		if err := d.command(power); err != nil {
			return err
		}
		d.st.Sleeping = true
		return nil
	}))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
