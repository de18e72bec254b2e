package st7032

import (
	"errors"

	"periph.io/x/devices/v3/st7032/glyph"
	"periph.io/x/devices/v3/st7032/register"
)

// SetGlyph programs custom character index (0-7). Print it by writing the
// byte index.
//
// The display is blanked while the CGRAM is written, then the display
// control and the cursor position are restored from the shadow, even when a
// row could not be written.
func (d *Dev) SetGlyph(index uint8, g glyph.Glyph) error {
	addr, err := register.CGRAMAddress(index)
	if err != nil {
		return wrap("glyph", err)
	}
	for _, row := range g {
		if _, err := register.GlyphRow(row); err != nil {
			return wrap("glyph", err)
		}
	}

	if err := d.toNormal(); err != nil {
		return wrap("glyph", err)
	}
	if err := d.command(register.DisplayControlByte(false, false, false)); err != nil {
		return wrap("glyph", err)
	}
	err = d.writeGlyph(addr, g)
	if rerr := d.command(d.st.displayControl()); rerr != nil {
		err = errors.Join(err, rerr)
	} else if rerr := d.setDDRAM(d.st.Cursor.Line, d.st.Cursor.Column); rerr != nil {
		err = errors.Join(err, rerr)
	}
	return wrap("glyph", err)
}

func (d *Dev) writeGlyph(addr byte, g glyph.Glyph) error {
	if err := d.command(addr); err != nil {
		return err
	}
	for _, row := range g {
		if err := d.data(row); err != nil {
			return err
		}
	}
	return nil
}
