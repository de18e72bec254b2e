package st7032

import (
	"periph.io/x/devices/v3/st7032/register"
)

// IconSet turns a named icon on or off, keeping the other segments of its
// icon RAM cell.
func (d *Dev) IconSet(on bool, icon register.Icon) error {
	return d.IconSetRaw(on, icon.Address(), icon.Bits())
}

// IconSetRaw sets (on) or clears the bits of the icon RAM cell at addr. The
// other bits of the cell keep their last written value. The cursor returns
// home afterwards since the icon address shares the address counter.
//
// It does nothing on panels without icons.
func (d *Dev) IconSetRaw(on bool, addr, bits uint8) error {
	if !d.panel.Icons {
		d.log.Debug("st7032: panel has no icons", "addr", addr, "bits", bits)
		return nil
	}
	return wrap("icon", d.iconSet(on, addr, bits))
}

func (d *Dev) iconSet(on bool, addr, bits uint8) error {
	if _, err := register.IconAddress(addr); err != nil {
		return err
	}
	if _, err := register.IconData(bits); err != nil {
		return err
	}
	v := d.st.IconBitmap[addr]
	if on {
		v |= bits
	} else {
		v &^= bits
	}
	if err := d.writeIcon(addr, v); err != nil {
		return err
	}
	return d.returnHome()
}

func (d *Dev) writeIcon(addr, v uint8) error {
	a, err := register.IconAddress(addr)
	if err != nil {
		return err
	}
	return d.withExtended(func() error {
		if err := d.command(a); err != nil {
			return err
		}
		if err := d.data(v); err != nil {
			return err
		}
		d.st.IconBitmap[addr] = v
		return nil
	})
}

// IconState reports whether all the segments of icon are on, according to
// the last values written.
func (d *Dev) IconState(icon register.Icon) bool {
	bits := icon.Bits()
	if bits == 0 || int(icon.Address()) >= len(d.st.IconBitmap) {
		return false
	}
	return d.st.IconBitmap[icon.Address()]&bits == bits
}

// IconSetAll turns every named icon on, or clears the whole icon RAM.
//
// It does nothing on panels without icons.
func (d *Dev) IconSetAll(on bool) error {
	if !d.panel.Icons {
		d.log.Debug("st7032: panel has no icons")
		return nil
	}
	return wrap("icons", d.iconSetAll(on))
}

func (d *Dev) iconSetAll(on bool) error {
	if on {
		for _, icon := range register.Icons {
			if err := d.iconSet(true, icon.Address(), icon.Bits()); err != nil {
				return err
			}
		}
	} else {
		for addr := range uint8(register.IconAddresses) {
			if err := d.writeIcon(addr, 0); err != nil {
				return err
			}
		}
	}
	return d.returnHome()
}
