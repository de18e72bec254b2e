package register

import (
	"fmt"
	"strings"
)

// Icon identifies a segment of the icon RAM: the address in the high byte and
// the bit(s) of that cell in the low byte.
type Icon uint16

// Icons of the SB1602B panel.
const (
	Antenna  Icon = 0x0010
	Phone    Icon = 0x0210
	Sound    Icon = 0x0410
	Input    Icon = 0x0610
	Up       Icon = 0x0710
	Down     Icon = 0x0708
	Lock     Icon = 0x0910
	Silent   Icon = 0x0B10
	Battery1 Icon = 0x0D10
	Battery2 Icon = 0x0D08
	Battery3 Icon = 0x0D04
	Battery  Icon = 0x0D02
	S76      Icon = 0x0F10
)

// Icons lists the named icons in the order they are enabled by IconSetAll.
var Icons = []Icon{
	Antenna, Phone, Sound, Input, Up, Down, Lock, Silent,
	Battery1, Battery2, Battery3, Battery, S76,
}

var iconNames = map[Icon]string{
	Antenna:  "antenna",
	Phone:    "phone",
	Sound:    "sound",
	Input:    "input",
	Up:       "up",
	Down:     "down",
	Lock:     "lock",
	Silent:   "silent",
	Battery1: "battery1",
	Battery2: "battery2",
	Battery3: "battery3",
	Battery:  "battery",
	S76:      "s76",
}

// Address returns the icon RAM address of the icon.
func (i Icon) Address() uint8 {
	return uint8(i >> 8)
}

// Bits returns the bit mask of the icon within its icon RAM cell.
func (i Icon) Bits() uint8 {
	return uint8(i)
}

func (i Icon) String() string {
	if n, ok := iconNames[i]; ok {
		return n
	}
	return fmt.Sprintf("Icon(0x%02X/0x%02X)", i.Address(), i.Bits())
}

// IconByName returns the named icon, case insensitive.
func IconByName(name string) (Icon, error) {
	name = strings.ToLower(name)
	for i, n := range iconNames {
		if n == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("register: unknown icon %q", name)
}
