// Package st7032 controls an ST7032 character LCD via I²C.
//
// The ST7032 is an HD44780 compatible dot matrix controller with an
// integrated voltage booster, a follower circuit for the LCD drive voltage,
// software contrast and an icon row. It is found on small 3.3V modules such
// as the SB1602B, AQM1602Y and AQM0802A. This driver implements the
// display.TextDisplay and display.DisplayContrast interfaces from periph.io.
//
// # Write-only Controller
//
// The controller cannot be read over I²C: there is no busy flag and no way
// to fetch the current settings. The driver keeps a shadow of everything it
// has written (see State) and composes every register write from it, so that
// changing one feature never resets the others sharing the same register.
//
// # Instruction Tables
//
// Half of the instruction set is only reachable after selecting the extended
// instruction table with the IS bit of the function set instruction:
//
//	Normal table (IS=0)      Extended table (IS=1)
//	0x10 cursor/display shift 0x10 internal oscillator
//	0x40 set CGRAM address    0x40 set icon address
//	                          0x50 power/icon/contrast high bits
//	                          0x60 follower control
//	                          0x70 contrast low bits
//
// Operations on extended registers switch tables themselves and always try
// to return to the normal table, even after a failed write. When that
// recovery fails too, the error is a *RecoveryError carrying both failures.
//
// # Hardware Connection
//
//	Module Pin → System Pin
//	VDD        → 3.3V
//	VSS        → GND
//	SCL        → I²C clock
//	SDA        → I²C data
//	RST        → VDD (or a GPIO held high)
//
// The module answers at address 0x3E and supports up to 400kHz.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"log"
//
//		"periph.io/x/conn/v3/i2c/i2creg"
//		"periph.io/x/devices/v3/st7032"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		if _, err := host.Init(); err != nil {
//			log.Fatal(err)
//		}
//		bus, err := i2creg.Open("")
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer bus.Close()
//
//		dev, err := st7032.NewI2C(bus, &st7032.Opts{})
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer dev.Halt()
//
//		dev.WriteString("Hello")
//		dev.CursorPosition(1, 0)
//		dev.Printf("%d°C", 21)
//	}
//
// # Panels
//
// Geometry, icon support and the power-on contrast come from a panel.Panel
// profile. SB1602B is used when none is given. Custom profiles can be loaded
// from YAML with panel.LoadFile.
//
// # Datasheet
//
// https://www.newhavendisplay.com/appnotes/datasheets/LCDs/ST7032.pdf
package st7032
