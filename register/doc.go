// Package register describes the ST7032 instruction set as data.
//
// The controller exposes two instruction tables selected by the IS bit of the
// function set command. Opcodes that share a value across tables (0x10, 0x40)
// mean different things depending on which table is active:
//
//	Opcode  Normal (IS=0)        Extended (IS=1)
//	0x10    cursor/display shift internal oscillator
//	0x40    set CGRAM address    set icon address
//	0x50    set CGRAM address    power/icon/contrast high bits
//	0x60    set CGRAM address    follower control
//	0x70    set CGRAM address    contrast low bits
//
// Every encoder in this package is pure: it validates its inputs against the
// bit width of the field they occupy and returns the byte to send, without
// touching the bus. A value outside its field is reported as ErrOutOfRange.
//
// Memory layout of the icon RAM, 16 addresses of 5 bits each:
//
//	Icon      Address  Bits
//	Antenna   0x00     0b10000
//	Phone     0x02     0b10000
//	Battery   0x0D     0b00010
//
// See Icons for the complete table.
package register
