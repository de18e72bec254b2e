package glyph

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

const (
	// Width is the number of pixels of a row.
	Width = 5
	// Height is the number of rows of a glyph.
	Height = 8
)

// Bit represents a pixel that is either lit or not.
type Bit struct {
	On bool
}

// RGBA converts the Bit color to standard RGBA: lit pixels are white.
func (c Bit) RGBA() (r, g, b, a uint32) {
	if c.On {
		return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
	}
	return 0, 0, 0, 0xFFFF
}

// toBit converts any color.Color to Bit. Pixels brighter than mid gray and
// not transparent are lit.
func toBit(c color.Color) color.Color {
	if b, ok := c.(Bit); ok {
		return b
	}
	r, g, b, a := c.RGBA()
	if a < 0x8000 {
		return Bit{}
	}
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Bit{On: y >= 0x8000}
}

// BitModel converts colors to Bit.
var BitModel = color.ModelFunc(toBit)

// Glyph is a 5x8 image stored as the CGRAM rows of a custom character.
// Only the lower 5 bits of each row are used.
type Glyph [Height]uint8

// Parse builds a glyph from text art, one string per row. '#', '*', 'X' and
// '1' are lit pixels, '.', ' ', '_' and '0' are not. Missing rows are blank.
func Parse(rows ...string) (Glyph, error) {
	var g Glyph
	if len(rows) > Height {
		return g, fmt.Errorf("glyph: %d rows, max %d", len(rows), Height)
	}
	for y, row := range rows {
		if len(row) > Width {
			return g, fmt.Errorf("glyph: row %d: %d pixels, max %d", y, len(row), Width)
		}
		for x, c := range []byte(row) {
			switch c {
			case '#', '*', 'X', '1':
				g.SetBit(x, y, Bit{On: true})
			case '.', ' ', '_', '0':
			default:
				return g, fmt.Errorf("glyph: row %d: unexpected %q", y, c)
			}
		}
	}
	return g, nil
}

// ColorModel returns the color model of the image.
func (g *Glyph) ColorModel() color.Model {
	return BitModel
}

// Bounds returns the image bounds, always 5x8 at the origin.
func (g *Glyph) Bounds() image.Rectangle {
	return image.Rect(0, 0, Width, Height)
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (g *Glyph) At(x, y int) color.Color {
	return g.BitAt(x, y)
}

// BitAt returns the Bit color of the pixel at (x, y).
func (g *Glyph) BitAt(x, y int) Bit {
	if !(image.Point{X: x, Y: y}.In(g.Bounds())) {
		return Bit{}
	}
	return Bit{On: g[y]&mask(x) != 0}
}

// Set sets the color of the pixel at (x, y).
func (g *Glyph) Set(x, y int, c color.Color) {
	g.SetBit(x, y, BitModel.Convert(c).(Bit))
}

// SetBit sets the Bit color of the pixel at (x, y).
// This is faster than Set() as it doesn't require color conversion.
func (g *Glyph) SetBit(x, y int, c Bit) {
	if !(image.Point{X: x, Y: y}.In(g.Bounds())) {
		return
	}
	if c.On {
		g[y] |= mask(x)
	} else {
		g[y] &^= mask(x)
	}
}

// String renders the glyph as text art, rows separated by newlines.
func (g Glyph) String() string {
	var sb strings.Builder
	for y := range Height {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range Width {
			if g.BitAt(x, y).On {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// mask returns the bit of column x. The leftmost pixel is the high bit.
func mask(x int) uint8 {
	return 1 << uint(Width-1-x)
}
