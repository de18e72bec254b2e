// Package glyph provides the 5x8 monochrome image format of ST7032 custom
// characters.
//
// The controller has 8 programmable characters in CGRAM. Each is stored as 8
// rows of 5 pixels, one byte per row, with the leftmost pixel in bit 4:
//
//	Pixels: 0 1 2 3 4
//	Row:    # . . . #
//	Byte:   0x11
//
// This package provides:
//
// - Bit: a color type for a pixel that is either on or off
// - BitModel: a color model converting standard Go colors to Bit
// - Glyph: a draw.Image holding the 8 row bytes ready to be written
//
// Example usage:
//
//	// Draw a glyph as text art
//	heart, _ := glyph.Parse(
//		".....",
//		".#.#.",
//		"#####",
//		"#####",
//		".###.",
//		"..#..",
//		".....",
//		".....",
//	)
//
//	// Or render anything drawable
//	var g glyph.Glyph
//	draw.Draw(&g, g.Bounds(), src, image.Point{}, draw.Src)
package glyph
