package font

import (
	"errors"
	"fmt"
)

// Bitmap is the image of one glyph, stored row by row.
type Bitmap struct {
	Width int
	Pix   []bool // Width x font height, row major
}

// At reports whether pixel (col, row) is set.
func (b Bitmap) At(col, row int) bool {
	if col < 0 || col >= b.Width || row < 0 {
		return false
	}
	i := row*b.Width + col
	return i < len(b.Pix) && b.Pix[i]
}

// Desc describes a font to encode.
type Desc struct {
	Height int
	First  byte
	Glyphs []Bitmap

	// Fixed selects the fixed width format. All glyphs must then have the
	// same width.
	Fixed bool
}

// Encode returns the binary form of d.
func Encode(d Desc) ([]byte, error) {
	if d.Height <= 0 || d.Height > 255 {
		return nil, fmt.Errorf("font: invalid height %d", d.Height)
	}
	n := len(d.Glyphs)
	if n == 0 || n > 255 || int(d.First)+n > 256 {
		return nil, fmt.Errorf("font: invalid glyph range 0x%02X+%d", d.First, n)
	}
	widest := 0
	for i, g := range d.Glyphs {
		if g.Width < 0 || g.Width > 255 {
			return nil, fmt.Errorf("font: glyph %d: invalid width %d", i, g.Width)
		}
		if d.Fixed && g.Width != d.Glyphs[0].Width {
			return nil, fmt.Errorf("font: glyph %d is %d wide in a fixed font of width %d", i, g.Width, d.Glyphs[0].Width)
		}
		widest = max(widest, g.Width)
	}
	if d.Fixed && widest == 0 {
		return nil, errors.New("font: zero width")
	}

	bands := (d.Height + 7) / 8
	out := make([]byte, headerSize, headerSize+n+n*bands*widest)
	out[offFixedWidth] = byte(widest)
	out[offHeight] = byte(d.Height)
	out[offFirstChar] = d.First
	out[offCharCount] = byte(n)
	if !d.Fixed {
		for _, g := range d.Glyphs {
			out = append(out, byte(g.Width))
		}
	}
	for _, g := range d.Glyphs {
		for band := 0; band < bands; band++ {
			for col := 0; col < g.Width; col++ {
				out = append(out, encodeColumn(g, d.Height, band, col))
			}
		}
	}
	if !d.Fixed {
		// A non-zero length marks the proportional format.
		l := min(len(out), 0xFFFF)
		out[offLength] = byte(l)
		out[offLength+1] = byte(l >> 8)
	}
	return out, nil
}

func encodeColumn(g Bitmap, height, band, col int) byte {
	var v byte
	for bit := 0; bit < 8; bit++ {
		if row := band*8 + bit; row < height && g.At(col, row) {
			v |= 1 << uint(bit)
		}
	}
	// The residual rows of the last band go to the high bits.
	if r := height % 8; height > 8 && r != 0 && band == (height+7)/8-1 {
		v <<= uint(8 - r)
	}
	return v
}
