// Package font decodes the compact binary glyph format used by graphic LCD
// libraries.
//
// A font starts with a 6 byte header:
//
//	0-1  length, 0 for fixed width fonts
//	2    glyph width (fixed) or widest glyph (proportional)
//	3    glyph height in pixels
//	4    first character
//	5    character count
//
// Proportional fonts follow the header with one width byte per glyph. Glyph
// data is stored column by column in bands of 8 rows: band 0 of every column,
// then band 1, and so on. In the last band of fonts taller than 8 pixels the
// residual rows occupy the high bits of the byte.
package font

import (
	"errors"
	"fmt"
)

const headerSize = 6

const (
	offLength     = 0
	offFixedWidth = 2
	offHeight     = 3
	offFirstChar  = 4
	offCharCount  = 5
)

// Source gives byte access to font data wherever it is stored.
type Source interface {
	ByteAt(offset int) byte
}

// Bytes is a Source backed by a slice. Offsets past the end read as 0.
type Bytes []byte

// ByteAt implements Source.
func (b Bytes) ByteAt(offset int) byte {
	if offset < 0 || offset >= len(b) {
		return 0
	}
	return b[offset]
}

// SourceFunc adapts a function to Source.
type SourceFunc func(offset int) byte

// ByteAt implements Source.
func (f SourceFunc) ByteAt(offset int) byte {
	return f(offset)
}

// Font is a decoded font header bound to its data.
type Font struct {
	src    Source
	fixed  bool
	width  int
	height int
	first  int
	count  int
}

// New reads the header of the font in src. It does not validate the data.
func New(src Source) *Font {
	return &Font{
		src:    src,
		fixed:  src.ByteAt(offLength) == 0 && src.ByteAt(offLength+1) == 0,
		width:  int(src.ByteAt(offFixedWidth)),
		height: int(src.ByteAt(offHeight)),
		first:  int(src.ByteAt(offFirstChar)),
		count:  int(src.ByteAt(offCharCount)),
	}
}

// Parse decodes b and checks that it holds every glyph it declares.
func Parse(b []byte) (*Font, error) {
	if len(b) < headerSize {
		return nil, errors.New("font: short header")
	}
	f := New(Bytes(b))
	if f.height == 0 {
		return nil, errors.New("font: zero height")
	}
	if f.count == 0 {
		return nil, errors.New("font: no glyphs")
	}
	if f.first+f.count > 256 {
		return nil, fmt.Errorf("font: glyphs 0x%02X+%d overflow a byte", f.first, f.count)
	}
	if f.fixed && f.width == 0 {
		return nil, errors.New("font: zero width")
	}
	if !f.fixed && len(b) < headerSize+f.count {
		return nil, errors.New("font: short width table")
	}
	if need := f.size(); len(b) < need {
		return nil, fmt.Errorf("font: %d bytes, need %d", len(b), need)
	}
	return f, nil
}

// MustParse is like Parse but panics on error.
func MustParse(b []byte) *Font {
	f, err := Parse(b)
	if err != nil {
		panic(err)
	}
	return f
}

// size returns the number of bytes the font data occupies.
func (f *Font) size() int {
	if f.fixed {
		return headerSize + f.count*f.BytesTall()*f.width
	}
	cols := 0
	for i := 0; i < f.count; i++ {
		cols += int(f.src.ByteAt(headerSize + i))
	}
	return headerSize + f.count + cols*f.BytesTall()
}

// Fixed reports whether all glyphs have the same width.
func (f *Font) Fixed() bool { return f.fixed }

// Height returns the glyph height in pixels.
func (f *Font) Height() int { return f.height }

// FixedWidth returns the width stored in the header: the glyph width of a
// fixed font, the widest glyph of a proportional one.
func (f *Font) FixedWidth() int { return f.width }

// FirstChar returns the first character in the font.
func (f *Font) FirstChar() int { return f.first }

// CharCount returns the number of glyphs.
func (f *Font) CharCount() int { return f.count }

// BytesTall returns the number of 8 pixel bands of a glyph.
func (f *Font) BytesTall() int { return (f.height + 7) / 8 }

// Valid reports whether the font has a glyph for c.
func (f *Font) Valid(c byte) bool {
	return int(c) >= f.first && int(c) < f.first+f.count
}

// Glyph locates a glyph in the font data.
type Glyph struct {
	Width  int
	Height int
	Offset int // Offset of the first data byte
}

// Glyph returns the glyph of c.
func (f *Font) Glyph(c byte) (Glyph, bool) {
	if !f.Valid(c) {
		return Glyph{}, false
	}
	i := int(c) - f.first
	bytes := f.BytesTall()
	if f.fixed {
		return Glyph{Width: f.width, Height: f.height, Offset: i*bytes*f.width + headerSize}, true
	}
	// No offset table: sum the widths of the preceding glyphs.
	cols := 0
	for j := 0; j < i; j++ {
		cols += int(f.src.ByteAt(headerSize + j))
	}
	return Glyph{
		Width:  int(f.src.ByteAt(headerSize + i)),
		Height: f.height,
		Offset: cols*bytes + f.count + headerSize,
	}, true
}

// Width returns the pixel width of c, without the inter-character gap, or 0
// when the font has no glyph for c.
func (f *Font) Width(c byte) int {
	g, _ := f.Glyph(c)
	return g.Width
}

// Column returns the byte holding rows band*8 to band*8+7 of column col of
// g, bit 0 being the top row. Bands below the glyph read as 0.
func (f *Font) Column(g Glyph, band, col int) byte {
	bytes := (g.Height + 7) / 8
	if band < 0 || band >= bytes || col < 0 || col >= g.Width {
		return 0
	}
	v := f.src.ByteAt(g.Offset + band*g.Width + col)
	// Fonts up to 8 pixels tall store their rows from bit 0.
	if r := g.Height % 8; g.Height > 8 && r != 0 && band == bytes-1 {
		v >>= uint(8 - r)
	}
	return v
}

// Pixel reports whether pixel (col, row) of g is set.
func (f *Font) Pixel(g Glyph, col, row int) bool {
	if row < 0 || row >= g.Height {
		return false
	}
	return f.Column(g, row/8, col)&(1<<uint(row%8)) != 0
}

func (f *Font) String() string {
	kind := "proportional"
	if f.fixed {
		kind = "fixed"
	}
	return fmt.Sprintf("font{%s %dx%d, 0x%02X+%d}", kind, f.width, f.height, f.first, f.count)
}
