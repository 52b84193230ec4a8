package font

import (
	"errors"
	"image/color"

	"tinygo.org/x/tinyfont"
)

// capture is a drivers.Displayer recording the pixels a glyph sets.
type capture struct {
	w, h int16
	pix  []bool
}

func newCapture(w, h int) *capture {
	return &capture{w: int16(w), h: int16(h), pix: make([]bool, w*h)}
}

func (c *capture) Size() (x, y int16) { return c.w, c.h }

func (c *capture) SetPixel(x, y int16, _ color.RGBA) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.pix[int(y)*int(c.w)+int(x)] = true
}

func (c *capture) Display() error { return nil }

// FromTinyfont rasterizes count characters of f starting at first.
//
// Glyph boxes are aligned on the common baseline; the font height spans the
// highest ascent and the lowest descent of the selected glyphs.
func FromTinyfont(f tinyfont.Fonter, first byte, count int) (*Font, error) {
	if count <= 0 {
		return nil, errors.New("font: no glyphs")
	}
	infos := make([]tinyfont.GlyphInfo, count)
	ascent, descent := 0, 0
	for i := range infos {
		// Some fonts reuse one glyph value; copy the info right away.
		infos[i] = f.GetGlyph(rune(int(first) + i)).Info()
		ascent = max(ascent, -int(infos[i].YOffset))
		descent = max(descent, int(infos[i].YOffset)+int(infos[i].Height))
	}
	height := ascent + descent
	if height <= 0 {
		height = int(f.GetYAdvance())
	}

	d := Desc{Height: height, First: first, Fixed: true}
	for i, info := range infos {
		w := int(info.XAdvance)
		c := newCapture(w, height)
		f.GetGlyph(rune(int(first)+i)).Draw(c, 0, int16(ascent), color.RGBA{A: 0xFF})
		d.Glyphs = append(d.Glyphs, Bitmap{Width: w, Pix: c.pix})
		if i > 0 && w != d.Glyphs[0].Width {
			d.Fixed = false
		}
	}
	data, err := Encode(d)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
