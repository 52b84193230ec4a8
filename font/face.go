package font

import (
	"fmt"
	"image"
	"sync"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// FromFace rasterizes count characters of face starting at first. The font
// is fixed width when every glyph has the same advance.
func FromFace(face xfont.Face, first byte, count int) (*Font, error) {
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	height := ascent + m.Descent.Ceil()
	if height <= 0 {
		return nil, fmt.Errorf("font: face has height %d", height)
	}

	d := Desc{Height: height, First: first, Fixed: true}
	for i := 0; i < count; i++ {
		r := rune(int(first) + i)
		dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, ascent), r)
		b := Bitmap{Width: advance.Ceil()}
		b.Pix = make([]bool, b.Width*height)
		if ok && mask != nil {
			for y := max(dr.Min.Y, 0); y < min(dr.Max.Y, height); y++ {
				for x := max(dr.Min.X, 0); x < min(dr.Max.X, b.Width); x++ {
					if _, _, _, a := mask.At(maskp.X+x-dr.Min.X, maskp.Y+y-dr.Min.Y).RGBA(); a >= 0x8000 {
						b.Pix[y*b.Width+x] = true
					}
				}
			}
		}
		if len(d.Glyphs) > 0 && b.Width != d.Glyphs[0].Width {
			d.Fixed = false
		}
		d.Glyphs = append(d.Glyphs, b)
	}
	data, err := Encode(d)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

var fixed7x13 struct {
	once sync.Once
	font *Font
}

// Fixed7x13 returns the printable ASCII range of basicfont.Face7x13.
func Fixed7x13() *Font {
	fixed7x13.once.Do(func() {
		f, err := FromFace(basicfont.Face7x13, 0x20, 0x7F-0x20)
		if err != nil {
			panic(err)
		}
		fixed7x13.font = f
	})
	return fixed7x13.font
}

// Render draws the string s into a new image, one pixel per font pixel, with
// a one pixel gap after each glyph. It is meant for previews and tests.
func (f *Font) Render(s string) *image.Alpha {
	w := 0
	for i := 0; i < len(s); i++ {
		if g, ok := f.Glyph(s[i]); ok {
			w += g.Width + 1
		}
	}
	img := image.NewAlpha(image.Rect(0, 0, w, f.height))
	x := 0
	for i := 0; i < len(s); i++ {
		g, ok := f.Glyph(s[i])
		if !ok {
			continue
		}
		for col := 0; col < g.Width; col++ {
			for row := 0; row < g.Height; row++ {
				if f.Pixel(g, col, row) {
					img.Pix[img.PixOffset(x+col, row)] = 0xFF
				}
			}
		}
		x += g.Width + 1
	}
	return img
}
