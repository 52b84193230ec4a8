package text

import (
	"fmt"
	"io"

	"github.com/flavioheleno/glcd/device"
	"github.com/flavioheleno/glcd/font"
)

// Result is the outcome of PutChar.
type Result int

const (
	NotWritten Result = iota // No font selected
	Written
	Wrapped // A new line was started, by '\n' or because the glyph did not fit
	Invalid // The font has no glyph for the character; nothing was drawn
)

func (r Result) String() string {
	switch r {
	case NotWritten:
		return "NotWritten"
	case Written:
		return "Written"
	case Wrapped:
		return "Wrapped"
	case Invalid:
		return "Invalid"
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// EraseMode selects the part of the line EraseInLine clears.
type EraseMode int

// Modes follow the ANSI "CSI n K" sequence.
const (
	EraseToEOL   EraseMode = 0
	EraseFromBOL EraseMode = 1
	EraseLine    EraseMode = 2
)

var (
	_ io.Writer       = (*Text)(nil)
	_ io.ByteWriter   = (*Text)(nil)
	_ io.StringWriter = (*Text)(nil)
)

// PutChar draws c at the cursor of the active area.
//
// A glyph that would cross the right edge of the area starts a new line
// first. '\n' starts a new line; other control characters are ignored.
func (t *Text) PutChar(c byte) Result {
	f := t.cur.font
	if f == nil {
		return NotWritten
	}
	if c < 0x20 {
		if c == '\n' {
			t.newline()
			return Wrapped
		}
		return Written
	}
	g, ok := f.Glyph(c)
	if !ok {
		return Invalid
	}
	res := Written
	if x, _ := t.s.Coord(); x+g.Width > t.cur.area.X2 {
		t.newline()
		res = Wrapped
	}
	t.paint(f, g)
	return res
}

// newline erases the rest of the current line, then moves the cursor to the
// next line, scrolling the area by the exact number of pixels needed to fit
// it.
func (t *Text) newline() {
	x, y := t.s.Coord()
	h := t.cur.font.Height()
	a := t.cur.area
	paper := t.cur.ink.Inverse()

	if x < a.X2 {
		t.s.SetPixels(x, y, a.X2, y+h, paper)
	}

	if a.Scroll >= 0 {
		if y+2*h >= a.Y2 {
			t.ScrollUp(a.X1, a.Y1, a.X2, a.Y2, 2*h+y-a.Y2+1, paper)
			// A font taller than the area still starts at its top.
			t.s.GotoXY(a.X1, max(a.Y1, a.Y2-h))
		} else {
			t.s.GotoXY(a.X1, y+h+1)
		}
		return
	}

	if y > a.Y1+h {
		t.s.GotoXY(a.X1, y-(h+1))
	} else {
		t.ScrollDown(a.X1, a.Y1, a.X2, a.Y2, a.Y1+h+1-y, paper)
		t.s.GotoXY(a.X1, a.Y1)
	}
}

// paint draws g at the cursor followed by a one pixel gap column and a one
// pixel gap row, then moves the cursor past the gap column.
func (t *Text) paint(f *font.Font, g font.Glyph) {
	x, y := t.s.Coord()
	b := t.s.Bounds()
	if x < 0 || y < 0 || x >= b.Dx() || y >= b.Dy() {
		t.s.SetCoord(x+g.Width+1, y)
		return
	}
	white := t.cur.ink == device.White
	pixels := g.Height + 1

	// Each pass fills the rows of one display page.
	for p := 0; p < pixels; {
		dy := y + p
		if dy&^7 >= b.Dy() {
			break
		}
		lo := dy & 7
		t.s.GotoXY(x, dy&^7)

		for col := 0; col < g.Width; col++ {
			fdata := glyphBits(f, g, p, col, white)
			if lo == 0 && p&7 == 0 && pixels-p >= 8 {
				t.s.WriteData(fdata)
				continue
			}
			dbyte := t.s.ReadData()
			for tfp, dp := p, lo; dp <= 7 && tfp < pixels; tfp, dp = tfp+1, dp+1 {
				if fdata&(1<<uint(tfp&7)) != 0 {
					dbyte |= 1 << uint(dp)
				} else {
					dbyte &^= 1 << uint(dp)
				}
				if tfp&7 == 7 {
					fdata = glyphBits(f, g, tfp+1, col, white)
				}
			}
			t.s.WriteData(dbyte)
		}

		// Gap column, in paper color.
		hi := lo + pixels - p
		if lo == 0 && hi >= 8 {
			var gap byte
			if white {
				gap = 0xFF
			}
			t.s.WriteData(gap)
		} else {
			keep := lowBits(lo)
			if hi < 8 {
				keep |= ^lowBits(hi)
			}
			dbyte := t.s.ReadData()
			if white {
				dbyte |= ^keep
			} else {
				dbyte &= keep
			}
			t.s.WriteData(dbyte)
		}

		p += 8 - lo
	}
	t.s.SetCoord(x+g.Width+1, y)
}

// glyphBits returns the band of column col holding row, with rows past the
// glyph cleared and the ink applied.
func glyphBits(f *font.Font, g font.Glyph, row, col int, white bool) byte {
	var v byte
	if row < g.Height {
		band := row / 8
		v = f.Column(g, band, col)
		if rest := g.Height - band*8; rest < 8 {
			v &= lowBits(rest)
		}
	}
	if white {
		v ^= 0xFF
	}
	return v
}

// lowBits returns a mask of the n lowest bits, 0 <= n <= 8.
func lowBits(n int) byte {
	return byte(0xFF >> uint(8-n))
}

// Puts writes s to the active area.
func (t *Text) Puts(s string) {
	for i := 0; i < len(s); i++ {
		t.PutChar(s[i])
	}
}

// DrawString writes s starting at (x, y) relative to the active area.
func (t *Text) DrawString(s string, x, y int) {
	t.CursorToXY(x, y)
	t.Puts(s)
}

// Write implements io.Writer. It never fails.
func (t *Text) Write(p []byte) (int, error) {
	for _, c := range p {
		t.PutChar(c)
	}
	return len(p), nil
}

// WriteByte implements io.ByteWriter.
func (t *Text) WriteByte(c byte) error {
	t.PutChar(c)
	return nil
}

// WriteString implements io.StringWriter.
func (t *Text) WriteString(s string) (int, error) {
	t.Puts(s)
	return len(s), nil
}

// Printf formats according to a format specifier and writes to the active
// area.
func (t *Text) Printf(format string, args ...any) {
	fmt.Fprintf(t, format, args...)
}

// CursorTo moves the cursor to character cell (col, row) of the active area.
// Cells are as wide as the widest glyph.
func (t *Text) CursorTo(col, row int) {
	f := t.cur.font
	if f == nil {
		return
	}
	t.s.GotoXY(col*(f.FixedWidth()+1)+t.cur.area.X1, row*(f.Height()+1)+t.cur.area.Y1)
}

// CursorToXY moves the cursor to pixel (x, y) of the active area.
func (t *Text) CursorToXY(x, y int) {
	t.s.GotoXY(t.cur.area.X1+x, t.cur.area.Y1+y)
}

// EraseInLine clears part of the current line in paper color. The cursor
// does not move.
func (t *Text) EraseInLine(mode EraseMode) {
	f := t.cur.font
	if f == nil {
		return
	}
	x, y := t.s.Coord()
	h := f.Height()
	a := t.cur.area
	paper := t.cur.ink.Inverse()
	switch mode {
	case EraseToEOL:
		t.s.SetPixels(x, y, a.X2, y+h, paper)
	case EraseFromBOL:
		t.s.SetPixels(a.X1, y, x, y+h, paper)
	case EraseLine:
		t.s.SetPixels(a.X1, y, a.X2, y+h, paper)
	}
	t.s.SetCoord(x, y)
}

// CharWidth returns the width c takes when written, gap column included, or
// 0 when the font has no glyph for c.
func (t *Text) CharWidth(c byte) int {
	f := t.cur.font
	if f == nil {
		return 0
	}
	g, ok := f.Glyph(c)
	if !ok {
		return 0
	}
	return g.Width + 1
}

// StringWidth returns the sum of the widths of the characters of s.
func (t *Text) StringWidth(s string) int {
	w := 0
	for i := 0; i < len(s); i++ {
		w += t.CharWidth(s[i])
	}
	return w
}
