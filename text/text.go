// Package text renders fonts into rectangular text areas of a pixel surface.
//
// A Text holds a fixed number of area slots. One slot is active at a time:
// output, cursor moves and erases apply to it. Switching slots saves the area,
// font, ink color and device cursor of the outgoing slot and restores those of
// the incoming one, so every area keeps writing where it left off.
//
// Text areas scroll by an exact number of pixels when a new line does not
// fit, upwards (Forward) or downwards (Reverse). Nothing is returned on
// invalid input: coordinates off the panel are ignored and invalid areas are
// replaced by the whole display.
package text

import (
	"fmt"
	"image"

	"github.com/d2r2/go-logger"

	"github.com/flavioheleno/glcd/device"
	"github.com/flavioheleno/glcd/font"
)

var lg = logger.NewPackageLogger("text", logger.InfoLevel)

// AreaCount is the default number of area slots.
const AreaCount = 5

// Surface is the pixel surface text is rendered into. *device.Dev
// implements it.
type Surface interface {
	Bounds() image.Rectangle

	// GotoXY moves the cursor, ignoring positions off the panel.
	GotoXY(x, y int)
	// Coord and SetCoord access the raw cursor, which may sit one column
	// past the panel after a write in the last column.
	Coord() (x, y int)
	SetCoord(x, y int)

	ReadData() byte
	WriteData(data byte)
	SetPixels(x1, y1, x2, y2 int, c device.Color)
}

// ScrollDir is the direction content moves when a text area is full.
type ScrollDir int

const (
	Forward ScrollDir = 1  // New lines at the bottom, content moves up
	Reverse ScrollDir = -1 // New lines at the top, content moves down
)

func (d ScrollDir) String() string {
	if d < 0 {
		return "Reverse"
	}
	return "Forward"
}

// Area is an inclusive pixel rectangle of the panel.
type Area struct {
	X1, Y1, X2, Y2 int
	Scroll         ScrollDir
}

// Rect returns a as an image.Rectangle.
func (a Area) Rect() image.Rectangle {
	return image.Rect(a.X1, a.Y1, a.X2+1, a.Y2+1)
}

func (a Area) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d) %s", a.X1, a.Y1, a.X2, a.Y2, a.Scroll)
}

// Preset names a region of the panel.
type Preset int

const (
	Full Preset = iota
	Top
	Bottom
	Left
	Right
	TopLeft
	TopRight
	BottomLeft
	BottomRight
	presetCount
)

// area resolves p on a w x h panel.
func (p Preset) area(w, h int) (Area, bool) {
	var x1, y1, x2, y2 int
	switch p {
	case Full:
		x1, y1, x2, y2 = 0, 0, w-1, h-1
	case Top:
		x1, y1, x2, y2 = 0, 0, w-1, h/2-1
	case Bottom:
		x1, y1, x2, y2 = 0, h/2, w-1, h-1
	case Left:
		x1, y1, x2, y2 = 0, 0, w/2-1, h-1
	case Right:
		x1, y1, x2, y2 = w/2, 0, w-1, h-1
	case TopLeft:
		x1, y1, x2, y2 = 0, 0, w/2-1, h/2-1
	case TopRight:
		x1, y1, x2, y2 = w/2, 0, w-1, h/2-1
	case BottomLeft:
		x1, y1, x2, y2 = 0, h/2, w/2-1, h-1
	case BottomRight:
		x1, y1, x2, y2 = w/2, h/2, w-1, h-1
	default:
		return Area{}, false
	}
	return Area{X1: x1, Y1: y1, X2: x2, Y2: y2, Scroll: Forward}, true
}

// Handle identifies an area slot. Handles returned for a rejected
// definition carry InvalidTag.
type Handle uint8

// InvalidTag marks a Handle whose definition was rejected.
const InvalidTag Handle = 0x80

// Valid reports whether the definition was accepted.
func (h Handle) Valid() bool { return h&InvalidTag == 0 }

// noSlot is stored in an invalid Handle whose slot number does not fit.
const noSlot Handle = 0x7F

// Slot returns the slot number, or -1 for an invalid handle whose slot
// number cannot be represented.
func (h Handle) Slot() int {
	if h == InvalidTag|noSlot {
		return -1
	}
	return int(h &^ InvalidTag)
}

// rejected returns the invalid handle for slot n.
func rejected(n int) Handle {
	if n < 0 || n >= int(noSlot) {
		return InvalidTag | noSlot
	}
	return Handle(n) | InvalidTag
}

// context is the state of one text area.
type context struct {
	area Area
	font *font.Font
	ink  device.Color
	x, y int // Device cursor, only meaningful while saved
}

// Text is a set of text areas sharing one surface.
//
// Text is not safe for concurrent use.
type Text struct {
	s      Surface
	cur    context
	saved  []context
	active int
}

// New returns a Text with areas slots on s, or AreaCount slots when areas
// is not positive. Every slot covers the whole display and has no font.
func New(s Surface, areas int) *Text {
	if areas <= 0 {
		areas = AreaCount
	}
	b := s.Bounds()
	full := context{
		area: Area{X1: 0, Y1: 0, X2: b.Dx() - 1, Y2: b.Dy() - 1, Scroll: Forward},
		ink:  device.Black,
	}
	t := &Text{s: s, cur: full, saved: make([]context, areas)}
	for i := range t.saved {
		t.saved[i] = full
	}
	return t
}

// Areas returns the number of slots.
func (t *Text) Areas() int {
	return len(t.saved)
}

// Active returns the active slot.
func (t *Text) Active() int {
	return t.active
}

// Area returns the active area.
func (t *Text) Area() Area {
	return t.cur.area
}

// SelectArea makes slot n active. The cursor returns to where slot n last
// left it. It is a no-op when n is out of range or already active.
func (t *Text) SelectArea(n int) {
	if n < 0 || n >= len(t.saved) || n == t.active {
		return
	}
	t.cur.x, t.cur.y = t.s.Coord()
	t.saved[t.active] = t.cur
	t.cur = t.saved[n]
	// The saved cursor may be past the right edge of the panel.
	t.s.SetCoord(t.cur.x, t.cur.y)
	t.active = n
}

// DefineArea sets the bounds of slot n and moves its cursor to the top left
// corner. Pixels are not cleared.
//
// Bounds that are reversed, empty or off the panel are replaced by the whole
// display. The returned handle is tagged invalid when n is out of range.
// Lines always start inside the area; a font taller than the area paints
// past Y2.
func (t *Text) DefineArea(n int, a Area) Handle {
	if n < 0 || n >= len(t.saved) {
		lg.Warningf("no area slot %d", n)
		return rejected(n)
	}
	b := t.s.Bounds()
	if a.X1 >= a.X2 || a.Y1 >= a.Y2 || a.X1 < 0 || a.Y1 < 0 || a.X2 >= b.Dx() || a.Y2 >= b.Dy() {
		lg.Warningf("area %d: %s does not fit %dx%d, using the whole display", n, a, b.Dx(), b.Dy())
		a = Area{X1: 0, Y1: 0, X2: b.Dx() - 1, Y2: b.Dy() - 1, Scroll: a.Scroll}
	}
	if a.Scroll == 0 {
		a.Scroll = Forward
	}
	if n != t.active {
		t.saved[n].area = a
		t.saved[n].x, t.saved[n].y = a.X1, a.Y1
	} else {
		t.cur.area = a
		t.s.GotoXY(a.X1, a.Y1)
	}
	return Handle(n)
}

// DefineGrid defines slot n as cols x rows character cells of f with the top
// left corner at (x, y), and selects f in black for it. Cells of
// proportional fonts are as wide as the widest glyph.
func (t *Text) DefineGrid(n, x, y, cols, rows int, f *font.Font, dir ScrollDir) Handle {
	if f == nil {
		lg.Warningf("area %d: grid without a font", n)
		return rejected(n)
	}
	h := t.DefineArea(n, Area{
		X1:     x,
		Y1:     y,
		X2:     x + cols*(f.FixedWidth()+1) - 1,
		Y2:     y + rows*(f.Height()+1) - 1,
		Scroll: dir,
	})
	if !h.Valid() {
		return h
	}
	t.saved[n].font = f
	t.saved[n].ink = device.Black
	if n == t.active {
		t.cur.font = f
		t.cur.ink = device.Black
	}
	return h
}

// DefinePreset defines slot n as one of the predefined regions.
func (t *Text) DefinePreset(n int, p Preset, dir ScrollDir) Handle {
	b := t.s.Bounds()
	a, ok := p.area(b.Dx(), b.Dy())
	if !ok {
		lg.Warningf("area %d: unknown preset %d", n, p)
		return rejected(n)
	}
	a.Scroll = dir
	return t.DefineArea(n, a)
}

// ClearArea fills the active area with the paper color and homes the cursor.
func (t *Text) ClearArea() {
	a := t.cur.area
	t.s.SetPixels(a.X1, a.Y1, a.X2, a.Y2, t.cur.ink.Inverse())
	t.CursorToXY(0, 0)
}

// SelectFont sets the font and ink color of the active area. Glyph data is
// read through the font's Source.
func (t *Text) SelectFont(f *font.Font, ink device.Color) {
	t.cur.font = f
	t.cur.ink = ink
}

// SetFontColor changes the ink color of the active area.
func (t *Text) SetFontColor(ink device.Color) {
	t.cur.ink = ink
}

// Font returns the font of the active area, nil if none.
func (t *Text) Font() *font.Font {
	return t.cur.font
}

// Ink returns the ink color of the active area.
func (t *Text) Ink() device.Color {
	return t.cur.ink
}

// SetScrollDir changes the scroll direction of the active area.
func (t *Text) SetScrollDir(dir ScrollDir) {
	t.cur.area.Scroll = dir
}
