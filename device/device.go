// Package device implements a cursor-addressed pixel surface on top of a
// multi-chip page-addressed panel.
//
// The surface hides chip boundaries: callers address the panel with global
// pixel coordinates and read or write columns of 8 vertical pixels at any y,
// page aligned or not. Out-of-range coordinates are silently ignored.
//
// Bus errors do not interrupt rendering. The first one is kept and can be
// retrieved with Err.
package device

import (
	"fmt"
	"image"

	"github.com/d2r2/go-logger"

	"github.com/flavioheleno/glcd/panel"
)

var lg = logger.NewPackageLogger("device", logger.InfoLevel)

// Color is the value a full-page write of that color stores.
type Color uint8

const (
	Black Color = 0xFF // Ink
	White Color = 0x00 // Paper
)

// Inverse returns the opposite color.
func (c Color) Inverse() Color {
	if c == Black {
		return White
	}
	return Black
}

func (c Color) String() string {
	if c == Black {
		return "Black"
	}
	return "White"
}

// Dev is a pixel surface spanning every chip of a panel.
//
// Dev is not safe for concurrent use.
type Dev struct {
	bus panel.Bus
	cfg panel.Config

	x, y     int
	pages    []int // Page register of each chip, -1 when unknown
	inverted bool
	err      error
}

// New returns a surface on bus. cfg must be valid.
func New(bus panel.Bus, cfg panel.Config) *Dev {
	d := &Dev{
		bus:   bus,
		cfg:   cfg,
		pages: make([]int, cfg.Chips()),
	}
	d.flushPages()
	return d
}

// Init switches every chip on, resets the display start line and homes the
// cursor.
func (d *Dev) Init(inverted bool) error {
	d.x, d.y = 0, 0
	d.inverted = inverted
	d.flushPages()
	for chip := 0; chip < d.cfg.Chips(); chip++ {
		d.command(chip, d.cfg.Commands.On)
		d.command(chip, d.cfg.Commands.StartCmd(0))
	}
	if d.err != nil {
		return fmt.Errorf("device: init: %w", d.err)
	}
	lg.Debugf("initialized %s, inverted=%t", d.cfg, inverted)
	return nil
}

// SetPower switches the display of every chip on or off. Memory is kept.
func (d *Dev) SetPower(on bool) error {
	cmd := d.cfg.Commands.Off
	if on {
		cmd = d.cfg.Commands.On
	}
	for chip := 0; chip < d.cfg.Chips(); chip++ {
		if err := d.bus.WriteCommand(chip, cmd); err != nil {
			return fmt.Errorf("device: chip %d: %w", chip, err)
		}
	}
	return nil
}

// Config returns the panel geometry.
func (d *Dev) Config() panel.Config {
	return d.cfg
}

// Bounds returns the panel rectangle.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.cfg.Width, d.cfg.Height)
}

// Err returns the first bus error seen, if any.
func (d *Dev) Err() error {
	return d.err
}

// Inverted reports whether reads and writes are complemented.
func (d *Dev) Inverted() bool {
	return d.inverted
}

// SetInverted sets the polarity flag. Panel memory is not touched.
func (d *Dev) SetInverted(inverted bool) {
	d.inverted = inverted
}

// Coord returns the cursor. x may be one past the panel width after a write
// in the last column.
func (d *Dev) Coord() (x, y int) {
	return d.x, d.y
}

// SetCoord stores the cursor without validation. The chip is only addressed
// when the coordinates are on the panel.
func (d *Dev) SetCoord(x, y int) {
	d.x, d.y = x, y
	if d.in(x, y) {
		d.GotoXY(x, y)
	}
}

// GotoXY moves the cursor to (x, y). It is a no-op when the position is off
// the panel.
func (d *Dev) GotoXY(x, y int) {
	if !d.in(x, y) {
		return
	}
	d.x, d.y = x, y
	chip := d.cfg.Chip(x, y)
	if page := d.cfg.Page(y); d.pages[chip] != page {
		d.pages[chip] = page
		d.command(chip, d.cfg.Commands.PageCmd(page))
	}
	d.command(chip, d.cfg.Commands.AddrCmd(d.cfg.Column(x)))
}

// ReadData returns the 8 pixels of the page holding the cursor, at the
// cursor column. The cursor does not move.
func (d *Dev) ReadData() byte {
	if d.x >= d.cfg.Width {
		return 0
	}
	chip := d.cfg.Chip(d.x, d.y)
	d.read(chip) // The output latch still holds the previous address.
	v := d.read(chip)
	d.GotoXY(d.x, d.y)
	if d.inverted {
		v = ^v
	}
	return v
}

// WriteData writes 8 vertical pixels starting at the cursor and advances the
// cursor by one column.
//
// When y is not page aligned the byte straddles two pages; the pixels of
// both pages outside the written range are preserved.
func (d *Dev) WriteData(data byte) {
	if d.x >= d.cfg.Width {
		return
	}
	chip := d.cfg.Chip(d.x, d.y)
	off := uint(d.y % 8)
	if off == 0 {
		d.write(chip, data)
		d.x++
		if d.x < d.cfg.Width && d.cfg.Chip(d.x, d.y) != chip {
			d.GotoXY(d.x, d.y)
		}
		return
	}

	x, y := d.x, d.y
	v := d.ReadData()
	v &= 1<<off - 1
	v |= data << off
	d.write(chip, v)

	next := (y + 8) &^ 7
	if next >= d.cfg.Height {
		d.SetCoord(x+1, y)
		return
	}
	d.GotoXY(x, next)
	v = d.ReadData()
	v &^= 1<<off - 1
	v |= data >> (8 - off)
	d.write(d.cfg.Chip(x, next), v)
	d.SetCoord(x+1, y)
}

// SetPixels fills the inclusive rectangle (x1, y1)-(x2, y2) with c. The
// rectangle is clipped to the panel; nothing happens when its origin is off
// the panel.
func (d *Dev) SetPixels(x1, y1, x2, y2 int, c Color) {
	if !d.in(x1, y1) || x2 < x1 || y2 < y1 {
		return
	}
	x2 = min(x2, d.cfg.Width-1)
	y2 = min(y2, d.cfg.Height-1)
	width := x2 - x1 + 1
	height := y2 - y1 + 1

	off := y1 % 8
	y := y1 - off
	mask := byte(0xFF)
	h := 8 - off
	if height < h {
		mask >>= uint(8 - height)
		h = height
	}
	mask <<= uint(off)
	d.merge(x1, y, width, mask, c)

	for h+8 <= height {
		h += 8
		y += 8
		d.GotoXY(x1, y)
		for i := 0; i < width; i++ {
			d.WriteData(byte(c))
		}
	}

	if h < height {
		d.merge(x1, y+8, width, ^byte(0xFF<<uint(height-h)), c)
	}
}

// SetDot sets pixel (x, y) to c.
func (d *Dev) SetDot(x, y int, c Color) {
	if !d.in(x, y) {
		return
	}
	d.merge(x, y&^7, 1, 1<<uint(y%8), c)
}

// merge sets the bits of mask in width page bytes starting at (x, y).
func (d *Dev) merge(x, y, width int, mask byte, c Color) {
	d.GotoXY(x, y)
	for i := 0; i < width; i++ {
		v := d.ReadData()
		if c == Black {
			v |= mask
		} else {
			v &^= mask
		}
		d.WriteData(v)
	}
}

func (d *Dev) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < d.cfg.Width && y < d.cfg.Height
}

func (d *Dev) flushPages() {
	for i := range d.pages {
		d.pages[i] = -1
	}
}

func (d *Dev) command(chip int, cmd byte) {
	d.check(d.bus.WriteCommand(chip, cmd))
}

func (d *Dev) write(chip int, v byte) {
	if d.inverted {
		v = ^v
	}
	d.check(d.bus.WriteData(chip, v))
}

func (d *Dev) read(chip int) byte {
	v, err := d.bus.ReadData(chip)
	d.check(err)
	return v
}

func (d *Dev) check(err error) {
	if err == nil || d.err != nil {
		return
	}
	d.err = err
	lg.Errorf("bus error: %v", err)
}
