package glcd

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/d2r2/go-logger"
	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/ssd1306/image1bit"

	"github.com/flavioheleno/glcd/device"
	"github.com/flavioheleno/glcd/panel"
	"github.com/flavioheleno/glcd/text"
)

var lg = logger.NewPackageLogger("glcd", logger.InfoLevel)

var errHalted = errors.New("glcd: halted")

// Opts is the configuration of a display.
type Opts struct {
	Panel panel.Config // Geometry and command set (default: 128x64 ks0108)

	// Inverted starts the display with complemented reads and writes, so
	// White pixels are dark.
	Inverted bool

	Areas int // Text area slots (default: text.AreaCount)
}

// Dev is a graphic LCD: a pixel surface with drawing primitives and text
// areas.
//
// Dev is not safe for concurrent use.
type Dev struct {
	*device.Dev
	*text.Text

	scratch *image1bit.VerticalLSB // Lazily allocated by Draw
	halted  bool
}

var _ display.Drawer = (*Dev)(nil)

// New initializes the panel behind bus, clears it and homes the cursor.
//
// opts can be nil to use defaults (128x64 ks0108).
func New(bus panel.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{Panel: panel.KS0108(128, 64)}
	}
	if err := opts.Panel.Validate(); err != nil {
		return nil, fmt.Errorf("glcd: %w", err)
	}

	dd := device.New(bus, opts.Panel)
	if err := dd.Init(opts.Inverted); err != nil {
		return nil, fmt.Errorf("glcd: %w", err)
	}
	d := &Dev{Dev: dd}
	d.ClearScreen(device.White)
	d.GotoXY(0, 0)
	d.Text = text.New(dd, opts.Areas)
	if err := dd.Err(); err != nil {
		return nil, fmt.Errorf("glcd: clear: %w", err)
	}
	lg.Infof("%s ready, %d text areas", d, d.Areas())
	return d, nil
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Draw implements display.Drawer.
//
// src is converted to black and white, lit pixels being Black. Only the
// pages that differ from display memory are written.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errHalted
	}
	dst = dst.Intersect(d.Bounds())
	if dst.Empty() {
		return nil
	}
	if d.scratch == nil {
		d.scratch = image1bit.NewVerticalLSB(d.Bounds())
	}

	// Display memory is read once; the diff runs against that copy.
	top, bottom := dst.Min.Y/8, (dst.Max.Y-1)/8
	mem := make([]byte, 0, (bottom-top+1)*dst.Dx())
	for page := top; page <= bottom; page++ {
		for x := dst.Min.X; x < dst.Max.X; x++ {
			d.GotoXY(x, page*8)
			v := d.ReadData()
			d.setColumn(x, page*8, v)
			mem = append(mem, v)
		}
	}

	draw.Draw(d.scratch, dst, src, sp, draw.Src)

	i := 0
	for page := top; page <= bottom; page++ {
		for x := dst.Min.X; x < dst.Max.X; x++ {
			if next := d.column(x, page*8); next != mem[i] {
				d.GotoXY(x, page*8)
				d.WriteData(next)
			}
			i++
		}
	}
	return d.Err()
}

// column returns the scratch page byte holding rows y to y+7 of column x.
func (d *Dev) column(x, y int) byte {
	var v byte
	for bit := 0; bit < 8; bit++ {
		if d.scratch.BitAt(x, y+bit) {
			v |= 1 << uint(bit)
		}
	}
	return v
}

func (d *Dev) setColumn(x, y int, v byte) {
	for bit := 0; bit < 8; bit++ {
		d.scratch.SetBit(x, y+bit, image1bit.Bit(v&(1<<uint(bit)) != 0))
	}
}

// SetDisplayMode switches between normal and inverted display. Display
// memory is inverted as well, so the image on screen flips polarity while
// the pixels read back through Dev do not change.
func (d *Dev) SetDisplayMode(inverted bool) error {
	if d.halted {
		return errHalted
	}
	if d.Inverted() == inverted {
		return nil
	}
	b := d.Bounds()
	d.InvertRect(0, 0, b.Dx()-1, b.Dy()-1)
	d.SetInverted(inverted)
	return d.Err()
}

// Halt implements conn.Resource.
//
// It switches the display off. Draw and SetDisplayMode fail afterwards.
func (d *Dev) Halt() error {
	d.halted = true
	if err := d.SetPower(false); err != nil {
		return fmt.Errorf("glcd: %w", err)
	}
	return nil
}

// String implements conn.Resource.
func (d *Dev) String() string {
	b := d.Bounds()
	return fmt.Sprintf("glcd.Dev{%dx%d}", b.Dx(), b.Dy())
}
