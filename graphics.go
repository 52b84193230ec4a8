package glcd

import "github.com/flavioheleno/glcd/device"

// ClearScreen fills the whole display with c.
func (d *Dev) ClearScreen(c device.Color) {
	for page := 0; page < d.Bounds().Dy()/8; page++ {
		d.ClearPage(page, c)
	}
}

// ClearPage fills the 8 pixel high row of memory pages page with c.
func (d *Dev) ClearPage(page int, c device.Color) {
	d.GotoXY(0, page*8)
	for x := 0; x < d.Bounds().Dx(); x++ {
		d.WriteData(byte(c))
	}
}

// DrawVLine draws a vertical line of height+1 pixels starting at (x, y).
func (d *Dev) DrawVLine(x, y, height int, c device.Color) {
	d.SetPixels(x, y, x, y+height, c)
}

// DrawHLine draws a horizontal line of width+1 pixels starting at (x, y).
func (d *Dev) DrawHLine(x, y, width int, c device.Color) {
	d.SetPixels(x, y, x+width, y, c)
}

// DrawLine draws a line from (x1, y1) to (x2, y2), both ends included.
func (d *Dev) DrawLine(x1, y1, x2, y2 int, c device.Color) {
	switch {
	case x1 == x2:
		d.DrawVLine(x1, min(y1, y2), abs(y2-y1), c)
		return
	case y1 == y2:
		d.DrawHLine(min(x1, x2), y1, abs(x2-x1), c)
		return
	}

	// Bresenham.
	dx, dy := abs(x2-x1), -abs(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	e := dx + dy
	for {
		d.SetDot(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x1 += sx
		}
		if e2 <= dx {
			e += dx
			y1 += sy
		}
	}
}

// DrawRect draws the outline of the rectangle (x, y)-(x+width, y+height).
func (d *Dev) DrawRect(x, y, width, height int, c device.Color) {
	d.DrawHLine(x, y, width, c)
	d.DrawHLine(x, y+height, width, c)
	d.DrawVLine(x, y, height, c)
	d.DrawVLine(x+width, y, height, c)
}

// DrawRoundRect is like DrawRect with corners rounded to radius.
func (d *Dev) DrawRoundRect(x, y, width, height, radius int, c device.Color) {
	radius = max(0, min(radius, width/2, height/2))
	tswitch := 3 - 2*radius
	for cx, cy := 0, radius; cx <= cy; cx++ {
		d.SetDot(x+radius-cx, y+radius-cy, c)
		d.SetDot(x+radius-cy, y+radius-cx, c)
		d.SetDot(x+width-radius+cx, y+radius-cy, c)
		d.SetDot(x+width-radius+cy, y+radius-cx, c)
		d.SetDot(x+width-radius+cx, y+height-radius+cy, c)
		d.SetDot(x+width-radius+cy, y+height-radius+cx, c)
		d.SetDot(x+radius-cx, y+height-radius+cy, c)
		d.SetDot(x+radius-cy, y+height-radius+cx, c)

		if tswitch < 0 {
			tswitch += 4*cx + 6
		} else {
			tswitch += 4*(cx-cy) + 10
			cy--
		}
	}
	d.DrawHLine(x+radius, y, width-2*radius, c)
	d.DrawHLine(x+radius, y+height, width-2*radius, c)
	d.DrawVLine(x, y+radius, height-2*radius, c)
	d.DrawVLine(x+width, y+radius, height-2*radius, c)
}

// FillRect fills the rectangle (x, y)-(x+width, y+height), bounds included.
func (d *Dev) FillRect(x, y, width, height int, c device.Color) {
	d.SetPixels(x, y, x+width, y+height, c)
}

// InvertRect inverts every pixel of the rectangle (x, y)-(x+width,
// y+height), bounds included.
func (d *Dev) InvertRect(x, y, width, height int) {
	b := d.Bounds()
	if x < 0 || y < 0 || x >= b.Dx() || y >= b.Dy() || width < 0 || height < 0 {
		return
	}
	x2 := min(x+width, b.Dx()-1)
	y2 := min(y+height, b.Dy()-1)
	for page := y / 8; page <= y2/8; page++ {
		mask := byte(0xFF)
		if top := page * 8; y > top {
			mask &= 0xFF << uint(y-top)
		}
		if bottom := page*8 + 7; y2 < bottom {
			mask &= 0xFF >> uint(bottom-y2)
		}
		for col := x; col <= x2; col++ {
			d.GotoXY(col, page*8)
			d.WriteData(d.ReadData() ^ mask)
		}
	}
}

// DrawCircle draws a circle of the given radius around (xc, yc). It fits
// the square (xc-radius, yc-radius)-(xc+radius, yc+radius).
func (d *Dev) DrawCircle(xc, yc, radius int, c device.Color) {
	d.DrawRoundRect(xc-radius, yc-radius, 2*radius, 2*radius, radius, c)
}

// FillCircle draws a filled circle of the given radius around (xc, yc).
func (d *Dev) FillCircle(xc, yc, radius int, c device.Color) {
	f := 1 - radius
	ddx, ddy := 1, -2*radius
	x, y := 0, radius
	d.DrawVLine(xc, yc-radius, 2*radius, c)
	for x < y {
		if f >= 0 {
			y--
			ddy += 2
			f += ddy
		}
		x++
		ddx += 2
		f += ddx
		d.DrawVLine(xc+x, yc-y, 2*y, c)
		d.DrawVLine(xc-x, yc-y, 2*y, c)
		d.DrawVLine(xc+y, yc-x, 2*x, c)
		d.DrawVLine(xc-y, yc-x, 2*x, c)
	}
}

// DrawBitmap draws bitmap with its top left corner at (x, y).
//
// bitmap starts with the width and height in pixels, followed by the
// columns of each 8 pixel band, top band first, bit 0 on top. Set bits are
// drawn in c and clear bits in the opposite color.
func (d *Dev) DrawBitmap(bitmap []byte, x, y int, c device.Color) {
	if len(bitmap) < 2 {
		lg.Warningf("bitmap without header")
		return
	}
	width, height := int(bitmap[0]), int(bitmap[1])
	bands := (height + 7) / 8
	if need := 2 + width*bands; len(bitmap) < need {
		lg.Warningf("bitmap %dx%d: %d bytes, need %d", width, height, len(bitmap), need)
		return
	}
	data := bitmap[2:]

	for band := 0; band < bands; band++ {
		rows := min(8, height-band*8)
		yy := y + band*8
		if rows == 8 {
			d.GotoXY(x, yy)
			for i := 0; i < width; i++ {
				v := data[band*width+i]
				if c == device.White {
					v = ^v
				}
				d.WriteData(v)
			}
			continue
		}
		for i := 0; i < width; i++ {
			v := data[band*width+i]
			for bit := 0; bit < rows; bit++ {
				if v&(1<<uint(bit)) != 0 {
					d.SetDot(x+i, yy+bit, c)
				} else {
					d.SetDot(x+i, yy+bit, c.Inverse())
				}
			}
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
