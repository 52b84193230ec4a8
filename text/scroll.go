package text

import "github.com/flavioheleno/glcd/device"

// ScrollUp moves the inclusive region (x1, y1)-(x2, y2) up by exactly pixels
// rows and fills the rows uncovered at the bottom with c. Pixels outside the
// region are preserved, including those sharing a page with its top and
// bottom rows.
func (t *Text) ScrollUp(x1, y1, x2, y2, pixels int, c device.Color) {
	t.scroll(x1, y1, x2, y2, pixels, c)
}

// ScrollDown moves the inclusive region (x1, y1)-(x2, y2) down by exactly
// pixels rows and fills the rows uncovered at the top with c.
func (t *Text) ScrollDown(x1, y1, x2, y2, pixels int, c device.Color) {
	t.scroll(x1, y1, x2, y2, -pixels, c)
}

// scroll shifts the region by n rows, up when n is positive.
func (t *Text) scroll(x1, y1, x2, y2, n int, c device.Color) {
	b := t.s.Bounds()
	if x1 < 0 || y1 < 0 || x1 >= b.Dx() || y1 >= b.Dy() || x2 < x1 || y2 < y1 || n == 0 {
		return
	}
	x2 = min(x2, b.Dx()-1)
	y2 = min(y2, b.Dy()-1)
	if abs(n) > y2-y1 {
		t.s.SetPixels(x1, y1, x2, y2, c)
		return
	}

	top, bottom := y1/8, y2/8
	src := make([]byte, bottom-top+1)
	dst := make([]byte, len(src))
	for col := x1; col <= x2; col++ {
		for i := range src {
			t.s.GotoXY(col, (top+i)*8)
			src[i] = t.s.ReadData()
		}
		copy(dst, src)
		for y := y1; y <= y2; y++ {
			on := c == device.Black
			if sy := y + n; sy >= y1 && sy <= y2 {
				on = src[sy/8-top]&(1<<uint(sy&7)) != 0
			}
			if on {
				dst[y/8-top] |= 1 << uint(y&7)
			} else {
				dst[y/8-top] &^= 1 << uint(y&7)
			}
		}
		for i := range dst {
			if dst[i] == src[i] {
				continue
			}
			t.s.GotoXY(col, (top+i)*8)
			t.s.WriteData(dst[i])
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
