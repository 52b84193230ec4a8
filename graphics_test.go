package glcd

import (
	"testing"

	"github.com/flavioheleno/glcd/device"
	"github.com/flavioheleno/glcd/panel"
)

// pixels returns the set pixels of sim.
func pixels(sim *panel.Sim) map[[2]int]bool {
	cfg := sim.Config()
	set := map[[2]int]bool{}
	for x := 0; x < cfg.Width; x++ {
		for y := 0; y < cfg.Height; y++ {
			if sim.Pixel(x, y) {
				set[[2]int{x, y}] = true
			}
		}
	}
	return set
}

func checkRect(t *testing.T, sim *panel.Sim, in func(x, y int) bool) {
	t.Helper()
	for x := 0; x < 128; x++ {
		for y := 0; y < 64; y++ {
			if got, want := sim.Pixel(x, y), in(x, y); got != want {
				t.Fatalf("pixel (%d, %d) = %t, want %t", x, y, got, want)
			}
		}
	}
}

func TestClear(t *testing.T) {
	d, sim := newTestDev(t, nil)
	d.ClearScreen(device.Black)
	checkRect(t, sim, func(x, y int) bool { return true })

	d.ClearPage(2, device.White)
	checkRect(t, sim, func(x, y int) bool { return y < 16 || y >= 24 })
}

func TestLines(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 int
		want           [][2]int
	}{
		{"horizontal", 5, 3, 2, 3, [][2]int{{2, 3}, {3, 3}, {4, 3}, {5, 3}}},
		{"vertical", 7, 10, 7, 7, [][2]int{{7, 7}, {7, 8}, {7, 9}, {7, 10}}},
		{"diagonal", 0, 0, 3, 3, [][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}}},
		{"anti-diagonal", 3, 0, 0, 3, [][2]int{{3, 0}, {2, 1}, {1, 2}, {0, 3}}},
		{"shallow", 0, 0, 4, 2, [][2]int{{0, 0}, {1, 1}, {2, 1}, {3, 2}, {4, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, sim := newTestDev(t, nil)
			d.DrawLine(tt.x1, tt.y1, tt.x2, tt.y2, device.Black)
			got := pixels(sim)
			if len(got) != len(tt.want) {
				t.Errorf("%d pixels set, want %d: %v", len(got), len(tt.want), got)
			}
			for _, p := range tt.want {
				if !got[p] {
					t.Errorf("pixel %v not set", p)
				}
			}
		})
	}
}

func TestRects(t *testing.T) {
	d, sim := newTestDev(t, nil)
	d.DrawRect(10, 5, 20, 30, device.Black)
	checkRect(t, sim, func(x, y int) bool {
		in := x >= 10 && x <= 30 && y >= 5 && y <= 35
		inner := x > 10 && x < 30 && y > 5 && y < 35
		return in && !inner
	})

	d.FillRect(10, 5, 20, 30, device.Black)
	checkRect(t, sim, func(x, y int) bool { return x >= 10 && x <= 30 && y >= 5 && y <= 35 })

	d.InvertRect(0, 3, 15, 10)
	checkRect(t, sim, func(x, y int) bool {
		filled := x >= 10 && x <= 30 && y >= 5 && y <= 35
		if x <= 15 && y >= 3 && y <= 13 {
			return !filled
		}
		return filled
	})
}

func TestInvertRectClips(t *testing.T) {
	d, sim := newTestDev(t, nil)
	d.InvertRect(120, 60, 20, 20)
	checkRect(t, sim, func(x, y int) bool { return x >= 120 && y >= 60 })
}

func TestRoundShapes(t *testing.T) {
	d, sim := newTestDev(t, nil)
	d.DrawCircle(30, 30, 10, device.Black)
	set := pixels(sim)
	for _, p := range [][2]int{{20, 30}, {40, 30}, {30, 20}, {30, 40}} {
		if !set[p] {
			t.Errorf("circle misses %v", p)
		}
	}
	for p := range set {
		dx, dy := p[0]-30, p[1]-30
		if r2 := dx*dx + dy*dy; r2 < 64 || r2 > 121 {
			t.Errorf("circle pixel %v at distance² %d", p, r2)
		}
	}

	d.ClearScreen(device.White)
	d.FillCircle(60, 32, 8, device.Black)
	set = pixels(sim)
	for p := range set {
		dx, dy := p[0]-60, p[1]-32
		if dx*dx+dy*dy > 81 {
			t.Errorf("filled circle pixel %v outside the radius", p)
		}
	}
	for dx := -5; dx <= 5; dx++ {
		for dy := -5; dy <= 5; dy++ {
			if !set[[2]int{60 + dx, 32 + dy}] {
				t.Errorf("filled circle misses (%d, %d)", 60+dx, 32+dy)
			}
		}
	}

	d.ClearScreen(device.White)
	d.DrawRoundRect(0, 0, 40, 20, 4, device.Black)
	set = pixels(sim)
	for _, p := range [][2]int{{20, 0}, {20, 20}, {0, 10}, {40, 10}} {
		if !set[p] {
			t.Errorf("round rect misses %v", p)
		}
	}
	for _, p := range [][2]int{{0, 0}, {40, 0}, {0, 20}, {40, 20}} {
		if set[p] {
			t.Errorf("round rect corner %v is set", p)
		}
	}
}

func TestDrawBitmap(t *testing.T) {
	bitmap := []byte{
		3, 10, // 3x10
		0x81, 0xFF, 0x00,
		0x02, 0x03, 0x01,
	}
	at := func(i, row int) bool {
		band, bit := row/8, row%8
		return bitmap[2+band*3+i]&(1<<uint(bit)) != 0
	}

	tests := []struct {
		name string
		x, y int
		c    device.Color
	}{
		{"aligned black", 4, 8, device.Black},
		{"unaligned black", 4, 5, device.Black},
		{"unaligned white", 62, 13, device.White},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, sim := newTestDev(t, nil)
			// Opposite color around the bitmap shows stray writes.
			d.ClearScreen(tt.c.Inverse())
			d.FillRect(tt.x-2, tt.y-2, 6, 13, tt.c)
			d.DrawBitmap(bitmap, tt.x, tt.y, tt.c)

			for x := tt.x - 2; x <= tt.x+4; x++ {
				for y := tt.y - 2; y <= tt.y+11; y++ {
					ink := true
					if x >= tt.x && x < tt.x+3 && y >= tt.y && y < tt.y+10 {
						ink = at(x-tt.x, y-tt.y)
					}
					want := ink == (tt.c == device.Black)
					if got := sim.Pixel(x, y); got != want {
						t.Errorf("pixel (%d, %d) = %t, want %t", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestDrawBitmapTooShort(t *testing.T) {
	d, sim := newTestDev(t, nil)
	before := sim.Writes()
	d.DrawBitmap([]byte{8, 8, 0xFF}, 0, 0, device.Black)
	d.DrawBitmap(nil, 0, 0, device.Black)
	if sim.Writes() != before {
		t.Error("short bitmap was drawn")
	}
}
