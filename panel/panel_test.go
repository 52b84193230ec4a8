package panel

import "testing"

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"ks0108 128x64", KS0108(128, 64), false},
		{"ks0108 192x64", KS0108(192, 64), false},
		{"ks0108 128x128", KS0108(128, 128), false},
		{"sed1520 122x32", SED1520(122, 32), false},
		{"zero width", KS0108(0, 64), true},
		{"negative height", KS0108(128, -8), true},
		{"partial chip", KS0108(100, 64), true},
		{"chip height not a multiple of 8", SED1520(122, 20), true},
		{"zero chip width", Config{Width: 64, Height: 64, ChipHeight: 64}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigChipMapping(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		x, y     int
		wantChip int
		wantCol  int
		wantPage int
	}{
		{"ks0108 origin", KS0108(128, 64), 0, 0, 0, 0, 0},
		{"ks0108 left edge of chip 1", KS0108(128, 64), 64, 0, 1, 0, 0},
		{"ks0108 bottom right", KS0108(128, 64), 127, 63, 1, 63, 7},
		{"ks0108 four chips", KS0108(128, 128), 70, 100, 3, 6, 4},
		{"sed1520 top", SED1520(122, 32), 121, 15, 0, 121, 1},
		{"sed1520 bottom", SED1520(122, 32), 5, 16, 1, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Chip(tt.x, tt.y); got != tt.wantChip {
				t.Errorf("Chip(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.wantChip)
			}
			if got := tt.cfg.Column(tt.x); got != tt.wantCol {
				t.Errorf("Column(%d) = %d, want %d", tt.x, got, tt.wantCol)
			}
			if got := tt.cfg.Page(tt.y); got != tt.wantPage {
				t.Errorf("Page(%d) = %d, want %d", tt.y, got, tt.wantPage)
			}
			x0, y0 := tt.cfg.Origin(tt.wantChip)
			if x0 > tt.x || y0 > tt.y || tt.x-x0 >= tt.cfg.ChipWidth || tt.y-y0 >= tt.cfg.ChipHeight {
				t.Errorf("Origin(%d) = (%d, %d) does not contain (%d, %d)", tt.wantChip, x0, y0, tt.x, tt.y)
			}
		})
	}
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name    string
		set     Commands
		cmd     byte
		wantOp  Op
		wantArg int
	}{
		{"ks0108 on", KS0108Commands, 0x3F, OpOn, 0},
		{"ks0108 off", KS0108Commands, 0x3E, OpOff, 0},
		{"ks0108 page", KS0108Commands, KS0108Commands.PageCmd(5), OpPage, 5},
		{"ks0108 addr", KS0108Commands, KS0108Commands.AddrCmd(63), OpAddr, 63},
		{"ks0108 addr masked", KS0108Commands, KS0108Commands.AddrCmd(64), OpAddr, 0},
		{"ks0108 start", KS0108Commands, KS0108Commands.StartCmd(12), OpStart, 12},
		{"sed1520 on", SED1520Commands, 0xAF, OpOn, 0},
		{"sed1520 off", SED1520Commands, 0xAE, OpOff, 0},
		{"sed1520 page", SED1520Commands, SED1520Commands.PageCmd(3), OpPage, 3},
		{"sed1520 addr", SED1520Commands, SED1520Commands.AddrCmd(121), OpAddr, 121},
		{"sed1520 start", SED1520Commands, SED1520Commands.StartCmd(0), OpStart, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, arg := tt.set.Decode(tt.cmd)
			if op != tt.wantOp || arg != tt.wantArg {
				t.Errorf("Decode(0x%02X) = (%d, %d), want (%d, %d)", tt.cmd, op, arg, tt.wantOp, tt.wantArg)
			}
		})
	}
}

func TestConfigString(t *testing.T) {
	want := "128x64 (2 chips of 64x64)"
	if got := KS0108(128, 64).String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
