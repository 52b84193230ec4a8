package panel

import "testing"

func TestSimWriteAdvancesColumn(t *testing.T) {
	s, err := NewSim(KS0108(128, 64))
	if err != nil {
		t.Fatal(err)
	}
	cmds := s.Config().Commands
	if err := s.WriteCommand(1, cmds.PageCmd(2)); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteCommand(1, cmds.AddrCmd(62)); err != nil {
		t.Fatal(err)
	}
	for _, b := range []byte{0x81, 0x42, 0x24} {
		if err := s.WriteData(1, b); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		x    int
		want byte
	}{
		{126, 0x81},
		{127, 0x42},
		// The column counter wraps inside the chip.
		{64, 0x24},
	}
	for _, tt := range tests {
		if got := s.Byte(tt.x, 2); got != tt.want {
			t.Errorf("Byte(%d, 2) = 0x%02X, want 0x%02X", tt.x, got, tt.want)
		}
	}
	if !s.Pixel(126, 16) || !s.Pixel(126, 23) || s.Pixel(126, 17) {
		t.Error("pixels of 0x81 at column 126 page 2 not set as expected")
	}
	if s.Writes() != 3 || s.Commands() != 2 {
		t.Errorf("counters = %d writes %d commands, want 3 and 2", s.Writes(), s.Commands())
	}
}

func TestSimDummyRead(t *testing.T) {
	s, err := NewSim(SED1520(122, 32))
	if err != nil {
		t.Fatal(err)
	}
	cmds := s.Config().Commands
	_ = s.WriteCommand(1, cmds.PageCmd(1))
	_ = s.WriteCommand(1, cmds.AddrCmd(10))
	_ = s.WriteData(1, 0x5A)
	_ = s.WriteData(1, 0xA5)
	_ = s.WriteCommand(1, cmds.AddrCmd(10))

	if _, err := s.ReadData(1); err != nil {
		t.Fatal(err)
	}
	got, _ := s.ReadData(1)
	if got != 0x5A {
		t.Errorf("first real read = 0x%02X, want 0x5A", got)
	}
	got, _ = s.ReadData(1)
	if got != 0xA5 {
		t.Errorf("second real read = 0x%02X, want 0xA5", got)
	}
	// Chip 1 is the lower half of the panel.
	if s.Byte(10, 3) != 0x5A {
		t.Errorf("Byte(10, 3) = 0x%02X, want 0x5A", s.Byte(10, 3))
	}
}

func TestSimOnOff(t *testing.T) {
	s, err := NewSim(KS0108(128, 64))
	if err != nil {
		t.Fatal(err)
	}
	_ = s.WriteCommand(0, KS0108Commands.On)
	if !s.On(0) || s.On(1) {
		t.Errorf("On() = %v %v, want true false", s.On(0), s.On(1))
	}
	_ = s.WriteCommand(0, KS0108Commands.Off)
	if s.On(0) {
		t.Error("chip 0 still on after Off")
	}
}

func TestSimBadChip(t *testing.T) {
	s, err := NewSim(KS0108(128, 64))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.WriteData(2, 0); err == nil {
		t.Error("WriteData to chip 2 should fail")
	}
	if _, err := s.ReadData(-1); err == nil {
		t.Error("ReadData from chip -1 should fail")
	}
	if s.On(5) {
		t.Error("On(5) should be false")
	}
}

func TestNewSimInvalid(t *testing.T) {
	if _, err := NewSim(KS0108(100, 64)); err == nil {
		t.Error("NewSim should reject a partial chip")
	}
}
