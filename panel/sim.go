package panel

import (
	"errors"
	"image"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// simChip is the register state of one emulated controller.
type simChip struct {
	on    bool
	page  int
	col   int
	start int
	latch byte
}

// Sim is an in-memory Bus emulating every chip of a panel.
//
// Display memory is kept in an image1bit.VerticalLSB covering the whole
// panel, which uses the same page layout as the controllers.
type Sim struct {
	cfg   Config
	img   *image1bit.VerticalLSB
	chips []simChip

	commands, writes, reads int
}

// NewSim returns a simulated panel with cleared memory.
func NewSim(cfg Config) (*Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Sim{
		cfg:   cfg,
		img:   image1bit.NewVerticalLSB(image.Rect(0, 0, cfg.Width, cfg.Height)),
		chips: make([]simChip, cfg.Chips()),
	}, nil
}

func (s *Sim) chip(chip int) (*simChip, error) {
	if chip < 0 || chip >= len(s.chips) {
		return nil, errors.New("panel: no such chip")
	}
	return &s.chips[chip], nil
}

// WriteCommand implements Bus.
func (s *Sim) WriteCommand(chip int, cmd byte) error {
	c, err := s.chip(chip)
	if err != nil {
		return err
	}
	s.commands++
	op, arg := s.cfg.Commands.Decode(cmd)
	switch op {
	case OpOn:
		c.on = true
	case OpOff:
		c.on = false
	case OpPage:
		c.page = arg % (s.cfg.ChipHeight / 8)
	case OpAddr:
		c.col = arg % s.cfg.ChipWidth
	case OpStart:
		c.start = arg
	default:
		lg.Debugf("sim: chip %d ignores command 0x%02X", chip, cmd)
	}
	return nil
}

// WriteData implements Bus.
func (s *Sim) WriteData(chip int, data byte) error {
	c, err := s.chip(chip)
	if err != nil {
		return err
	}
	s.writes++
	x0, y0 := s.cfg.Origin(chip)
	x, y := x0+c.col, y0+c.page*8
	for bit := 0; bit < 8; bit++ {
		s.img.SetBit(x, y+bit, image1bit.Bit(data&(1<<bit) != 0))
	}
	c.col = (c.col + 1) % s.cfg.ChipWidth
	return nil
}

// ReadData implements Bus. It returns the latch loaded by the previous read
// and reloads it from the current column.
func (s *Sim) ReadData(chip int) (byte, error) {
	c, err := s.chip(chip)
	if err != nil {
		return 0, err
	}
	s.reads++
	out := c.latch
	x0, y0 := s.cfg.Origin(chip)
	c.latch = s.byteAt(x0+c.col, y0+c.page*8)
	c.col = (c.col + 1) % s.cfg.ChipWidth
	return out, nil
}

func (s *Sim) byteAt(x, y int) byte {
	var b byte
	for bit := 0; bit < 8; bit++ {
		if s.img.BitAt(x, y+bit) {
			b |= 1 << bit
		}
	}
	return b
}

// Config returns the emulated geometry.
func (s *Sim) Config() Config {
	return s.cfg
}

// Image returns the emulated display memory.
func (s *Sim) Image() *image1bit.VerticalLSB {
	return s.img
}

// Byte returns the memory byte at column x of panel page page.
func (s *Sim) Byte(x, page int) byte {
	return s.byteAt(x, page*8)
}

// Pixel reports whether pixel (x, y) is set in memory.
func (s *Sim) Pixel(x, y int) bool {
	return bool(s.img.BitAt(x, y))
}

// On reports whether chip has been switched on.
func (s *Sim) On(chip int) bool {
	c, err := s.chip(chip)
	return err == nil && c.on
}

// Commands returns the number of commands received.
func (s *Sim) Commands() int { return s.commands }

// Writes returns the number of data bytes written.
func (s *Sim) Writes() int { return s.writes }

// Reads returns the number of data reads, dummy reads included.
func (s *Sim) Reads() int { return s.reads }
