// Package panel describes the geometry and controller protocol of monochrome
// graphic LCD panels built from ks0108 or sed1520 class controller chips.
//
// A panel is a grid of identical chips. Each chip owns a ChipWidth x
// ChipHeight pixel tile of display memory organized in pages: one byte holds
// eight vertically stacked pixels, bit 0 being the top one.
//
// The Bus interface is the only thing the upper layers need from the
// hardware. GPIOBus bit-bangs a parallel bus through periph.io pins,
// MCP23017Bus drives the same signals through an I²C port expander and Sim
// emulates the controllers in memory.
package panel

import (
	"errors"
	"fmt"

	"github.com/d2r2/go-logger"
)

var lg = logger.NewPackageLogger("panel", logger.InfoLevel)

// Commands is the instruction set of a controller chip.
type Commands struct {
	On        byte // Display ON
	Off       byte // Display OFF
	SetPage   byte // Page address base, low 3 bits carry the page
	SetAddr   byte // Column address base
	AddrMask  byte // Bits of SetAddr carrying the column
	StartLine byte // Display start line base
	StartMask byte // Bits of StartLine carrying the line
}

// KS0108Commands is the ks0108 (and compatibles) instruction set.
var KS0108Commands = Commands{
	On:        0x3F,
	Off:       0x3E,
	SetPage:   0xB8,
	SetAddr:   0x40,
	AddrMask:  0x3F,
	StartLine: 0xC0,
	StartMask: 0x3F,
}

// SED1520Commands is the sed1520 instruction set.
var SED1520Commands = Commands{
	On:        0xAF,
	Off:       0xAE,
	SetPage:   0xB8,
	SetAddr:   0x00,
	AddrMask:  0x7F,
	StartLine: 0xC0,
	StartMask: 0x1F,
}

// PageCmd returns the command selecting page.
func (c Commands) PageCmd(page int) byte {
	return c.SetPage | byte(page&0x07)
}

// AddrCmd returns the command selecting column col.
func (c Commands) AddrCmd(col int) byte {
	return c.SetAddr | (byte(col) & c.AddrMask)
}

// StartCmd returns the command setting the display start line.
func (c Commands) StartCmd(line int) byte {
	return c.StartLine | (byte(line) & c.StartMask)
}

// Op identifies a decoded command.
type Op int

const (
	OpUnknown Op = iota
	OpOn
	OpOff
	OpPage
	OpAddr
	OpStart
)

// Decode splits cmd into its operation and argument.
func (c Commands) Decode(cmd byte) (Op, int) {
	switch {
	case cmd == c.On:
		return OpOn, 0
	case cmd == c.Off:
		return OpOff, 0
	case cmd&^0x07 == c.SetPage:
		return OpPage, int(cmd & 0x07)
	case cmd&^c.StartMask == c.StartLine:
		return OpStart, int(cmd & c.StartMask)
	case cmd&^c.AddrMask == c.SetAddr:
		return OpAddr, int(cmd & c.AddrMask)
	}
	return OpUnknown, 0
}

// Config is the geometry of a panel.
type Config struct {
	Width      int // Panel width in pixels
	Height     int // Panel height in pixels
	ChipWidth  int // Columns per chip
	ChipHeight int // Rows per chip, a multiple of 8

	Commands Commands
}

// KS0108 returns the configuration of a w x h panel of 64x64 ks0108 chips.
func KS0108(w, h int) Config {
	return Config{
		Width:      w,
		Height:     h,
		ChipWidth:  64,
		ChipHeight: 64,
		Commands:   KS0108Commands,
	}
}

// SED1520 returns the configuration of a w x h sed1520 panel with two chips
// stacked vertically.
func SED1520(w, h int) Config {
	return Config{
		Width:      w,
		Height:     h,
		ChipWidth:  w,
		ChipHeight: h / 2,
		Commands:   SED1520Commands,
	}
}

// Validate checks that the geometry is usable.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New("panel: width and height must be positive")
	}
	if c.ChipWidth <= 0 || c.ChipHeight <= 0 {
		return errors.New("panel: chip width and height must be positive")
	}
	if c.ChipHeight%8 != 0 {
		return errors.New("panel: chip height must be a multiple of 8")
	}
	if c.Width%c.ChipWidth != 0 || c.Height%c.ChipHeight != 0 {
		return fmt.Errorf("panel: %dx%d is not a whole number of %dx%d chips", c.Width, c.Height, c.ChipWidth, c.ChipHeight)
	}
	return nil
}

// Chips returns the number of controller chips.
func (c Config) Chips() int {
	return (c.Width / c.ChipWidth) * (c.Height / c.ChipHeight)
}

// Chip returns the chip owning pixel (x, y).
func (c Config) Chip(x, y int) int {
	return (y/c.ChipHeight)*(c.Width/c.ChipWidth) + x/c.ChipWidth
}

// Column returns the chip column address of x.
func (c Config) Column(x int) int {
	return x % c.ChipWidth
}

// Page returns the chip page address of y.
func (c Config) Page(y int) int {
	return (y % c.ChipHeight) / 8
}

// Origin returns the panel coordinates of the top-left pixel of chip.
func (c Config) Origin(chip int) (x, y int) {
	perRow := c.Width / c.ChipWidth
	return (chip % perRow) * c.ChipWidth, (chip / perRow) * c.ChipHeight
}

// String returns a short description of the geometry.
func (c Config) String() string {
	return fmt.Sprintf("%dx%d (%d chips of %dx%d)", c.Width, c.Height, c.Chips(), c.ChipWidth, c.ChipHeight)
}

// Bus moves commands and data between the host and the controller chips.
//
// Every call blocks until the addressed chip reports ready. Data reads return
// the chip output latch, so the first read after an address change is a dummy
// read. Data reads and writes advance the chip column counter.
type Bus interface {
	WriteCommand(chip int, cmd byte) error
	WriteData(chip int, data byte) error
	ReadData(chip int) (byte, error)
}
