// Package glcd drives monochrome graphic LCDs built from page-addressed
// controller chips such as the ks0108 and the sed1520.
//
// Panels larger than one controller are tiled from several chips, usually
// two 64x64 ks0108 side by side for a 128x64 display. Dev hides the tiling:
// pixels are addressed with global coordinates and text flows across chip
// boundaries. Dev implements the display.Drawer interface from periph.io.
//
// # Display Memory
//
// Each chip stores its pixels in pages: one byte holds 8 vertically stacked
// pixels, bit 0 on top, and a page is a row of such bytes. A set bit is a
// Black (dark) pixel unless the display is inverted. Writes at a y that is
// not a multiple of 8 straddle two pages; the pixels outside the written
// column are preserved.
//
// # Hardware Connection
//
// The chips share an 8 bit data bus and the D/I, R/W and E control lines.
// Each chip has its own select line:
//
//	Display Pin → System Pin
//	DB0..DB7    → GPIO (8 pins, bidirectional)
//	D/I (RS)    → GPIO
//	R/W         → GPIO
//	E           → GPIO
//	CS1, CS2    → GPIO (active level depends on the panel)
//	RST         → Optional: GPIO
//
// The bus can be driven from host GPIOs (panel.GPIOBus) or from a MCP23017
// I2C port expander (panel.MCP23017Bus), which needs only two host pins.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"github.com/flavioheleno/glcd"
//		"github.com/flavioheleno/glcd/device"
//		"github.com/flavioheleno/glcd/font"
//		"github.com/flavioheleno/glcd/panel"
//	)
//
//	func main() {
//		bus, _ := panel.OpenMCP23017(0x20, 1)
//		defer bus.Close()
//
//		dev, _ := glcd.New(bus, &glcd.Opts{Panel: panel.KS0108(128, 64)})
//		defer dev.Halt()
//
//		dev.SelectFont(font.System5x7, device.Black)
//		dev.Puts("Hello, world!\n")
//		dev.DrawRoundRect(0, 20, 127, 43, 5, device.Black)
//	}
//
// # Text Areas
//
// Text is written into areas, rectangles of the display that scroll on
// their own. Up to Opts.Areas areas can be defined; one is active at a time
// and keeps its font, color and cursor while another one is selected:
//
//	dev.DefinePreset(0, text.Top, text.Forward)
//	dev.DefinePreset(1, text.Bottom, text.Reverse)
//	dev.SelectArea(1)
//	dev.SelectFont(font.Fixed7x13(), device.White)
//	fmt.Fprintf(dev, "%d°C\n", temp)
//
// Areas scroll by the exact number of pixels a new line needs, so fonts of
// any height fill their area without gaps.
//
// # Fonts
//
// Fonts use the glcd binary format: a 6 byte header, a width table for
// proportional fonts, then the glyph columns. System5x7 is built in.
// Fixed7x13 converts the x/image basicfont face, and FromFace and
// FromTinyfont convert other faces.
//
// # Inverted Mode
//
//	dev.SetDisplayMode(true)
//
// flips the polarity of the display. The image is preserved: memory is
// inverted together with the flag.
//
// # Testing Without Hardware
//
// panel.Sim emulates the chips in memory, including the dummy read the
// controllers require after an address change. It is what the tests and
// the examples/glcd_window viewer run on.
package glcd
