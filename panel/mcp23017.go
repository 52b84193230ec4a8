package panel

import (
	"fmt"

	i2c "github.com/d2r2/go-i2c"
)

// MCP23017 registers, IOCON.BANK = 0.
const (
	regIODIRA = 0x00
	regIODIRB = 0x01
	regGPIOA  = 0x12
	regGPIOB  = 0x13
	regOLATA  = 0x14
	regOLATB  = 0x15
)

// Port B control bits. Port A carries D0..D7.
const (
	pinDI  = 1 << 0
	pinRW  = 1 << 1
	pinEN  = 1 << 2
	pinCS1 = 1 << 3
	pinCS2 = 1 << 4
	pinRST = 1 << 5
)

// RegisterIO is the register access of an I²C device. *i2c.I2C satisfies it.
type RegisterIO interface {
	ReadRegU8(reg byte) (byte, error)
	WriteRegU8(reg byte, value byte) error
}

// MCP23017Bus is a Bus driving a ks0108 panel through an MCP23017 port
// expander: port A is the data bus and port B the control lines.
type MCP23017Bus struct {
	dev    RegisterIO
	closer func() error
	olatB  byte
	input  bool
}

// NewMCP23017Bus returns a bus on an already opened expander.
func NewMCP23017Bus(dev RegisterIO) (*MCP23017Bus, error) {
	// Port A powers up as input.
	b := &MCP23017Bus{dev: dev, olatB: pinRST, input: true}
	if err := dev.WriteRegU8(regIODIRB, 0x00); err != nil {
		return nil, fmt.Errorf("panel: mcp23017 port B direction: %w", err)
	}
	if err := dev.WriteRegU8(regOLATB, b.olatB); err != nil {
		return nil, fmt.Errorf("panel: mcp23017 port B: %w", err)
	}
	if err := b.dataDir(false); err != nil {
		return nil, err
	}
	return b, nil
}

// OpenMCP23017 opens the expander at addr on I²C bus number bus.
func OpenMCP23017(addr uint8, bus int) (*MCP23017Bus, error) {
	dev, err := i2c.NewI2C(addr, bus)
	if err != nil {
		return nil, fmt.Errorf("panel: failed to open i2c-%d 0x%02X: %w", bus, addr, err)
	}
	b, err := NewMCP23017Bus(dev)
	if err != nil {
		dev.Close()
		return nil, err
	}
	b.closer = dev.Close
	lg.Infof("mcp23017 bus on i2c-%d address 0x%02X", bus, addr)
	return b, nil
}

// Close releases the I²C device when the bus opened it.
func (b *MCP23017Bus) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer()
}

// Reset pulses the panel reset line.
func (b *MCP23017Bus) Reset() error {
	if err := b.control(b.olatB &^ pinRST); err != nil {
		return err
	}
	return b.control(b.olatB | pinRST)
}

// WriteCommand implements Bus.
func (b *MCP23017Bus) WriteCommand(chip int, cmd byte) error {
	return b.write(chip, 0, cmd)
}

// WriteData implements Bus.
func (b *MCP23017Bus) WriteData(chip int, data byte) error {
	return b.write(chip, pinDI, data)
}

// ReadData implements Bus.
func (b *MCP23017Bus) ReadData(chip int) (byte, error) {
	cs, err := chipBits(chip)
	if err != nil {
		return 0, err
	}
	if err := b.waitReady(cs); err != nil {
		return 0, err
	}
	lines := cs | pinDI | pinRW | pinRST
	if err := b.control(lines); err != nil {
		return 0, err
	}
	if err := b.control(lines | pinEN); err != nil {
		return 0, err
	}
	v, err := b.dev.ReadRegU8(regGPIOA)
	if err != nil {
		return 0, fmt.Errorf("panel: mcp23017 read: %w", err)
	}
	return v, b.control(lines)
}

func (b *MCP23017Bus) write(chip int, di, v byte) error {
	cs, err := chipBits(chip)
	if err != nil {
		return err
	}
	if err := b.waitReady(cs); err != nil {
		return err
	}
	if err := b.dataDir(false); err != nil {
		return err
	}
	if err := b.dev.WriteRegU8(regOLATA, v); err != nil {
		return fmt.Errorf("panel: mcp23017 write: %w", err)
	}
	lines := cs | di | pinRST
	if err := b.control(lines | pinEN); err != nil {
		return err
	}
	return b.control(lines)
}

// waitReady polls the busy flag of the selected chip. The I²C round trip is
// slower than any controller instruction, so in practice one read suffices.
func (b *MCP23017Bus) waitReady(cs byte) error {
	if err := b.dataDir(true); err != nil {
		return err
	}
	lines := cs | pinRW | pinRST
	if err := b.control(lines | pinEN); err != nil {
		return err
	}
	for {
		st, err := b.dev.ReadRegU8(regGPIOA)
		if err != nil {
			return fmt.Errorf("panel: mcp23017 status: %w", err)
		}
		if st&0x80 == 0 {
			break
		}
	}
	return b.control(lines)
}

func (b *MCP23017Bus) control(v byte) error {
	if err := b.dev.WriteRegU8(regOLATB, v); err != nil {
		return fmt.Errorf("panel: mcp23017 control: %w", err)
	}
	b.olatB = v
	return nil
}

func (b *MCP23017Bus) dataDir(input bool) error {
	if b.input == input {
		return nil
	}
	dir := byte(0x00)
	if input {
		dir = 0xFF
	}
	if err := b.dev.WriteRegU8(regIODIRA, dir); err != nil {
		return fmt.Errorf("panel: mcp23017 port A direction: %w", err)
	}
	b.input = input
	return nil
}

// chipBits maps a ks0108 chip index to its CS1/CS2 lines.
func chipBits(chip int) (byte, error) {
	switch chip {
	case 0:
		return pinCS1, nil
	case 1:
		return pinCS2, nil
	}
	return 0, fmt.Errorf("panel: mcp23017 bus has no chip %d", chip)
}
