package panel

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Timing holds the bus timing of a panel.
type Timing struct {
	AS  time.Duration // Address setup: control lines to E high
	DDR time.Duration // Data delay: E high to valid read data
	WH  time.Duration // E high pulse width
	WL  time.Duration // E low pulse width
}

// KS0108Timing is the timing of common ks0108 modules.
var KS0108Timing = Timing{AS: 140 * time.Nanosecond, DDR: 320 * time.Nanosecond, WH: 450 * time.Nanosecond, WL: 450 * time.Nanosecond}

// SED1520Timing is the timing of common sed1520 modules.
var SED1520Timing = Timing{AS: 20 * time.Nanosecond, DDR: 320 * time.Nanosecond, WH: 450 * time.Nanosecond, WL: 450 * time.Nanosecond}

// GPIOOpts is the pin assignment of a parallel bus.
type GPIOOpts struct {
	Data [8]gpio.PinIO // D0..D7
	DI   gpio.PinOut   // Data/Instruction (A0)
	RW   gpio.PinOut   // Read/Write

	// EN holds a single enable line shared by all chips (ks0108), or one
	// enable line per chip (sed1520 E1, E2).
	EN []gpio.PinOut

	// CS holds the chip select lines. ChipSelect[chip] is the bitmask of CS
	// lines driven high to select chip; when nil chip i drives line i.
	CS         []gpio.PinOut
	ChipSelect []uint8

	RST gpio.PinOut // Reset (optional)

	Timing Timing // Zero means KS0108Timing
}

// GPIOBus is a Bus bit-banged over GPIO pins.
type GPIOBus struct {
	opts    GPIOOpts
	dataOut bool
}

// NewGPIOBus returns a bus on the given pins and drives the control lines
// to their idle levels.
func NewGPIOBus(opts *GPIOOpts) (*GPIOBus, error) {
	if opts == nil {
		return nil, errors.New("panel: missing pin assignment")
	}
	for i, p := range opts.Data {
		if p == nil {
			return nil, fmt.Errorf("panel: data pin D%d not set", i)
		}
	}
	if opts.DI == nil || opts.RW == nil || len(opts.EN) == 0 {
		return nil, errors.New("panel: DI, RW and EN pins are required")
	}
	b := &GPIOBus{opts: *opts}
	if b.opts.Timing == (Timing{}) {
		b.opts.Timing = KS0108Timing
	}
	for _, en := range b.opts.EN {
		if err := en.Out(gpio.Low); err != nil {
			return nil, fmt.Errorf("panel: failed to pull EN low: %w", err)
		}
	}
	for _, cs := range b.opts.CS {
		if err := cs.Out(gpio.Low); err != nil {
			return nil, fmt.Errorf("panel: failed to pull CS low: %w", err)
		}
	}
	if err := b.opts.DI.Out(gpio.Low); err != nil {
		return nil, err
	}
	if err := b.opts.RW.Out(gpio.Low); err != nil {
		return nil, err
	}
	lg.Debugf("gpio bus ready: %d enable lines, %d chip selects", len(b.opts.EN), len(b.opts.CS))
	return b, nil
}

// Reset pulses the reset line, if there is one.
func (b *GPIOBus) Reset() error {
	if b.opts.RST == nil {
		return nil
	}
	if err := b.opts.RST.Out(gpio.Low); err != nil {
		return fmt.Errorf("panel: failed to pull RST low: %w", err)
	}
	time.Sleep(2 * time.Millisecond)
	if err := b.opts.RST.Out(gpio.High); err != nil {
		return fmt.Errorf("panel: failed to pull RST high: %w", err)
	}
	time.Sleep(5 * time.Millisecond)
	return nil
}

// WriteCommand implements Bus.
func (b *GPIOBus) WriteCommand(chip int, cmd byte) error {
	return b.write(chip, gpio.Low, cmd)
}

// WriteData implements Bus.
func (b *GPIOBus) WriteData(chip int, data byte) error {
	return b.write(chip, gpio.High, data)
}

// ReadData implements Bus.
func (b *GPIOBus) ReadData(chip int) (byte, error) {
	if err := b.waitReady(chip); err != nil {
		return 0, err
	}
	if err := b.control(gpio.High, gpio.High); err != nil {
		return 0, err
	}
	time.Sleep(b.opts.Timing.AS)
	if err := b.strobe(chip, gpio.High); err != nil {
		return 0, err
	}
	time.Sleep(b.opts.Timing.DDR)
	data := b.readPins()
	if err := b.strobe(chip, gpio.Low); err != nil {
		return 0, err
	}
	return data, nil
}

func (b *GPIOBus) write(chip int, di gpio.Level, v byte) error {
	if err := b.waitReady(chip); err != nil {
		return err
	}
	if err := b.control(di, gpio.Low); err != nil {
		return err
	}
	if err := b.drivePins(v); err != nil {
		return err
	}
	time.Sleep(b.opts.Timing.AS)
	if err := b.strobe(chip, gpio.High); err != nil {
		return err
	}
	time.Sleep(b.opts.Timing.WH)
	if err := b.strobe(chip, gpio.Low); err != nil {
		return err
	}
	time.Sleep(b.opts.Timing.WL)
	return nil
}

// waitReady selects chip and polls its busy flag (D7) until it clears.
// There is no timeout: a stuck module hangs the caller.
func (b *GPIOBus) waitReady(chip int) error {
	if err := b.selectChip(chip); err != nil {
		return err
	}
	if err := b.releasePins(); err != nil {
		return err
	}
	if err := b.control(gpio.Low, gpio.High); err != nil {
		return err
	}
	time.Sleep(b.opts.Timing.AS)
	if err := b.strobe(chip, gpio.High); err != nil {
		return err
	}
	time.Sleep(b.opts.Timing.DDR)
	for b.opts.Data[7].Read() == gpio.High {
	}
	return b.strobe(chip, gpio.Low)
}

func (b *GPIOBus) selectChip(chip int) error {
	mask := uint8(1) << uint(chip)
	if chip < len(b.opts.ChipSelect) {
		mask = b.opts.ChipSelect[chip]
	}
	for i, cs := range b.opts.CS {
		l := gpio.Low
		if mask&(1<<uint(i)) != 0 {
			l = gpio.High
		}
		if err := cs.Out(l); err != nil {
			return fmt.Errorf("panel: chip select %d: %w", i, err)
		}
	}
	return nil
}

func (b *GPIOBus) control(di, rw gpio.Level) error {
	if err := b.opts.DI.Out(di); err != nil {
		return fmt.Errorf("panel: DI: %w", err)
	}
	if err := b.opts.RW.Out(rw); err != nil {
		return fmt.Errorf("panel: RW: %w", err)
	}
	return nil
}

func (b *GPIOBus) strobe(chip int, l gpio.Level) error {
	en := b.opts.EN[0]
	if len(b.opts.EN) > 1 && chip < len(b.opts.EN) {
		en = b.opts.EN[chip]
	}
	if err := en.Out(l); err != nil {
		return fmt.Errorf("panel: EN: %w", err)
	}
	return nil
}

func (b *GPIOBus) drivePins(v byte) error {
	for i, p := range b.opts.Data {
		if err := p.Out(gpio.Level(v&(1<<uint(i)) != 0)); err != nil {
			return fmt.Errorf("panel: D%d: %w", i, err)
		}
	}
	b.dataOut = true
	return nil
}

func (b *GPIOBus) releasePins() error {
	if !b.dataOut {
		return nil
	}
	for i, p := range b.opts.Data {
		if err := p.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
			return fmt.Errorf("panel: D%d: %w", i, err)
		}
	}
	b.dataOut = false
	return nil
}

func (b *GPIOBus) readPins() byte {
	var v byte
	for i, p := range b.opts.Data {
		if p.Read() == gpio.High {
			v |= 1 << uint(i)
		}
	}
	return v
}
