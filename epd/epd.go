package epd

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// Panel geometry, portrait orientation
const (
	Width  = 122
	Height = 250

	lineWidth = (Width + 7) / 8
)

// spiFrequency is the panel clock, SPI mode 0, 8 bit words
const spiFrequency = 4 * physic.MegaHertz

// White fills the panel for Clear
const White byte = 0xFF

// Pins names the GPIO lines wired to the panel HAT
type Pins struct {
	Reset string
	DC    string
	Busy  string
	Power string
}

// DefaultPins is the Waveshare HAT wiring on a Raspberry Pi (BCM numbering)
var DefaultPins = Pins{Reset: "GPIO17", DC: "GPIO25", Busy: "GPIO24", Power: "GPIO18"}

// ErrPinNotFound is returned by Open when a configured GPIO does not exist
var ErrPinNotFound = errors.New("gpio pin not found")

// Pin is the subset of gpio.PinIO the driver uses
type Pin interface {
	Out(l gpio.Level) error
	In(pull gpio.Pull, edge gpio.Edge) error
	Read() gpio.Level
}

type transmitter interface {
	Tx(w, r []byte) error
}

// Device is an opened panel
type Device struct {
	port  spi.PortCloser
	conn  transmitter
	reset Pin
	dc    Pin
	busy  Pin
	power Pin

	// sleep is time.Sleep outside tests
	sleep func(time.Duration)
}

// Available reports whether the host has an SPI port the panel could use.
func Available() bool {
	if _, err := host.Init(); err != nil {
		return false
	}
	return len(spireg.All()) > 0
}

// Open initializes the host drivers, claims the GPIOs and connects the
// default SPI port at 4MHz, mode 0.
func Open(pins Pins) (*Device, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}

	lookup := func(name string) (gpio.PinIO, error) {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("%w: %s", ErrPinNotFound, name)
		}
		return p, nil
	}
	rst, err := lookup(pins.Reset)
	if err != nil {
		return nil, err
	}
	dc, err := lookup(pins.DC)
	if err != nil {
		return nil, err
	}
	busy, err := lookup(pins.Busy)
	if err != nil {
		return nil, err
	}
	pwr, err := lookup(pins.Power)
	if err != nil {
		return nil, err
	}

	port, err := spireg.Open("")
	if err != nil {
		return nil, fmt.Errorf("open spi: %w", err)
	}
	c, err := port.Connect(spiFrequency, spi.Mode0, 8)
	if err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("connect spi: %w", err)
	}

	d := newDevice(c, rst, dc, busy, pwr)
	d.port = port
	if err := d.powerOn(); err != nil {
		_ = port.Close()
		return nil, err
	}
	return d, nil
}

func newDevice(c transmitter, reset, dc, busy, power Pin) *Device {
	return &Device{conn: c, reset: reset, dc: dc, busy: busy, power: power, sleep: time.Sleep}
}

func (d *Device) powerOn() error {
	if err := d.busy.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
		return fmt.Errorf("busy pin: %w", err)
	}
	return d.power.Out(gpio.High)
}

func (d *Device) hardReset() error {
	steps := []struct {
		level gpio.Level
		wait  time.Duration
	}{
		{gpio.High, 20 * time.Millisecond},
		{gpio.Low, 2 * time.Millisecond},
		{gpio.High, 20 * time.Millisecond},
	}
	for _, s := range steps {
		if err := d.reset.Out(s.level); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		d.sleep(s.wait)
	}
	return nil
}

func (d *Device) command(c byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	return d.conn.Tx([]byte{c}, nil)
}

func (d *Device) data(b ...byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	return d.conn.Tx(b, nil)
}

func (d *Device) send(c byte, data ...byte) error {
	if err := d.command(c); err != nil {
		return fmt.Errorf("command 0x%02X: %w", c, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := d.data(data...); err != nil {
		return fmt.Errorf("data for 0x%02X: %w", c, err)
	}
	return nil
}

func (d *Device) waitIdle() {
	for d.busy.Read() == gpio.High {
		d.sleep(10 * time.Millisecond)
	}
}

func (d *Device) setWindow(xStart, yStart, xEnd, yEnd int) error {
	if err := d.send(0x44, byte(xStart>>3), byte(xEnd>>3)); err != nil {
		return err
	}
	return d.send(0x45, byte(yStart), byte(yStart>>8), byte(yEnd), byte(yEnd>>8))
}

func (d *Device) setCursor(x, y int) error {
	if err := d.send(0x4E, byte(x)); err != nil {
		return err
	}
	return d.send(0x4F, byte(y), byte(y>>8))
}

// Init wakes the controller and configures a full-refresh frame.
func (d *Device) Init() error {
	if err := d.hardReset(); err != nil {
		return err
	}
	d.waitIdle()
	if err := d.send(0x12); err != nil { // software reset
		return err
	}
	d.waitIdle()

	if err := d.send(0x01, 0xF9, 0x00, 0x00); err != nil { // driver output control
		return err
	}
	if err := d.send(0x11, 0x03); err != nil { // data entry mode
		return err
	}
	if err := d.setWindow(0, 0, Width-1, Height-1); err != nil {
		return err
	}
	if err := d.setCursor(0, 0); err != nil {
		return err
	}
	if err := d.send(0x3C, 0x05); err != nil { // border waveform
		return err
	}
	if err := d.send(0x21, 0x00, 0x80); err != nil { // display update control
		return err
	}
	if err := d.send(0x18, 0x80); err != nil { // internal temperature sensor
		return err
	}
	d.waitIdle()
	return nil
}

func (d *Device) turnOn() error {
	if err := d.send(0x22, 0xF7); err != nil {
		return err
	}
	if err := d.send(0x20); err != nil {
		return err
	}
	d.waitIdle()
	return nil
}

// Display writes a packed frame buffer and refreshes the panel.
func (d *Device) Display(buf []byte) error {
	if len(buf) != lineWidth*Height {
		return fmt.Errorf("frame buffer is %d bytes, want %d", len(buf), lineWidth*Height)
	}
	if err := d.send(0x24, buf...); err != nil {
		return err
	}
	return d.turnOn()
}

// Clear fills the whole panel with color.
func (d *Device) Clear(color byte) error {
	buf := make([]byte, lineWidth*Height)
	for i := range buf {
		buf[i] = color
	}
	return d.Display(buf)
}

// Sleep puts the controller into deep sleep; Init wakes it again.
func (d *Device) Sleep() error {
	if err := d.send(0x10, 0x01); err != nil {
		return err
	}
	d.sleep(2 * time.Second)
	return nil
}

// Close drives the control lines low, cuts panel power and releases SPI.
func (d *Device) Close() error {
	errs := []error{
		d.reset.Out(gpio.Low),
		d.dc.Out(gpio.Low),
		d.power.Out(gpio.Low),
	}
	if d.port != nil {
		errs = append(errs, d.port.Close())
	}
	return errors.Join(errs...)
}
