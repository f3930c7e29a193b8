package epd

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

type fakePin struct {
	levels []gpio.Level
	reads  []gpio.Level
	input  bool
}

func (p *fakePin) Out(l gpio.Level) error {
	p.levels = append(p.levels, l)
	return nil
}

func (p *fakePin) In(gpio.Pull, gpio.Edge) error {
	p.input = true
	return nil
}

// Read pops queued levels, then reports idle
func (p *fakePin) Read() gpio.Level {
	if len(p.reads) == 0 {
		return gpio.Low
	}
	l := p.reads[0]
	p.reads = p.reads[1:]
	return l
}

type frame struct {
	command byte
	data    []byte
}

// fakeBus decodes the D/C line into command frames
type fakeBus struct {
	dc     *fakePin
	frames []frame
	err    error
}

func (b *fakeBus) Tx(w, _ []byte) error {
	if b.err != nil {
		return b.err
	}
	if b.dc.levels[len(b.dc.levels)-1] == gpio.Low {
		b.frames = append(b.frames, frame{command: w[0]})
		return nil
	}
	last := &b.frames[len(b.frames)-1]
	last.data = append(last.data, w...)
	return nil
}

func (b *fakeBus) commands() []byte {
	var out []byte
	for _, f := range b.frames {
		out = append(out, f.command)
	}
	return out
}

func newTestDevice() (*Device, *fakeBus, *fakePin, *[]time.Duration) {
	rst, dc, busy, pwr := &fakePin{}, &fakePin{}, &fakePin{}, &fakePin{}
	bus := &fakeBus{dc: dc}
	d := newDevice(bus, rst, dc, busy, pwr)
	var waits []time.Duration
	d.sleep = func(w time.Duration) { waits = append(waits, w) }
	return d, bus, busy, &waits
}

func TestDevice_Init(t *testing.T) {
	d, bus, busy, waits := newTestDevice()
	busy.reads = []gpio.Level{gpio.High, gpio.High}

	require.NoError(t, d.Init())

	assert.Equal(t, []byte{0x12, 0x01, 0x11, 0x44, 0x45, 0x4E, 0x4F, 0x3C, 0x21, 0x18}, bus.commands())
	assert.Equal(t, []byte{0xF9, 0x00, 0x00}, bus.frames[1].data)
	assert.Equal(t, []byte{0x00, 0x0F}, bus.frames[3].data)
	assert.Equal(t, []byte{0x00, 0x00, 0xF9, 0x00}, bus.frames[4].data)
	assert.Equal(t, []gpio.Level{gpio.High, gpio.Low, gpio.High}, d.reset.(*fakePin).levels)
	// reset pulse plus two busy polls
	assert.Equal(t, []time.Duration{
		20 * time.Millisecond, 2 * time.Millisecond, 20 * time.Millisecond,
		10 * time.Millisecond, 10 * time.Millisecond,
	}, *waits)
}

func TestDevice_ClearAndDisplay(t *testing.T) {
	d, bus, _, _ := newTestDevice()

	require.NoError(t, d.Clear(White))
	assert.Equal(t, []byte{0x24, 0x22, 0x20}, bus.commands())
	assert.Len(t, bus.frames[0].data, 16*250)
	assert.Equal(t, White, bus.frames[0].data[0])
	assert.Equal(t, []byte{0xF7}, bus.frames[1].data)

	assert.Error(t, d.Display(make([]byte, 10)))
}

func TestDevice_SleepAndClose(t *testing.T) {
	d, bus, _, waits := newTestDevice()

	require.NoError(t, d.Sleep())
	assert.Equal(t, []frame{{command: 0x10, data: []byte{0x01}}}, bus.frames)
	assert.Equal(t, []time.Duration{2 * time.Second}, *waits)

	require.NoError(t, d.Close())
	assert.Equal(t, []gpio.Level{gpio.Low}, d.power.(*fakePin).levels)
	assert.Equal(t, []gpio.Level{gpio.Low}, d.reset.(*fakePin).levels)
}

func TestDevice_BusError(t *testing.T) {
	d, bus, _, _ := newTestDevice()
	bus.err = errors.New("spi gone")

	err := d.Clear(White)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command 0x24")
}

func TestSPIFrequency(t *testing.T) {
	assert.Equal(t, 4_000_000*physic.Hertz, physic.Frequency(spiFrequency))
}

func TestBuffer_Landscape(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 250, 122))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	img.SetGray(0, 0, color.Gray{})     // top-left
	img.SetGray(249, 121, color.Gray{}) // bottom-right

	buf := Buffer(img)
	require.Len(t, buf, 16*250)

	// (0,0) -> (0,249); (249,121) -> (121,0)
	assert.Equal(t, byte(0x7F), buf[249*16])
	assert.Equal(t, byte(0xFF&^(0x80>>1)), buf[121/8])

	black := 0
	for _, b := range buf {
		for bit := 0; bit < 8; bit++ {
			if b&(0x80>>bit) == 0 {
				black++
			}
		}
	}
	assert.Equal(t, 2, black)
}

func TestBuffer_Portrait(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 122, 250))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	img.SetGray(9, 1, color.Gray{Y: 100})

	buf := Buffer(img)
	assert.Equal(t, byte(0xFF&^(0x80>>1)), buf[1+16])
}
