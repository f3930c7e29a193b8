package display

import (
	"context"
	"errors"
	"log"

	"github.com/theoremus-urban-solutions/mbta-board/arrivals"
	"github.com/theoremus-urban-solutions/mbta-board/epd"
)

// Panel is an e-paper controller; *epd.Device implements it.
type Panel interface {
	Init() error
	Clear(color byte) error
	Display(buf []byte) error
	Sleep() error
	Close() error
}

// OpenWaveshare opens the panel on the default HAT wiring
func OpenWaveshare() (Panel, error) {
	d, err := epd.Open(epd.DefaultPins)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// PanelSink pushes rendered boards to an e-paper panel.
// Write never fails: refresh errors are logged and the loop keeps going.
type PanelSink struct {
	open   func() (Panel, error)
	canvas *Canvas
	panel  Panel
}

// NewPanelSink uses open to claim the panel when the sink is opened
func NewPanelSink(open func() (Panel, error)) *PanelSink {
	return &PanelSink{open: open}
}

// Open claims and initializes the panel
func (s *PanelSink) Open() error {
	c, err := NewCanvas()
	if err != nil {
		return err
	}
	p, err := s.open()
	if err != nil {
		return err
	}
	if err := p.Init(); err != nil {
		_ = p.Close()
		return err
	}
	s.canvas, s.panel = c, p
	return nil
}

// Write renders the board, clears the panel and shows the new frame
func (s *PanelSink) Write(_ context.Context, b arrivals.Board) error {
	if s.panel == nil {
		return errors.New("panel sink not open")
	}
	img := s.canvas.Render(b)

	log.Printf("E-paper refresh: %s, %s", b.RouteName, b.StopName)
	if err := s.panel.Clear(epd.White); err != nil {
		log.Printf("E-paper clear failed: %v", err)
		return nil
	}
	if err := s.panel.Display(epd.Buffer(img)); err != nil {
		log.Printf("E-paper display failed: %v", err)
	}
	return nil
}

// Close blanks the panel, puts it to sleep and releases the hardware.
func (s *PanelSink) Close() error {
	if s.panel == nil {
		return nil
	}
	p := s.panel
	s.panel = nil

	log.Printf("E-paper clear")
	if err := p.Init(); err != nil {
		return errors.Join(err, p.Close())
	}
	if err := p.Clear(epd.White); err != nil {
		return errors.Join(err, p.Close())
	}
	log.Printf("E-paper sleep")
	return errors.Join(p.Sleep(), p.Close())
}
