package display

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/theoremus-urban-solutions/mbta-board/arrivals"
)

// Canvas geometry, landscape
const (
	CanvasWidth  = 250
	CanvasHeight = 122
	padding      = 5
)

// Canvas lays boards out on a monochrome bitmap
type Canvas struct {
	faces faces
	img   *image.Gray
}

// NewCanvas loads the fonts and allocates a white canvas
func NewCanvas() (*Canvas, error) {
	f, err := loadFaces()
	if err != nil {
		return nil, err
	}
	c := &Canvas{faces: f, img: image.NewGray(image.Rect(0, 0, CanvasWidth, CanvasHeight))}
	c.reset()
	return c, nil
}

func (c *Canvas) reset() {
	draw.Draw(c.img, c.img.Bounds(), image.White, image.Point{}, draw.Src)
}

// text draws s with its top-left corner at (x, y)
func (c *Canvas) text(face font.Face, x, y int, s string) {
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.Black,
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

func textSize(face font.Face, s string) (int, int) {
	m := face.Metrics()
	return font.MeasureString(face, s).Ceil(), (m.Ascent + m.Descent).Ceil()
}

// Render draws the board: route and stop at the top, up to two arrivals
// stacked from the bottom with the countdown right-aligned.
// The returned image is reused by the next Render.
func (c *Canvas) Render(b arrivals.Board) *image.Gray {
	c.reset()
	c.text(c.faces.large, padding, padding, b.RouteName)
	c.text(c.faces.small, padding, padding+20, b.StopName)

	head := b.Head(2)
	for i, a := range head {
		w, h := textSize(c.faces.large, a.Countdown)
		// line 0 sits above line 1
		y := CanvasHeight - h - 2*padding
		if i == 0 {
			y = CanvasHeight - 2*h - 4*padding
		}
		c.text(c.faces.large, padding, y, a.Headsign)
		c.text(c.faces.large, CanvasWidth-w-padding, y, a.Countdown)
	}
	return c.img
}

// BitmapSink renders boards and saves each as a PNG preview
type BitmapSink struct {
	Path   string
	canvas *Canvas
}

// NewBitmapSink saves previews to path
func NewBitmapSink(path string) *BitmapSink { return &BitmapSink{Path: path} }

// Open loads the fonts and allocates the canvas
func (s *BitmapSink) Open() error {
	c, err := NewCanvas()
	if err != nil {
		return err
	}
	s.canvas = c
	return nil
}

// Write renders the board and replaces the PNG at Path
func (s *BitmapSink) Write(_ context.Context, b arrivals.Board) error {
	if s.canvas == nil {
		return errors.New("bitmap sink not open")
	}
	return savePNG(s.Path, s.canvas.Render(b))
}

// Close drops the canvas
func (s *BitmapSink) Close() error {
	s.canvas = nil
	return nil
}

// savePNG writes a temp file next to path and renames it over path
func savePNG(path string, img image.Image) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".board-*.png")
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	if err := png.Encode(tmp, img); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("encode preview: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
