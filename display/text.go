package display

import (
	"context"
	"io"

	"github.com/theoremus-urban-solutions/mbta-board/arrivals"
	"github.com/theoremus-urban-solutions/mbta-board/formatter"
)

// TextSink prints boards as text
type TextSink struct {
	w io.Writer
}

// NewTextSink prints to w
func NewTextSink(w io.Writer) *TextSink { return &TextSink{w: w} }

// Open is a no-op
func (s *TextSink) Open() error { return nil }

// Write prints the route/stop line and up to three arrivals
func (s *TextSink) Write(_ context.Context, b arrivals.Board) error {
	_, err := io.WriteString(s.w, formatter.BuildText(b))
	return err
}

// Close is a no-op; the writer belongs to the caller
func (s *TextSink) Close() error { return nil }
