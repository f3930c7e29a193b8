// Package poller drives the build/write/sleep cycle over configured boards.
package poller

import (
	"context"
	"log"
	"time"

	"github.com/theoremus-urban-solutions/mbta-board/arrivals"
	"github.com/theoremus-urban-solutions/mbta-board/config"
	"github.com/theoremus-urban-solutions/mbta-board/display"
)

// BoardBuilder builds one board; *board.Builder implements it
type BoardBuilder interface {
	Build(ctx context.Context, routeID, stopID string) (arrivals.Board, error)
}

// Loop shows each pair in turn, forever
type Loop struct {
	Builder  BoardBuilder
	Sink     display.Sink
	Pairs    []config.Pair
	Interval time.Duration
}

// Run cycles through the pairs until ctx is cancelled. Failures are logged
// and the pair is skipped; the interval is slept either way.
func (l *Loop) Run(ctx context.Context) error {
	if len(l.Pairs) == 0 {
		return nil
	}
	for i := 0; ; i = (i + 1) % len(l.Pairs) {
		l.Step(ctx, l.Pairs[i])
		if ctx.Err() != nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(l.Interval):
		}
	}
}

// RunOnce shows every pair a single time, with no sleep.
func (l *Loop) RunOnce(ctx context.Context) error {
	for _, p := range l.Pairs {
		if ctx.Err() != nil {
			return nil
		}
		l.Step(ctx, p)
	}
	return nil
}

// Step builds and writes one board, reporting whether it succeeded.
func (l *Loop) Step(ctx context.Context, p config.Pair) bool {
	b, err := l.Builder.Build(ctx, p.Route, p.Stop)
	if err != nil {
		log.Printf("Board %s@%s: build failed: %v", p.Route, p.Stop, err)
		return false
	}
	if err := l.Sink.Write(ctx, b); err != nil {
		log.Printf("Board %s@%s: write failed: %v", p.Route, p.Stop, err)
		return false
	}
	return true
}
