// Package board assembles next-arrival boards for a (route, stop) pair.
package board

import (
	"context"
	"time"

	"github.com/theoremus-urban-solutions/mbta-board/arrivals"
)

// Source is an upstream that can describe routes, stops and predictions.
// mbta.Client and gtfsrt.Source implement it.
type Source interface {
	Route(ctx context.Context, id string) (arrivals.Route, error)
	Stop(ctx context.Context, id string) (arrivals.Stop, error)
	Predictions(ctx context.Context, routeID, stopID string) ([]arrivals.Prediction, error)
}

// Builder coordinates a Source and the countdown rules to produce boards
type Builder struct {
	Source Source
	// Now defaults to time.Now
	Now func() time.Time
}

// NewBuilder creates a builder reading from src
func NewBuilder(src Source) *Builder {
	return &Builder{Source: src, Now: time.Now}
}

// Build fetches route, stop and predictions and resolves them into a board.
// Any upstream failure aborts the build; there are no partial boards.
// Sources add the route or stop id to their errors.
func (b *Builder) Build(ctx context.Context, routeID, stopID string) (arrivals.Board, error) {
	route, err := b.Source.Route(ctx, routeID)
	if err != nil {
		return arrivals.Board{}, err
	}
	stop, err := b.Source.Stop(ctx, stopID)
	if err != nil {
		return arrivals.Board{}, err
	}
	predictions, err := b.Source.Predictions(ctx, routeID, stopID)
	if err != nil {
		return arrivals.Board{}, err
	}

	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	return arrivals.Board{
		RouteName: route.Name,
		StopName:  stop.Name,
		Arrivals:  arrivals.Resolve(predictions, now()),
	}, nil
}
