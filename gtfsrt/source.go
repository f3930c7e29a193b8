package gtfsrt

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/theoremus-urban-solutions/mbta-board/arrivals"
	"github.com/theoremus-urban-solutions/mbta-board/gtfs"
	"github.com/theoremus-urban-solutions/mbta-board/utils"
)

var (
	ErrUnknownRoute = errors.New("route not in static gtfs")
	ErrUnknownStop  = errors.New("stop not in static gtfs")
	ErrUnknownTrip  = errors.New("no headsign for trip")
)

// Source serves boards from a static GTFS index and live GTFS-RT feeds.
type Source struct {
	Index               *gtfs.Index
	Client              *Client
	TripUpdatesURL      string
	VehiclePositionsURL string
	Debug               bool
}

// NewSource loads the static feed once and returns a ready Source.
func NewSource(ctx context.Context, client *Client, staticURL, tripUpdatesURL, vehiclePositionsURL string) (*Source, error) {
	data, err := client.Fetch(ctx, staticURL)
	if err != nil {
		return nil, fmt.Errorf("static gtfs: %w", err)
	}
	idx, err := gtfs.NewIndexFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("static gtfs: %w", err)
	}
	log.Printf("GTFS index loaded: routes=%d stops=%d trips=%d", idx.RouteCount(), idx.StopCount(), idx.TripCount())
	return &Source{
		Index:               idx,
		Client:              client,
		TripUpdatesURL:      tripUpdatesURL,
		VehiclePositionsURL: vehiclePositionsURL,
	}, nil
}

func (s *Source) Route(_ context.Context, id string) (arrivals.Route, error) {
	r, ok := s.Index.Route(id)
	if !ok {
		return arrivals.Route{}, fmt.Errorf("%w: %s", ErrUnknownRoute, id)
	}
	return r, nil
}

func (s *Source) Stop(_ context.Context, id string) (arrivals.Stop, error) {
	st, ok := s.Index.Stop(id)
	if !ok {
		return arrivals.Stop{}, fmt.Errorf("%w: %s", ErrUnknownStop, id)
	}
	return arrivals.Stop{ID: st.ID, Name: st.Name}, nil
}

// Predictions fetches fresh feeds and returns departures of routeID at
// stopID or any of its platforms, earliest first.
func (s *Source) Predictions(ctx context.Context, routeID, stopID string) ([]arrivals.Prediction, error) {
	tu, vp, err := s.Client.FetchAll(ctx, s.TripUpdatesURL, s.VehiclePositionsURL)
	if err != nil {
		return nil, err
	}
	feed, err := NewFeed(tu, vp)
	if err != nil {
		return nil, err
	}
	if s.Debug {
		log.Printf("GTFS-RT feed: timestamp=%s trips=%d", utils.Iso8601FromUnixSeconds(feed.Timestamp()), feed.TripCount())
	}
	return s.predictionsFromFeed(feed, routeID, stopID)
}

func (s *Source) predictionsFromFeed(feed *Feed, routeID, stopID string) ([]arrivals.Prediction, error) {
	events := feed.StopEvents(routeID, func(id string) bool {
		return s.Index.StopMatches(id, stopID)
	})
	out := make([]arrivals.Prediction, 0, len(events))
	for _, ev := range events {
		headsign, err := s.headsign(ev)
		if err != nil {
			return nil, err
		}
		out = append(out, feed.Prediction(ev, headsign))
	}
	return out, nil
}

func (s *Source) headsign(ev StopEvent) (string, error) {
	dir := ev.DirectionID
	if trip, ok := s.Index.Trip(ev.TripID); ok {
		if trip.Headsign != "" {
			return trip.Headsign, nil
		}
		dir = trip.DirectionID
	}
	// Added trips are missing from trips.txt
	if d := s.Index.DirectionDestination(ev.RouteID, dir); d != "" {
		return d, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownTrip, ev.TripID)
}
