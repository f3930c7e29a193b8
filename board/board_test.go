package board

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/mbta-board/arrivals"
)

var now = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

type fakeSource struct {
	route       arrivals.Route
	stop        arrivals.Stop
	predictions []arrivals.Prediction

	routeErr, stopErr, predErr error
	calls                      []string
}

func (f *fakeSource) Route(_ context.Context, id string) (arrivals.Route, error) {
	f.calls = append(f.calls, "route:"+id)
	return f.route, f.routeErr
}

func (f *fakeSource) Stop(_ context.Context, id string) (arrivals.Stop, error) {
	f.calls = append(f.calls, "stop:"+id)
	return f.stop, f.stopErr
}

func (f *fakeSource) Predictions(_ context.Context, routeID, stopID string) ([]arrivals.Prediction, error) {
	f.calls = append(f.calls, "predictions:"+routeID+"@"+stopID)
	return f.predictions, f.predErr
}

func at(d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

func TestBuilder_Build(t *testing.T) {
	src := &fakeSource{
		route: arrivals.Route{ID: "Red", Name: "Red Line"},
		stop:  arrivals.Stop{ID: "place-cntsq", Name: "Central"},
		predictions: []arrivals.Prediction{
			{Headsign: "Alewife", StopSequence: 60, DepartureTime: at(80 * time.Second),
				Vehicle: &arrivals.Vehicle{Status: arrivals.StatusStoppedAt, StopSequence: 60}},
			{Headsign: "Braintree", DepartureTime: at(-2 * time.Minute)},
			{Headsign: "Ashmont", DepartureTime: at(7 * time.Minute)},
			{Headsign: "Alewife"},
		},
	}
	b := &Builder{Source: src, Now: func() time.Time { return now }}

	got, err := b.Build(context.Background(), "Red", "place-cntsq")
	require.NoError(t, err)

	assert.Equal(t, arrivals.Board{
		RouteName: "Red Line",
		StopName:  "Central",
		Arrivals: []arrivals.Arrival{
			{Headsign: "Alewife", Countdown: arrivals.Boarding},
			{Headsign: "Ashmont", Countdown: "7 min"},
		},
	}, got)
	assert.Equal(t, []string{"route:Red", "stop:place-cntsq", "predictions:Red@place-cntsq"}, src.calls)
}

func TestBuilder_UpstreamFailureAborts(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name string
		src  *fakeSource
	}{
		{name: "route", src: &fakeSource{routeErr: boom}},
		{name: "stop", src: &fakeSource{stopErr: boom}},
		{name: "predictions", src: &fakeSource{predErr: boom}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewBuilder(tt.src).Build(context.Background(), "Red", "place-cntsq")
			assert.ErrorIs(t, err, boom)
			assert.Equal(t, arrivals.Board{}, got)
		})
	}
}

func TestBuilder_EmptyPredictions(t *testing.T) {
	src := &fakeSource{route: arrivals.Route{Name: "83"}, stop: arrivals.Stop{Name: "Mass Ave @ Pearl St"}}
	got, err := NewBuilder(src).Build(context.Background(), "83", "2453")
	require.NoError(t, err)
	assert.Equal(t, "83", got.RouteName)
	assert.Empty(t, got.Arrivals)
}
