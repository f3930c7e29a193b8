package gtfsrt

import (
	"fmt"
	"sort"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/mbta-board/arrivals"
	"github.com/theoremus-urban-solutions/mbta-board/utils"
)

// StopEvent is one usable stop-time update of a monitored trip
type StopEvent struct {
	TripID       string
	RouteID      string
	DirectionID  int
	StopID       string
	StopSequence int
	Departure    int64
	VehicleID    string
}

// Feed stores one snapshot of GTFS-Realtime data in memory for fast lookups
type Feed struct {
	headerTimestamp int64

	tripRoute     map[string]string           // trip_id -> route_id
	tripCancelled map[string]bool             // trip_id -> CANCELED
	tripVehicle   map[string]string           // trip_id -> vehicle id
	stopEvents    map[string][]StopEvent      // trip_id -> usable stop-time updates
	vehicles      map[string]arrivals.Vehicle // vehicle id -> status
}

// NewFeed parses raw TripUpdates and VehiclePositions protobuf bytes.
// Either may be nil.
func NewFeed(tripUpdates, vehiclePositions []byte) (*Feed, error) {
	w := &Feed{
		tripRoute:     map[string]string{},
		tripCancelled: map[string]bool{},
		tripVehicle:   map[string]string{},
		stopEvents:    map[string][]StopEvent{},
		vehicles:      map[string]arrivals.Vehicle{},
	}
	if tripUpdates != nil {
		fm, err := decode(tripUpdates)
		if err != nil {
			return nil, fmt.Errorf("trip updates: %w", err)
		}
		w.observeHeader(fm)
		for _, e := range fm.GetEntity() {
			if e.GetIsDeleted() || e.GetTripUpdate() == nil {
				continue
			}
			w.addTripUpdate(e.GetTripUpdate())
		}
	}
	if vehiclePositions != nil {
		fm, err := decode(vehiclePositions)
		if err != nil {
			return nil, fmt.Errorf("vehicle positions: %w", err)
		}
		w.observeHeader(fm)
		for _, e := range fm.GetEntity() {
			if e.GetIsDeleted() || e.GetVehicle() == nil {
				continue
			}
			w.addVehicle(e.GetVehicle())
		}
	}
	return w, nil
}

func decode(b []byte) (*gtfsrtpb.FeedMessage, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(b, &fm); err != nil {
		return nil, err
	}
	return &fm, nil
}

func (w *Feed) observeHeader(fm *gtfsrtpb.FeedMessage) {
	if ts := int64(fm.GetHeader().GetTimestamp()); ts > w.headerTimestamp {
		w.headerTimestamp = ts
	}
}

func (w *Feed) addTripUpdate(tu *gtfsrtpb.TripUpdate) {
	trip := tu.GetTrip()
	tripID := trip.GetTripId()
	if tripID == "" {
		return
	}
	w.tripRoute[tripID] = trip.GetRouteId()
	if trip.GetScheduleRelationship() == gtfsrtpb.TripDescriptor_CANCELED {
		w.tripCancelled[tripID] = true
	}
	if id := tu.GetVehicle().GetId(); id != "" {
		w.tripVehicle[tripID] = id
	}

	for _, stu := range tu.GetStopTimeUpdate() {
		switch stu.GetScheduleRelationship() {
		case gtfsrtpb.TripUpdate_StopTimeUpdate_SKIPPED, gtfsrtpb.TripUpdate_StopTimeUpdate_NO_DATA:
			continue
		}
		dep := stu.GetDeparture().GetTime()
		if stu.GetStopId() == "" || dep <= 0 {
			continue
		}
		w.stopEvents[tripID] = append(w.stopEvents[tripID], StopEvent{
			TripID:       tripID,
			RouteID:      trip.GetRouteId(),
			DirectionID:  int(trip.GetDirectionId()),
			StopID:       stu.GetStopId(),
			StopSequence: int(stu.GetStopSequence()),
			Departure:    dep,
		})
	}
}

func (w *Feed) addVehicle(vp *gtfsrtpb.VehiclePosition) {
	id := vp.GetVehicle().GetId()
	if id == "" {
		return
	}
	v := arrivals.Vehicle{ID: id, Status: vp.GetCurrentStatus().String(), StopSequence: -1}
	if vp.CurrentStopSequence != nil {
		v.StopSequence = int(vp.GetCurrentStopSequence())
	}
	w.vehicles[id] = v

	// Only set the trip's vehicle from positions if trip updates did not
	if tripID := vp.GetTrip().GetTripId(); tripID != "" {
		if _, exists := w.tripVehicle[tripID]; !exists {
			w.tripVehicle[tripID] = id
		}
	}
}

// StopEvents returns the live stop-time updates of routeID at stops accepted
// by match, ordered by departure. Cancelled trips are left out.
func (w *Feed) StopEvents(routeID string, match func(stopID string) bool) []StopEvent {
	var out []StopEvent
	for tripID, events := range w.stopEvents {
		if w.tripCancelled[tripID] || w.tripRoute[tripID] != routeID {
			continue
		}
		for _, ev := range events {
			if !match(ev.StopID) {
				continue
			}
			ev.VehicleID = w.tripVehicle[tripID]
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Departure != out[j].Departure {
			return out[i].Departure < out[j].Departure
		}
		return out[i].TripID < out[j].TripID
	})
	return out
}

// Vehicle returns the live state of a vehicle, if the positions feed has it.
func (w *Feed) Vehicle(id string) (*arrivals.Vehicle, bool) {
	v, ok := w.vehicles[id]
	if !ok {
		return nil, false
	}
	return &v, true
}

// Prediction converts a stop event; headsign resolution is up to the caller.
func (w *Feed) Prediction(ev StopEvent, headsign string) arrivals.Prediction {
	p := arrivals.Prediction{
		StopSequence:  ev.StopSequence,
		DepartureTime: utils.TimeFromUnixSeconds(ev.Departure),
		Headsign:      headsign,
	}
	if ev.VehicleID != "" {
		if v, ok := w.Vehicle(ev.VehicleID); ok {
			p.Vehicle = v
		}
	}
	return p
}

// Timestamp is the newest header timestamp seen across both feeds.
func (w *Feed) Timestamp() int64 { return w.headerTimestamp }

func (w *Feed) TripCount() int { return len(w.tripRoute) }
