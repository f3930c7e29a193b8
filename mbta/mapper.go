package mbta

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/theoremus-urban-solutions/mbta-board/arrivals"
	"github.com/theoremus-urban-solutions/mbta-board/utils"
)

var (
	// ErrUnexpectedCount is returned when a by-id lookup does not return exactly one record
	ErrUnexpectedCount = errors.New("unexpected number of records")
	// ErrNotIncluded is returned when a relationship points at a record missing from included
	ErrNotIncluded = errors.New("related record not included")
)

// Schedule relationships that never reach a board
var droppedRelationships = map[string]struct{}{
	"CANCELLED": {},
	"NO_DATA":   {},
	"SKIPPED":   {},
}

// noStopSequence never equals a real stop sequence
const noStopSequence = -1

// RouteFromDocument maps a routes document holding exactly one route.
func RouteFromDocument(doc *Document) (arrivals.Route, error) {
	res, err := single(doc, "routes")
	if err != nil {
		return arrivals.Route{}, err
	}
	var attrs RouteAttributes
	if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
		return arrivals.Route{}, fmt.Errorf("decode route %s: %w", res.ID, err)
	}
	return arrivals.Route{
		ID:                    res.ID,
		Name:                  arrivals.DisplayName(attrs.Type, attrs.ShortName, attrs.LongName),
		DirectionDestinations: attrs.DirectionDestinations,
	}, nil
}

// StopFromDocument maps a stops document holding exactly one stop.
func StopFromDocument(doc *Document) (arrivals.Stop, error) {
	res, err := single(doc, "stops")
	if err != nil {
		return arrivals.Stop{}, err
	}
	var attrs StopAttributes
	if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
		return arrivals.Stop{}, fmt.Errorf("decode stop %s: %w", res.ID, err)
	}
	return arrivals.Stop{ID: res.ID, Name: attrs.Name}, nil
}

// PredictionsFromDocument maps a predictions document with included vehicles
// and trips. Cancelled, skipped and no-data entries are dropped, as are
// entries without a departure time.
func PredictionsFromDocument(doc *Document) ([]arrivals.Prediction, error) {
	if err := checkErrors(doc); err != nil {
		return nil, err
	}
	if len(doc.Data) == 0 {
		return []arrivals.Prediction{}, nil
	}

	vehicles := map[string]arrivals.Vehicle{}
	trips := map[string]string{}
	for _, inc := range doc.Included {
		switch inc.Type {
		case "vehicle":
			var attrs VehicleAttributes
			if err := json.Unmarshal(inc.Attributes, &attrs); err != nil {
				return nil, fmt.Errorf("decode vehicle %s: %w", inc.ID, err)
			}
			seq := noStopSequence
			if attrs.CurrentStopSequence != nil {
				seq = *attrs.CurrentStopSequence
			}
			vehicles[inc.ID] = arrivals.Vehicle{ID: inc.ID, Status: attrs.CurrentStatus, StopSequence: seq}
		case "trip":
			var attrs TripAttributes
			if err := json.Unmarshal(inc.Attributes, &attrs); err != nil {
				return nil, fmt.Errorf("decode trip %s: %w", inc.ID, err)
			}
			trips[inc.ID] = attrs.Headsign
		}
	}

	predictions := make([]arrivals.Prediction, 0, len(doc.Data))
	for _, res := range doc.Data {
		var attrs PredictionAttributes
		if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
			return nil, fmt.Errorf("decode prediction %s: %w", res.ID, err)
		}
		if attrs.ScheduleRelationship != nil {
			if _, drop := droppedRelationships[*attrs.ScheduleRelationship]; drop {
				continue
			}
		}
		if attrs.DepartureTime == nil || *attrs.DepartureTime == "" {
			continue
		}
		departure, err := utils.ParseIso8601(*attrs.DepartureTime)
		if err != nil {
			return nil, fmt.Errorf("prediction %s: %w", res.ID, err)
		}

		var vehicle *arrivals.Vehicle
		if ref := res.Relationships["vehicle"].Data; ref != nil {
			v, ok := vehicles[ref.ID]
			if !ok {
				return nil, fmt.Errorf("prediction %s: vehicle %s: %w", res.ID, ref.ID, ErrNotIncluded)
			}
			vehicle = &v
		}

		ref := res.Relationships["trip"].Data
		if ref == nil {
			return nil, fmt.Errorf("prediction %s: no trip: %w", res.ID, ErrNotIncluded)
		}
		headsign, ok := trips[ref.ID]
		if !ok {
			return nil, fmt.Errorf("prediction %s: trip %s: %w", res.ID, ref.ID, ErrNotIncluded)
		}

		p := arrivals.Prediction{
			DepartureTime: departure,
			Headsign:      headsign,
			Vehicle:       vehicle,
		}
		if attrs.StopSequence != nil {
			p.StopSequence = *attrs.StopSequence
		}
		if attrs.Status != nil {
			p.Status = *attrs.Status
		}
		predictions = append(predictions, p)
	}
	return predictions, nil
}

func checkErrors(doc *Document) error {
	if doc == nil {
		return errors.New("mbta: empty document")
	}
	if len(doc.Errors) > 0 {
		return &APIError{Errors: doc.Errors}
	}
	return nil
}

func single(doc *Document, kind string) (Resource, error) {
	if err := checkErrors(doc); err != nil {
		return Resource{}, err
	}
	if len(doc.Data) != 1 {
		return Resource{}, fmt.Errorf("%s: expected 1 got %d: %w", kind, len(doc.Data), ErrUnexpectedCount)
	}
	return doc.Data[0], nil
}
