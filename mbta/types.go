package mbta

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Document is a JSON:API response from the MBTA V3 API
type Document struct {
	Data     []Resource    `json:"data"`
	Included []Resource    `json:"included,omitempty"`
	Errors   []ErrorObject `json:"errors,omitempty"`
}

// Resource is a single JSON:API resource object. Attributes are decoded per
// resource type by the mapper.
type Resource struct {
	ID            string                  `json:"id"`
	Type          string                  `json:"type"`
	Attributes    json.RawMessage         `json:"attributes"`
	Relationships map[string]Relationship `json:"relationships,omitempty"`
}

// Relationship links a resource to another; Data is nil for "data": null.
type Relationship struct {
	Data *ResourceIdentifier `json:"data"`
}

// ResourceIdentifier identifies a related resource
type ResourceIdentifier struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// ErrorObject is a JSON:API error
type ErrorObject struct {
	Status string `json:"status,omitempty"`
	Code   string `json:"code,omitempty"`
	Title  string `json:"title,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// APIError is returned when a document carries a non-empty errors array
type APIError struct {
	Errors []ErrorObject
}

func (e *APIError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, o := range e.Errors {
		msg := o.Code
		if o.Detail != "" {
			msg += ": " + o.Detail
		} else if o.Title != "" {
			msg += ": " + o.Title
		}
		if o.Status != "" {
			msg = o.Status + " " + msg
		}
		parts = append(parts, msg)
	}
	return fmt.Sprintf("mbta api error: [%s]", strings.Join(parts, "; "))
}

// RouteAttributes are the route fields the board uses
type RouteAttributes struct {
	Type                  int      `json:"type"`
	ShortName             string   `json:"short_name"`
	LongName              string   `json:"long_name"`
	DirectionDestinations []string `json:"direction_destinations"`
}

// StopAttributes are the stop fields the board uses
type StopAttributes struct {
	Name string `json:"name"`
}

// PredictionAttributes are the prediction fields the board uses.
// Nullable fields are pointers.
type PredictionAttributes struct {
	DepartureTime        *string `json:"departure_time"`
	ScheduleRelationship *string `json:"schedule_relationship"`
	Status               *string `json:"status"`
	StopSequence         *int    `json:"stop_sequence"`
}

// VehicleAttributes are the vehicle fields the countdown needs
type VehicleAttributes struct {
	CurrentStatus       string `json:"current_status"`
	CurrentStopSequence *int   `json:"current_stop_sequence"`
}

// TripAttributes are the trip fields the board uses
type TripAttributes struct {
	Headsign string `json:"headsign"`
}
