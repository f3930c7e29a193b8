package arrivals

import "time"

// RouteTypeBus is the GTFS route_type code for bus routes.
const RouteTypeBus = 3

// StatusStoppedAt is the vehicle status reported while dwelling at a stop.
const StatusStoppedAt = "STOPPED_AT"

// Route describes a transit route as shown on a board
type Route struct {
	ID                    string
	Name                  string
	DirectionDestinations []string
}

// DisplayName picks the name shown for a route: bus long names are far too
// long for the panel, so buses use their short name ("83").
func DisplayName(routeType int, shortName, longName string) string {
	if routeType == RouteTypeBus {
		return shortName
	}
	return longName
}

// Stop is a stop or station
type Stop struct {
	ID   string
	Name string
}

// Vehicle is the live state of the vehicle serving a prediction
type Vehicle struct {
	ID           string
	Status       string
	StopSequence int
}

// IsStoppedAt reports whether the vehicle is dwelling at the given stop sequence.
func (v Vehicle) IsStoppedAt(stopSequence int) bool {
	return v.Status == StatusStoppedAt && v.StopSequence == stopSequence
}

// Prediction is a real-time departure estimate at a stop.
// DepartureTime and Vehicle are nil when the upstream record has none.
type Prediction struct {
	StopSequence  int
	Status        string
	DepartureTime *time.Time
	Headsign      string
	Vehicle       *Vehicle
}

// Arrival is the display-ready projection of a valid Prediction
type Arrival struct {
	Headsign  string `json:"headsign"`
	Countdown string `json:"countdown"`
}

// Board is everything a sink needs to render one (route, stop) pair
type Board struct {
	RouteName string
	StopName  string
	Arrivals  []Arrival
}

// Head returns at most n arrivals.
func (b Board) Head(n int) []Arrival {
	if n < 0 || len(b.Arrivals) <= n {
		return b.Arrivals
	}
	return b.Arrivals[:n]
}
