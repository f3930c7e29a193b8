package gtfs

import "github.com/theoremus-urban-solutions/mbta-board/arrivals"

// RouteInfo is a routes.txt row
type RouteInfo struct {
	ID        string
	ShortName string
	LongName  string
	Type      int
}

// StopInfo is a stops.txt row
type StopInfo struct {
	ID            string
	Name          string
	ParentStation string
}

// TripInfo is a trips.txt row
type TripInfo struct {
	ID          string
	RouteID     string
	Headsign    string
	DirectionID int
}

// Index stores GTFS static data in memory for fast lookups
type Index struct {
	routes     map[string]RouteInfo
	stops      map[string]StopInfo
	trips      map[string]TripInfo
	directions map[string][]string // route_id -> destination by direction_id
}

// NewIndex creates a new empty GTFS index
func NewIndex() *Index {
	return &Index{
		routes:     map[string]RouteInfo{},
		stops:      map[string]StopInfo{},
		trips:      map[string]TripInfo{},
		directions: map[string][]string{},
	}
}

// Route returns the board view of a route.
func (g *Index) Route(routeID string) (arrivals.Route, bool) {
	r, ok := g.routes[routeID]
	if !ok {
		return arrivals.Route{}, false
	}
	return arrivals.Route{
		ID:                    r.ID,
		Name:                  arrivals.DisplayName(r.Type, r.ShortName, r.LongName),
		DirectionDestinations: g.directions[routeID],
	}, true
}

func (g *Index) Stop(stopID string) (StopInfo, bool) {
	s, ok := g.stops[stopID]
	return s, ok
}

func (g *Index) Trip(tripID string) (TripInfo, bool) {
	t, ok := g.trips[tripID]
	return t, ok
}

// DirectionDestination returns the destination of a route direction, or "".
func (g *Index) DirectionDestination(routeID string, directionID int) string {
	d := g.directions[routeID]
	if directionID < 0 || directionID >= len(d) {
		return ""
	}
	return d[directionID]
}

// StopMatches reports whether stopID is wantID or one of its child stops
// (platforms of a parent station).
func (g *Index) StopMatches(stopID, wantID string) bool {
	if stopID == wantID {
		return true
	}
	return g.stops[stopID].ParentStation == wantID && wantID != ""
}

func (g *Index) RouteCount() int { return len(g.routes) }
func (g *Index) StopCount() int  { return len(g.stops) }
func (g *Index) TripCount() int  { return len(g.trips) }
