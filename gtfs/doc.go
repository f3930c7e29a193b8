/*
Package gtfs provides GTFS static data loading and indexing.

This package is data-source agnostic - it accepts raw zip bytes and builds an
in-memory index. It does NOT handle HTTP downloads or file paths; see
gtfsrt.Client for fetching.

# Basic Usage

	zipBytes, _ := client.Fetch(ctx, "https://cdn.mbta.com/MBTA_GTFS.zip")
	index, err := gtfs.NewIndexFromBytes(zipBytes)
	if err != nil {
	    log.Fatal(err)
	}

	route, ok := index.Route("Red")
	trip, _ := index.Trip("60392455") // trip.Headsign, trip.DirectionID

Parse the zip once at startup: only routes.txt, stops.txt, trips.txt and
directions.txt are read, the large stop_times.txt is skipped.

# Data Structure

The index provides lookups for:

- Routes (route_id → short/long name, route_type, direction destinations)
- Stops (stop_id → name, parent station)
- Trips (trip_id → route_id, headsign, direction)
*/
package gtfs
