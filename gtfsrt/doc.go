// Package gtfsrt builds board predictions from GTFS-Realtime protobuf feeds.
//
// It reads two feed types:
//   - Trip Updates: real-time arrival/departure predictions
//   - Vehicle Positions: current vehicle status and stop sequence
//
// Feed indexes one pair of feed snapshots. Source joins a Feed with the
// static gtfs.Index (route names, stop hierarchy, trip headsigns) and
// implements board.Source, fetching fresh feeds on every Predictions call.
package gtfsrt
