// Package testutil builds in-memory fixtures for tests.
package testutil

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// GTFSZip zips the given files, each a list of CSV lines.
func GTFSZip(t *testing.T, files map[string][]string) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)
	for filename, content := range files {
		f, err := w.Create(filename)
		require.NoError(t, err)
		_, err = f.Write([]byte(strings.Join(content, "\n")))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// MBTAFiles is a tiny slice of the MBTA static feed.
func MBTAFiles() map[string][]string {
	return map[string][]string{
		"routes.txt": {
			"route_id,agency_id,route_short_name,route_long_name,route_desc,route_type",
			"Red,1,,Red Line,Rapid Transit,1",
			"83,1,83,Rindge Avenue - Central Square,Local Bus,3",
		},
		"stops.txt": {
			"stop_id,stop_code,stop_name,stop_lat,stop_lon,location_type,parent_station",
			"place-cntsq,,Central,42.365486,-71.103802,1,",
			"70069,70069,Central,42.365304,-71.103621,0,place-cntsq",
			"70070,70070,Central,42.365379,-71.103554,0,place-cntsq",
			"2453,2453,Massachusetts Ave @ Pearl St,42.364,-71.101,0,",
		},
		"trips.txt": {
			"route_id,service_id,trip_id,trip_headsign,direction_id",
			"Red,FallWeekday,T-ALE-1,Alewife,1",
			"Red,FallWeekday,T-ASH-1,Ashmont,0",
			"Red,FallWeekday,T-BRA-1,Braintree,0",
			"83,FallWeekday,T-83-1,Central Square,0",
		},
		"directions.txt": {
			"route_id,direction_id,direction,direction_destination",
			"Red,0,South,Ashmont/Braintree",
			"Red,1,North,Alewife",
			"83,0,Inbound,Central Square",
			"83,1,Outbound,Rindge Avenue",
		},
		"stop_times.txt": {
			"trip_id,arrival_time,departure_time,stop_id,stop_sequence",
			"T-ALE-1,08:00:00,08:00:00,70069,60",
		},
	}
}
