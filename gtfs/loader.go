package gtfs

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var wantedFiles = map[string]struct{}{
	"routes.txt":     {},
	"stops.txt":      {},
	"trips.txt":      {},
	"directions.txt": {},
}

// NewIndexFromBytes builds an index from the bytes of a GTFS zip.
func NewIndexFromBytes(data []byte) (*Index, error) {
	return NewIndexFromReader(bytes.NewReader(data), int64(len(data)))
}

// NewIndexFromReader builds an index from a GTFS zip of the given size.
func NewIndexFromReader(r io.ReaderAt, size int64) (*Index, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open gtfs zip: %w", err)
	}
	g := NewIndex()
	for _, f := range zr.File {
		if _, ok := wantedFiles[strings.ToLower(f.Name)]; !ok {
			continue
		}
		if err := g.consumeCSV(f); err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
	}
	if len(g.routes) == 0 {
		return nil, errors.New("gtfs zip has no routes")
	}
	return g, nil
}

func (g *Index) consumeCSV(f *zip.File) error {
	r, err := f.Open()
	if err != nil {
		return err
	}
	defer r.Close()
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1
	csvr.ReuseRecord = true

	head, err := csvr.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}
	cols := make(map[string]int, len(head))
	for i, h := range head {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	idx := func(col string) int {
		if i, ok := cols[col]; ok {
			return i
		}
		return -1
	}

	var consume func(get func(int) string)
	switch strings.ToLower(f.Name) {
	case "routes.txt":
		rID, rSN, rLN, rType := idx("route_id"), idx("route_short_name"), idx("route_long_name"), idx("route_type")
		if rID < 0 {
			return errors.New("missing route_id column")
		}
		consume = func(get func(int) string) {
			typ, _ := strconv.Atoi(get(rType))
			g.routes[get(rID)] = RouteInfo{ID: get(rID), ShortName: get(rSN), LongName: get(rLN), Type: typ}
		}
	case "stops.txt":
		sID, sN, sParent := idx("stop_id"), idx("stop_name"), idx("parent_station")
		if sID < 0 {
			return errors.New("missing stop_id column")
		}
		consume = func(get func(int) string) {
			g.stops[get(sID)] = StopInfo{ID: get(sID), Name: get(sN), ParentStation: get(sParent)}
		}
	case "trips.txt":
		tID, rID, hs, dir := idx("trip_id"), idx("route_id"), idx("trip_headsign"), idx("direction_id")
		if tID < 0 || rID < 0 {
			return errors.New("missing trip_id or route_id column")
		}
		consume = func(get func(int) string) {
			d, _ := strconv.Atoi(get(dir))
			g.trips[get(tID)] = TripInfo{ID: get(tID), RouteID: get(rID), Headsign: get(hs), DirectionID: d}
		}
	case "directions.txt":
		rID, dir, dest := idx("route_id"), idx("direction_id"), idx("direction_destination")
		if rID < 0 || dir < 0 || dest < 0 {
			return nil
		}
		consume = func(get func(int) string) {
			d, err := strconv.Atoi(get(dir))
			if err != nil || d < 0 {
				return
			}
			dests := g.directions[get(rID)]
			for len(dests) <= d {
				dests = append(dests, "")
			}
			dests[d] = get(dest)
			g.directions[get(rID)] = dests
		}
	default:
		return nil
	}

	for {
		row, err := csvr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		consume(func(i int) string {
			if i < 0 || i >= len(row) {
				return ""
			}
			return row[i]
		})
	}
}
