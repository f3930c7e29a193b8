package formatter

import (
	"encoding/json"
	"time"

	"github.com/theoremus-urban-solutions/mbta-board/arrivals"
	"github.com/theoremus-urban-solutions/mbta-board/utils"
)

// Payload is the published form of a board
type Payload struct {
	Route       string             `json:"route"`
	Stop        string             `json:"stop"`
	GeneratedAt string             `json:"generatedAt"`
	Arrivals    []arrivals.Arrival `json:"arrivals"`
}

// BuildPayload stamps a board with its generation time
func BuildPayload(b arrivals.Board, now time.Time) Payload {
	arr := b.Arrivals
	if arr == nil {
		arr = []arrivals.Arrival{}
	}
	return Payload{
		Route:       b.RouteName,
		Stop:        b.StopName,
		GeneratedAt: utils.Iso8601FromTime(now),
		Arrivals:    arr,
	}
}

// BuildJSON serializes a board to its JSON payload
func BuildJSON(b arrivals.Board, now time.Time) ([]byte, error) {
	return json.Marshal(BuildPayload(b, now))
}
