package arrivals

import (
	"math"
	"strconv"
	"time"
)

// Countdown tokens
const (
	Error       = "ERR"
	Boarding    = "BRD"
	Arriving    = "ARR"
	Approaching = "1 min"
	Far         = "20+ min"
)

const (
	boardingWindow    = 90
	arrivingWindow    = 30
	approachingWindow = 60
	farMinutes        = 20
)

// IsValid reports whether the prediction has a departure time that is not in the past.
func (p Prediction) IsValid(now time.Time) bool {
	if p.DepartureTime == nil {
		return false
	}
	return p.DepartureTime.Sub(now) >= 0
}

// Countdown resolves the prediction into the string shown on a board.
func (p Prediction) Countdown(now time.Time) string {
	if p.Status != "" {
		return p.Status
	}
	if !p.IsValid(now) {
		return Error
	}
	seconds := p.DepartureTime.Sub(now).Seconds()

	if seconds <= boardingWindow && p.Vehicle != nil && p.Vehicle.IsStoppedAt(p.StopSequence) {
		return Boarding
	}
	if seconds <= arrivingWindow {
		return Arriving
	}
	if seconds <= approachingWindow {
		return Approaching
	}

	// half-even, so 150s reads "2 min" rather than "3 min"
	minutes := int(math.RoundToEven(seconds / 60))
	if minutes > farMinutes {
		return Far
	}
	return strconv.Itoa(minutes) + " min"
}

// Resolve keeps the valid predictions and maps each to an Arrival, in order.
func Resolve(predictions []Prediction, now time.Time) []Arrival {
	out := make([]Arrival, 0, len(predictions))
	for _, p := range predictions {
		if !p.IsValid(now) {
			continue
		}
		out = append(out, Arrival{Headsign: p.Headsign, Countdown: p.Countdown(now)})
	}
	return out
}
