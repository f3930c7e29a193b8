package formatter

import (
	"strings"

	"github.com/theoremus-urban-solutions/mbta-board/arrivals"
)

// TextArrivals is how many arrivals the text rendering shows
const TextArrivals = 3

// BuildText renders a board as two lines:
//
//	Red Line, Central
//	(Alewife, BRD) (Ashmont, 3 min)
//
// The second line is empty when there are no arrivals.
func BuildText(b arrivals.Board) string {
	var sb strings.Builder
	sb.WriteString(b.RouteName)
	sb.WriteString(", ")
	sb.WriteString(b.StopName)
	sb.WriteByte('\n')
	for i, a := range b.Head(TextArrivals) {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString("(" + a.Headsign + ", " + a.Countdown + ")")
	}
	sb.WriteByte('\n')
	return sb.String()
}
