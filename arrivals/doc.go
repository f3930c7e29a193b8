// Package arrivals holds the domain snapshot types of a next-arrivals board
// and the countdown rules that turn a prediction into a display string.
//
// Every value here is rebuilt on each poll; nothing is shared between polls.
//
// A prediction resolves to one of a small vocabulary:
//   - the API-supplied status, verbatim, when present
//   - "BRD" when the vehicle is stopped at the stop and leaves within 90s
//   - "ARR" within 30s
//   - "1 min" within 60s
//   - "N min" up to 20 minutes, "20+ min" beyond
//   - "ERR" when the prediction has no usable departure time
package arrivals
