// Package mbta reads routes, stops and predictions from the MBTA V3 API.
//
// The API speaks JSON:API: every response is a document with a data array,
// an optional included array of related records, and an errors array that is
// non-empty on failure. Client fetches documents; the mapper functions turn
// them into arrivals values:
//
//	c := mbta.NewClient("https://api-v3.mbta.com", key, 10*time.Second)
//	route, err := c.Route(ctx, "Red")
//	stop, err := c.Stop(ctx, "place-cntsq")
//	predictions, err := c.Predictions(ctx, "Red", "place-cntsq")
//
// An errors envelope surfaces as *APIError, a by-id lookup that does not
// return exactly one record as ErrUnexpectedCount, and a prediction whose
// vehicle or trip is missing from included as ErrNotIncluded.
package mbta
