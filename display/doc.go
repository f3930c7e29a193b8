// Package display writes boards to output surfaces.
//
// Every surface implements Sink. Open runs once before the first Write and
// Close once after the last; the poll loop owns that bracket. A Registry maps
// the names accepted by --display to constructors:
//
//	stdout  two text lines per board
//	pillow  250x122 monochrome bitmap, saved as PNG
//	pi      the bitmap pushed to a Waveshare 2.13" e-paper panel
//	redis   JSON payload published on a channel
//	amqp    JSON payload published to a queue
package display
