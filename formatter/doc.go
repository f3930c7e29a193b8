// Package formatter renders boards for the text and publishing sinks.
//
// This package is organized into:
// - text.go: the two-line terminal rendering
// - json.go: the JSON payload published to redis and amqp
package formatter
