// Package utils provides internal utility functions shared by the mapper and formatter.
// This package is not intended to be imported by external code.
//
// It contains:
//   - Timestamp parsing for upstream API documents
//   - ISO8601 formatting for published board payloads
package utils
