package utils

import (
	"fmt"
	"time"
)

// Iso8601FromTime formats t as UTC ISO8601
func Iso8601FromTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// Iso8601FromUnixSeconds converts Unix timestamp to ISO8601 format
func Iso8601FromUnixSeconds(sec int64) string {
	return time.Unix(sec, 0).UTC().Format(time.RFC3339)
}

// ParseIso8601 parses an API timestamp such as "2026-10-19T08:04:12-04:00".
// An empty string yields a nil time and no error.
func ParseIso8601(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return &t, nil
}

// TimeFromUnixSeconds converts a feed epoch into a time; zero means absent.
func TimeFromUnixSeconds(sec int64) *time.Time {
	if sec <= 0 {
		return nil
	}
	t := time.Unix(sec, 0).UTC()
	return &t
}
