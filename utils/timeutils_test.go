package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIso8601FromUnixSeconds(t *testing.T) {
	tests := []struct {
		name     string
		input    int64
		expected string
	}{
		{name: "epoch", input: 0, expected: "1970-01-01T00:00:00Z"},
		{name: "specific timestamp", input: 1696320000, expected: "2023-10-03T08:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Iso8601FromUnixSeconds(tt.input))
		})
	}
}

func TestParseIso8601(t *testing.T) {
	got, err := ParseIso8601("2026-10-19T08:04:12-04:00")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Equal(time.Date(2026, 10, 19, 12, 4, 12, 0, time.UTC)))

	got, err = ParseIso8601("")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseIso8601("19/10/2026 08:04")
	assert.Error(t, err)
}

func TestTimeFromUnixSeconds(t *testing.T) {
	assert.Nil(t, TimeFromUnixSeconds(0))
	got := TimeFromUnixSeconds(1696320000)
	require.NotNil(t, got)
	assert.Equal(t, "2023-10-03T08:00:00Z", Iso8601FromTime(*got))
}
