package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		decimals int32
		expected int64
	}{
		{"whole coin", "1", 8, 100000000},
		{"fractional", "0.001", 8, 100000},
		{"smallest unit", "0.00000001", 8, 1},
		{"zero", "0", 8, 0},
		{"two decimals asset", "10.25", 2, 1025},
		{"trailing zeros", "0.50000000", 8, 50000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input, tt.decimals)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		decimals int32
	}{
		{"not a number", "abc", 8},
		{"negative", "-0.5", 8},
		{"too much precision", "0.000000001", 8},
		{"overflow", "999999999999999999999", 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input, tt.decimals)
			assert.Error(t, err)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1.23456789", Format(123456789, 8))
	assert.Equal(t, "0.001", Format(100000, 8))
	assert.Equal(t, "0", Format(0, 8))
	assert.Equal(t, "-0.0000005", Format(-50, 8))
	assert.Equal(t, "10.25", Format(1025, 2))
}

func TestParseFormat_RoundTrip(t *testing.T) {
	amount, err := Parse("0.12345678", 8)
	require.NoError(t, err)
	assert.Equal(t, "0.12345678", Format(amount, 8))
}
