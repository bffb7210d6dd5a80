package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"local format gets country code", "0501234567", "+380501234567"},
		{"formatted local number", "(050) 123-45-67", "+380501234567"},
		{"full international with plus", "+380501234567", "+380501234567"},
		{"full international without plus", "380501234567", "+380501234567"},
		{"spaces and dashes stripped", "+38 050 123 45 67", "+380501234567"},
		{"eleven digits kept as is", "15551234567", "+15551234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw, "380")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalize_TooShort(t *testing.T) {
	_, err := Normalize("12345", "380")
	assert.ErrorIs(t, err, ErrTooShort)

	_, err = Normalize("abc", "380")
	assert.ErrorIs(t, err, ErrTooShort)
}

func TestNormalize_TooLong(t *testing.T) {
	_, err := Normalize("1234567890123456", "380")
	assert.ErrorIs(t, err, ErrTooLong)
}

func TestNormalize_TenDigitsWithoutLeadingZero(t *testing.T) {
	// Без ведущего нуля код страны не подставляется
	got, err := Normalize("5012345678", "380")
	require.NoError(t, err)
	assert.Equal(t, "+5012345678", got)
}
