package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "single value",
			input:    "tech",
			expected: []string{"tech"},
		},
		{
			name:     "two values",
			input:    "energy, tech",
			expected: []string{"energy", "tech"},
		},
		{
			name:     "no spaces after comma",
			input:    "finance,healthcare",
			expected: []string{"finance", "healthcare"},
		},
		{
			name:     "trailing comma",
			input:    "finance,",
			expected: []string{"finance"},
		},
		{
			name:     "leading comma",
			input:    ",healthcare",
			expected: []string{"healthcare"},
		},
		{
			name:     "only spaces",
			input:    "   ",
			expected: nil,
		},
		{
			name:     "comma only",
			input:    ",",
			expected: nil,
		},
		{
			name:     "multiple commas",
			input:    ",,tech,,finance,,",
			expected: []string{"tech", "finance"},
		},
		{
			name:     "value with internal spaces preserved",
			input:    "consumer goods, real estate",
			expected: []string{"consumer goods", "real estate"},
		},
		{
			name:     "mixed spacing around values",
			input:    "  energy  ,  tech  ",
			expected: []string{"energy", "tech"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseCSV(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseCSV_PreservesInput(t *testing.T) {
	// Verify that the function doesn't modify the input string
	input := "energy, tech"
	originalInput := input

	_ = ParseCSV(input)

	assert.Equal(t, originalInput, input, "input should not be modified")
}
