package returns

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRateOf(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		end   float64
		want  string
	}{
		{"five percent gain", 1.0, 1.05, "0.05"},
		{"flat", 2.5, 2.5, "0"},
		{"loss", 1.0, 0.97, "-0.03"},
		{"rounds half up at six places", 1.0, 1.0000015, "0.000002"},
		{"repeating decimal truncates to six places", 3.0, 4.0, "0.333333"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rateOf(tt.start, tt.end).String())
		})
	}
}

func TestPercentOf(t *testing.T) {
	assert.Equal(t, "5.00%", percentOf(rateOf(1.0, 1.05)))
	assert.Equal(t, "0.00%", percentOf(decimal.Zero))
	assert.Equal(t, "-3.00%", percentOf(rateOf(1.0, 0.97)))
	assert.Equal(t, "33.33%", percentOf(rateOf(3.0, 4.0)))
	// Percentages round at two places, not the underlying rate's six.
	assert.Equal(t, "1.24%", percentOf(decimal.NewFromFloat(0.012449)))
}

func TestMeanOf(t *testing.T) {
	sum := rateOf(1.0, 1.05).Add(rateOf(1.0, 1.01))
	assert.Equal(t, "0.03", meanOf(sum, 2).String())

	third := meanOf(decimal.NewFromInt(1), 3)
	assert.Equal(t, "0.333333", third.String())
}
