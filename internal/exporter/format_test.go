package exporter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{name: "zero value", input: 0.0, expected: "0"},
		{name: "integer rating", input: 6.0, expected: "6"},
		{name: "negative", input: -0.25, expected: "-0.25"},
		{name: "full precision", input: 1.2345678901, expected: "1.2345678901"},
		{name: "no exponent notation", input: 0.0000012, expected: "0.0000012"},
		{name: "missing value", input: math.NaN(), expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatFloat(tt.input))
		})
	}
}

func TestCellFloat(t *testing.T) {
	assert.Equal(t, 0.5, cellFloat(0.5))
	assert.Nil(t, cellFloat(math.NaN()))
	assert.Nil(t, cellFloat(math.Inf(1)))
	assert.Nil(t, cellFloat(math.Inf(-1)))
}
