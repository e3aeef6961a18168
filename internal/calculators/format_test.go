package calculators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{999.49, "$999"},
		{1234.5, "$1,235"},
		{-50, "-$50"},
		{-1234567.5, "-$1,234,568"},
		{850000, "$850,000"},
		{math.NaN(), "$0"},
		{math.Inf(1), "$0"},
		{-0.4, "$0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Currency(tt.in), "Currency(%v)", tt.in)
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "12.3%", Percent(0.1234))
	assert.Equal(t, "5.0%", Percent(0.05))
	assert.Equal(t, "28.2%", Percent(0.282))
	assert.Equal(t, "-4.5%", Percent(-0.045))
	assert.Equal(t, "1,250.0%", Percent(12.5))
	assert.Equal(t, "0.0%", Percent(math.NaN()))
}

func TestNumberAndRatio(t *testing.T) {
	assert.Equal(t, "224", Number(224))
	assert.Equal(t, "12,346", Number(12345.5))
	assert.Equal(t, "-1,000", Number(-1000))
	assert.Equal(t, "0", Number(math.Inf(-1)))

	assert.Equal(t, "1.67x", Ratio(75.0/45.0))
	assert.Equal(t, "0.00x", Ratio(0))
	assert.Equal(t, "0.00x", Ratio(math.NaN()))
}

func TestThousandsGrouping(t *testing.T) {
	assert.Equal(t, "1", Number(1))
	assert.Equal(t, "123", Number(123))
	assert.Equal(t, "1,234", Number(1234))
	assert.Equal(t, "123,456", Number(123456))
	assert.Equal(t, "1,234,567", Number(1234567))
	assert.Equal(t, "$12,345,679", Currency(12345678.9))
	assert.Equal(t, "12,345.6%", Percent(123.456))
	assert.Equal(t, "0.5%", Percent(0.005))
}

func TestChartValue(t *testing.T) {
	assert.Equal(t, 3.0, chartValue(2.5))
	assert.Equal(t, -2.0, chartValue(-2.5))
	assert.Equal(t, 0.0, chartValue(math.NaN()))
	assert.Equal(t, 0.0, chartValue(math.Inf(1)))
}
