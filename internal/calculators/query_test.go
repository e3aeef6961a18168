package calculators

import (
	"net/url"
	"testing"

	"github.com/olsonco/calckit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryRoundTrip_AllCalculators(t *testing.T) {
	for _, item := range Default().Items() {
		in := DefaultInputs(item.Fields)
		q := EncodeQuery(item.Fields, in)
		assert.Len(t, q, len(item.Fields), item.Slug)
		assert.Equal(t, in, DecodeQuery(item.Fields, q), item.Slug)
	}
}

func TestQueryRoundTrip_Overrides(t *testing.T) {
	item, ok := Default().Item("retirement-projection")
	require.True(t, ok)

	in := MergeInputs(item.Fields, domain.Inputs{
		"currentSavings":     domain.NumberValue(123456.78),
		"annualReturn":       domain.NumberValue(0.1),
		"adjustForInflation": domain.BoolValue(false),
	})
	q := EncodeQuery(item.Fields, in)
	assert.Equal(t, "123456.78", q.Get("currentSavings"))
	assert.Equal(t, "false", q.Get("adjustForInflation"))

	assert.Equal(t, in, DecodeQuery(item.Fields, q))
}

func TestEncodeQuery_MonthGrid(t *testing.T) {
	item, _ := Default().Item("cash-flow-forecast")
	grid := domain.MonthGrid{}
	for i, k := range []string{"m1", "m2", "m3", "m4", "m5", "m6", "m7", "m8", "m9", "m10", "m11", "m12"} {
		grid[k] = float64(1000 * (i + 1))
	}

	q := EncodeQuery(item.Fields, domain.Inputs{"monthlyRevenue": domain.GridValue(grid)})
	assert.Equal(t, "1000,2000,3000,4000,5000,6000,7000,8000,9000,10000,11000,12000", q.Get("monthlyRevenue"))
	assert.Equal(t, "50000", q.Get("openingCash"))

	decoded := DecodeQuery(item.Fields, q)
	assert.Equal(t, grid, decoded["monthlyRevenue"].Grid)
}

func TestDecodeQuery_Fallbacks(t *testing.T) {
	item, _ := Default().Item("cash-flow-forecast")
	q := url.Values{}
	q.Set("openingCash", "lots")
	q.Set("monthlyRevenue", "1,,abc,4")
	q.Set("unknownKey", "1")

	in := DecodeQuery(item.Fields, q)
	assert.Equal(t, domain.NumberValue(50000), in["openingCash"])

	grid := in["monthlyRevenue"].Grid
	assert.Equal(t, 1.0, grid["m1"])
	assert.Equal(t, 38000.0, grid["m2"])
	assert.Equal(t, 38000.0, grid["m3"])
	assert.Equal(t, 4.0, grid["m4"])
	assert.Equal(t, 38000.0, grid["m12"])

	assert.NotContains(t, in, "unknownKey")
	assert.Equal(t, 29000.0, in["monthlyExpenses"].Grid["m6"])
}

func TestDecodeQuery_SelectAndBoolean(t *testing.T) {
	item, _ := Default().Item("retirement-projection")
	in := DecodeQuery(item.Fields, url.Values{"adjustForInflation": {"yes"}})
	assert.Equal(t, domain.BoolValue(false), in["adjustForInflation"])

	debt, _ := Default().Item("debt-payoff-planner")
	in = DecodeQuery(debt.Fields, url.Values{"method": {"snowball"}})
	assert.Equal(t, domain.StringValue("snowball"), in["method"])
}

func TestMergeInputs(t *testing.T) {
	item, _ := Default().Item("margin-markup-calculator")
	in := MergeInputs(item.Fields, domain.Inputs{
		"price": domain.NumberValue(100),
		"cost":  {},
		"bogus": domain.NumberValue(1),
	})
	assert.Equal(t, domain.Inputs{
		"cost":  domain.NumberValue(45),
		"price": domain.NumberValue(100),
	}, in)
}

func TestDefaultInputsAreIndependent(t *testing.T) {
	item, _ := Default().Item("cash-flow-forecast")
	a := DefaultInputs(item.Fields)
	a["monthlyRevenue"].Grid["m1"] = 0

	b := DefaultInputs(item.Fields)
	assert.Equal(t, 38000.0, b["monthlyRevenue"].Grid["m1"])
}

func TestApplyQuery(t *testing.T) {
	item, _ := Default().Item("margin-markup-calculator")
	base := MergeInputs(item.Fields, domain.Inputs{"cost": domain.NumberValue(10)})

	out := ApplyQuery(item.Fields, base, url.Values{"price": {"25"}, "other": {"1"}})
	assert.Equal(t, domain.Inputs{"cost": domain.NumberValue(10), "price": domain.NumberValue(25)}, out)
	assert.Equal(t, domain.NumberValue(75), base["price"])
}
