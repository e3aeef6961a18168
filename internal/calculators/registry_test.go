package calculators

import (
	"encoding/json"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/olsonco/calckit/internal/calculation"
	"github.com/olsonco/calckit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allSlugs = []string{
	"canadian-income-tax-estimator",
	"rrsp-contribution-impact",
	"tfsa-tracker",
	"mortgage-payment-amortization",
	"rent-vs-buy",
	"debt-payoff-planner",
	"retirement-projection",
	"net-worth-snapshot",
	"incorporation-vs-sole-prop",
	"gst-hst-calculator",
	"payroll-gross-to-net",
	"business-loan-payment",
	"break-even-calculator",
	"cash-flow-forecast",
	"margin-markup-calculator",
	"contractor-vs-employee-cost",
}

type recordingLogger struct {
	calculation.NopLogger
	mu    sync.Mutex
	warns int
}

func (l *recordingLogger) Warnf(string, ...any) {
	l.mu.Lock()
	l.warns++
	l.mu.Unlock()
}

func TestRegistry_Slugs(t *testing.T) {
	reg := Default()
	assert.Equal(t, allSlugs, reg.Slugs())
	assert.Len(t, builders, len(allSlugs))

	for _, slug := range allSlugs {
		run, ok := reg.Resolve(slug)
		assert.True(t, ok, slug)
		assert.NotNil(t, run, slug)

		item, ok := reg.Item(slug)
		require.True(t, ok, slug)
		assert.Equal(t, slug, item.Slug)
		assert.NotEmpty(t, item.Fields, slug)
	}
}

func TestRegistry_Unknown(t *testing.T) {
	reg := NewRegistry(nil)
	logger := &recordingLogger{}
	reg.SetLogger(logger)

	_, ok := reg.Resolve("crypto-moonshot")
	assert.False(t, ok)
	_, ok = reg.Item("crypto-moonshot")
	assert.False(t, ok)

	_, err := reg.Run("crypto-moonshot", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownCalculator))
	assert.Contains(t, err.Error(), "crypto-moonshot")
	assert.Equal(t, 1, logger.warns)
}

func TestRegistry_ItemIsACopy(t *testing.T) {
	reg := Default()
	item, _ := reg.Item("cash-flow-forecast")
	item.Fields[1].Default.Grid["m1"] = -1
	item.Fields[0].Label = "changed"

	again, _ := reg.Item("cash-flow-forecast")
	assert.Equal(t, 38000.0, again.Fields[1].Default.Grid["m1"])
	assert.Equal(t, "Opening Cash", again.Fields[0].Label)
}

func TestEveryCalculator_DefaultInputs(t *testing.T) {
	reg := Default()
	for _, item := range reg.Items() {
		t.Run(item.Slug, func(t *testing.T) {
			out, err := reg.Run(item.Slug, DefaultInputs(item.Fields))
			require.NoError(t, err)

			assert.NotEmpty(t, out.Summary)
			assert.NotEmpty(t, out.Narrative)
			assert.LessOrEqual(t, len(out.Narrative), 3)
			require.NotNil(t, out.Chart)
			assert.NotEmpty(t, out.Chart.Data)
			assert.NotEmpty(t, out.Chart.Series)
			for _, s := range out.Summary {
				assert.NotEmpty(t, s.Label)
				assert.NotEmpty(t, s.Value)
			}
			for _, row := range out.Chart.Data {
				assert.Contains(t, row, out.Chart.XKey)
				for _, s := range out.Chart.Series {
					assert.IsType(t, float64(0), row[s.Key])
				}
			}
		})
	}
}

func garbageInputs(fields []domain.Field) []domain.Inputs {
	nan := domain.Inputs{}
	words := domain.Inputs{}
	kinds := domain.Inputs{}
	inf := domain.Inputs{}
	for _, f := range fields {
		nan[f.Key] = domain.NumberValue(math.NaN())
		words[f.Key] = domain.StringValue("not a number")
		kinds[f.Key] = domain.BoolValue(true)
		inf[f.Key] = domain.NumberValue(math.Inf(-1))
		if f.Type == domain.FieldMonthGrid {
			kinds[f.Key] = domain.GridValue(domain.MonthGrid{"m1": math.Inf(1), "m7": math.NaN()})
		}
	}
	huge := domain.Inputs{}
	for _, f := range fields {
		huge[f.Key] = domain.NumberValue(1e300)
	}
	return []domain.Inputs{nil, {}, nan, words, kinds, inf, huge}
}

func TestEveryCalculator_GarbageInputs(t *testing.T) {
	reg := Default()
	for _, item := range reg.Items() {
		for i, in := range garbageInputs(item.Fields) {
			assert.NotPanics(t, func() {
				out, err := reg.Run(item.Slug, in)
				require.NoError(t, err)
				assert.NotEmpty(t, out.Summary, "%s case %d", item.Slug, i)
				assert.NotEmpty(t, out.Narrative, "%s case %d", item.Slug, i)

				_, err = json.Marshal(out)
				assert.NoError(t, err, "%s case %d output must serialize", item.Slug, i)
			}, "%s case %d", item.Slug, i)
		}
	}
}

func TestEveryCalculator_IsPure(t *testing.T) {
	reg := Default()
	for _, item := range reg.Items() {
		in := DefaultInputs(item.Fields)
		first, err := reg.Run(item.Slug, in)
		require.NoError(t, err)
		second, err := reg.Run(item.Slug, in)
		require.NoError(t, err)

		a, err := json.Marshal(first)
		require.NoError(t, err)
		b, err := json.Marshal(second)
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b), item.Slug)

		// inputs are left untouched
		assert.Equal(t, DefaultInputs(item.Fields), in, item.Slug)
	}
}

func TestEveryCalculator_Concurrent(t *testing.T) {
	reg := Default()
	want := make(map[string]domain.Output)
	for _, item := range reg.Items() {
		want[item.Slug], _ = reg.Run(item.Slug, DefaultInputs(item.Fields))
	}

	var wg sync.WaitGroup
	for _, item := range reg.Items() {
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func(item domain.CatalogItem) {
				defer wg.Done()
				got, err := reg.Run(item.Slug, DefaultInputs(item.Fields))
				assert.NoError(t, err)
				assert.Equal(t, want[item.Slug], got)
			}(item)
		}
	}
	wg.Wait()
}
