package calculators

import (
	"testing"

	"github.com/olsonco/calckit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComparisonRows_All(t *testing.T) {
	rows := ComparisonRows(Default())
	require.Len(t, rows, len(allSlugs))
	for i, row := range rows {
		assert.Equal(t, allSlugs[i], row.Slug)
		assert.NotEmpty(t, row.Title)
		assert.NotEmpty(t, row.BestFor)
		assert.NotEmpty(t, row.PrimaryOutcome)
		assert.Contains(t, []string{"Light", "Standard", "Advanced"}, row.InputDepth)
		assert.Contains(t, []string{"1-2 min", "2-4 min", "4-6 min", "5-8 min"}, row.EstimatedTime)
	}
}

func TestComparisonRows_Selected(t *testing.T) {
	rows := ComparisonRows(Default(), "cash-flow-forecast", "nope", "margin-markup-calculator", "rent-vs-buy")
	require.Len(t, rows, 3)

	assert.Equal(t, "Advanced", rows[0].InputDepth)
	assert.Equal(t, "5-8 min", rows[0].EstimatedTime)
	assert.Equal(t, domain.CategoryBusiness, rows[0].Category)

	assert.Equal(t, "Light", rows[1].InputDepth)
	assert.Equal(t, "1-2 min", rows[1].EstimatedTime)
	assert.Equal(t, "Fast pricing quality checks", rows[1].BestFor)

	assert.Equal(t, "Advanced", rows[2].InputDepth)
	assert.Equal(t, "4-6 min", rows[2].EstimatedTime)
}

func TestInputDepth(t *testing.T) {
	fields := func(n int) []domain.Field { return make([]domain.Field, n) }
	assert.Equal(t, "Light", inputDepth(fields(3)))
	assert.Equal(t, "Standard", inputDepth(fields(4)))
	assert.Equal(t, "Standard", inputDepth(fields(6)))
	assert.Equal(t, "Advanced", inputDepth(fields(7)))
	assert.Equal(t, "Advanced", inputDepth([]domain.Field{{Type: domain.FieldMonthGrid}, {}, {}}))
}
