package finmath

import "github.com/olsonco/calckit/internal/domain"

// MonthLabels are the display names for m1..m12.
var MonthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthKeys are the month-grid keys in calendar order.
var MonthKeys = [12]string{"m1", "m2", "m3", "m4", "m5", "m6", "m7", "m8", "m9", "m10", "m11", "m12"}

// DefaultMonthGrid returns a grid with every month set to value.
func DefaultMonthGrid(value float64) domain.MonthGrid {
	grid := make(domain.MonthGrid, len(MonthKeys))
	for _, key := range MonthKeys {
		grid[key] = value
	}
	return grid
}

// MonthTotals holds per-month values in calendar order and their sum.
type MonthTotals struct {
	Monthly [12]float64 `json:"monthly"`
	Total   float64     `json:"total"`
}

// MonthGridTotals reads the twelve months in order; absent keys count as 0.
func MonthGridTotals(grid domain.MonthGrid) MonthTotals {
	var out MonthTotals
	for i, key := range MonthKeys {
		v := grid[key]
		out.Monthly[i] = v
		out.Total += v
	}
	return out
}

// AnnualizeMonthlyValue scales a monthly figure to a year.
func AnnualizeMonthlyValue(value float64) float64 {
	return value * 12
}

// CashFlowRow is one month of a cash-flow forecast.
type CashFlowRow struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
	Cash    float64 `json:"cash"`
}

// MonthGridToRows pairs revenue and expense grids month by month and keeps
// a running cash balance starting from openingCash.
func MonthGridToRows(revenue, expense domain.MonthGrid, openingCash float64) []CashFlowRow {
	rows := make([]CashFlowRow, 0, len(MonthKeys))
	cash := openingCash
	for i, key := range MonthKeys {
		r, e := revenue[key], expense[key]
		net := r - e
		cash += net
		rows = append(rows, CashFlowRow{
			Month:   MonthLabels[i],
			Revenue: r,
			Expense: e,
			Net:     net,
			Cash:    cash,
		})
	}
	return rows
}
