package finmath

import (
	"fmt"
	"math"
	"sort"

	"github.com/olsonco/calckit/internal/domain"
)

// PayoffMethod selects which debt receives the budget left after minimums.
type PayoffMethod string

const (
	// Avalanche targets the highest APR first.
	Avalanche PayoffMethod = "avalanche"
	// Snowball targets the smallest balance first.
	Snowball PayoffMethod = "snowball"
)

// DefaultMaxPayoffMonths caps a payoff simulation at 50 years.
const DefaultMaxPayoffMonths = 600

// DebtPayoffArgs configures DebtPayoffSchedule. MaxMonths <= 0 uses
// DefaultMaxPayoffMonths.
type DebtPayoffArgs struct {
	Debts         []domain.DebtInput
	MonthlyBudget float64
	Method        PayoffMethod
	MaxMonths     int
}

// BalancePoint is the combined balance after a month's scheduled payments.
type BalancePoint struct {
	Month        string  `json:"month"`
	TotalBalance float64 `json:"totalBalance"`
}

// DebtPayoffResult reports how long the plan takes. MonthsToDebtFree equals
// the month cap when the budget never clears the balances.
type DebtPayoffResult struct {
	MonthsToDebtFree int            `json:"monthsToDebtFree"`
	History          []BalancePoint `json:"history"`
}

// DebtPayoffSchedule simulates paying down debts month by month.
//
// Each month: interest accrues on positive balances, minimums are paid
// (never more than the balance), whatever the budget has left after the
// minimums goes to the target debt, the total is recorded, and any
// remainder is swept across the other debts in input order.
func DebtPayoffSchedule(args DebtPayoffArgs) DebtPayoffResult {
	maxMonths := args.MaxMonths
	if maxMonths <= 0 {
		maxMonths = DefaultMaxPayoffMonths
	}

	debts := make([]*domain.DebtInput, 0, len(args.Debts))
	for _, d := range args.Debts {
		if d.Balance > 0 {
			d := d
			debts = append(debts, &d)
		}
	}

	var history []BalancePoint
	month := 0

	for month < maxMonths && anyOutstanding(debts) {
		month++

		for _, d := range debts {
			if d.Balance > 0 {
				d.Balance += d.Balance * (d.APR / 100 / 12)
			}
		}

		active := outstanding(debts)
		minimumTotal := 0.0
		for _, d := range active {
			minimumTotal += d.MinimumPayment
		}
		remaining := math.Max(0, args.MonthlyBudget-minimumTotal)

		for _, d := range active {
			d.Balance -= math.Min(d.Balance, d.MinimumPayment)
		}

		if target := pickTarget(active, args.Method); target != nil && remaining > 0 {
			extra := math.Min(target.Balance, remaining)
			target.Balance -= extra
			remaining -= extra
		}

		history = append(history, BalancePoint{
			Month:        fmt.Sprintf("M%d", month),
			TotalBalance: totalBalance(debts),
		})

		for _, d := range outstanding(debts) {
			if remaining <= 0 {
				break
			}
			extra := math.Min(d.Balance, remaining)
			d.Balance -= extra
			remaining -= extra
		}
	}

	return DebtPayoffResult{MonthsToDebtFree: month, History: history}
}

func pickTarget(active []*domain.DebtInput, method PayoffMethod) *domain.DebtInput {
	candidates := outstanding(active)
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if method == Avalanche {
			return candidates[i].APR > candidates[j].APR
		}
		return candidates[i].Balance < candidates[j].Balance
	})
	return candidates[0]
}

func outstanding(debts []*domain.DebtInput) []*domain.DebtInput {
	var out []*domain.DebtInput
	for _, d := range debts {
		if d.Balance > 0 {
			out = append(out, d)
		}
	}
	return out
}

func anyOutstanding(debts []*domain.DebtInput) bool {
	for _, d := range debts {
		if d.Balance > 0 {
			return true
		}
	}
	return false
}

func totalBalance(debts []*domain.DebtInput) float64 {
	total := 0.0
	for _, d := range debts {
		total += math.Max(0, d.Balance)
	}
	return total
}
