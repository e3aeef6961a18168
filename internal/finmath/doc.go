// Package finmath contains the pure money primitives shared by the
// calculators: loan amortization, break-even, GST remittance, debt payoff
// simulation, future-value projection and month-grid aggregation.
//
// Values are plain float64 dollars. Nothing is rounded here; rounding to
// display precision happens when results are formatted.
package finmath

// MaxSimulationMonths bounds every month-by-month loop so that absurd
// horizons supplied through inputs cannot stall a caller.
const MaxSimulationMonths = 1200
