// Package report renders solved networks for human review: tabulated bus
// voltages, line power flows with rating checks, the dominant remaining
// mismatch, swing bus production, and a convergence history plot.
//
// The tabular reports write aligned text to any io.Writer and take a solved
// grid.System plus the MVA base used to scale per-unit quantities back to
// engineering units. Report functions never mutate the system.
//
// ConvergencePlot saves a semilog-style chart of the worst mismatch per
// iteration, which is the quickest way to spot a diverging case.
package report
