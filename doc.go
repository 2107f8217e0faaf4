// Package loadflow is a balanced, positive-sequence load-flow toolkit:
// it computes the steady-state operating point of a transmission network,
// the complex voltage at every bus, from per-unit bus and line data.
//
// What is loadflow?
//
//	A small, deterministic library that brings together:
//		- grid:       bus, line and system primitives with per-unit semantics
//		- admittance: complex bus-admittance (Y) matrix construction
//		- powerflow:  the Newton-Raphson power-flow solver
//		- builder:    JSON and CSV network builders (MW/Mvar to per-unit)
//		- report:     tabular voltage, line-power and mismatch reports
//
// Why choose loadflow?
//
//   - Explicit semantics - bus roles are tagged once, never re-derived per iteration
//   - Caller-driven iteration - Step/HasConverged, no hidden loops or timers
//   - Sentinel errors - every failure is matchable with errors.Is
//   - gonum under the hood - dense complex Y-bus and LU-factorized corrections
//
// The solver is organized as an explicit state machine: construct it with a
// system and a swing-bus designation, then call Step until HasConverged
// reports that every power mismatch is inside the configured tolerance.
//
// Quick example:
//
//	sys, _ := grid.NewSystem(buses, lines)
//	solver, err := powerflow.New(sys, powerflow.WithSwingBus(1))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for !solver.HasConverged() {
//	    if err := solver.Step(); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// All quantities are per-unit on a caller-supplied power base; conversion to
// MW, Mvar and volts is a presentation concern owned by builder and report.
package loadflow
