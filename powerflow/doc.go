// Package powerflow implements the Newton-Raphson power-flow solver: the
// iterative procedure that determines the complex voltage at every bus of a
// transmission network from the specified power injections.
//
// Overview:
//
//	The power-balance equations at each bus are nonlinear in the voltage
//	magnitudes and angles. Newton-Raphson linearizes them around the current
//	voltage estimate, solves the resulting dense linear system for voltage
//	corrections, applies the corrections, and repeats until every power
//	mismatch falls below the configured tolerance.
//
// State machine:
//
//	Uninitialized -> Estimated -> Corrected -> Estimated -> ...
//
//	New validates the system, classifies every bus exactly once, and builds
//	the admittance matrix (Uninitialized). Each Step computes fresh per-bus
//	estimates and mismatches (Estimated), then solves and applies voltage
//	corrections (Corrected). The solve terminates when HasConverged reports
//	that the Estimated-state mismatches are all inside tolerance.
//
// Algorithm per Step:
//
//  1. Estimation. For every non-swing bus k, the net injected power from
//     the current voltages:
//     P_k = sum_i V_k V_i (G_ki cos t_ki + B_ki sin t_ki)
//     Q_k = sum_i V_k V_i (G_ki sin t_ki - B_ki cos t_ki)
//     with t_ki = t_k - t_i and G/B the real/imag parts of Y[k][i].
//     Mismatch = estimate - specified (specified = injected - consumed).
//  2. Jacobian. Four submatrices of partial derivatives assembled directly
//     over the non-swing index set (angles) and PQ index set (magnitudes);
//     the swing bus contributes no rows or columns.
//  3. Correction. Solve J dx = -[dP; dQ] via LU factorization (never an
//     explicit inverse). A singular factorization surfaces ErrNonconvergent
//     and leaves every voltage untouched.
//  4. Apply. Angle corrections for all non-swing buses, magnitude
//     corrections for PQ buses only; PV magnitudes stay fixed. The swing
//     bus voltage is never modified.
//
// Concurrency and resources:
//
//	A Solver is single-threaded and performs no I/O. The caller drives
//	iteration explicitly; there is no internal loop, timer, or iteration
//	cap. Convergence is not guaranteed for every network, so callers should
//	bound their own Step loop.
//
// Errors (sentinel):
//
//   - ErrNilSystem              - New received a nil system.
//   - ErrBadTolerance           - a configured tolerance is not positive.
//   - ErrNoFreeBuses            - nothing to solve (every bus is the swing).
//   - grid.ErrUnknownSwingBus   - the swing designation matches no bus.
//   - grid.ErrUnclassifiable    - a bus fits no role.
//   - admittance sentinels      - propagated from the Y-matrix build.
//   - ErrNonconvergent          - singular Jacobian during a Step.
//
// Example usage:
//
//	solver, err := powerflow.New(sys,
//	    powerflow.WithSwingBus(1),
//	    powerflow.WithActivePowerTolerance(0.001),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for i := 0; i < maxIterations && !solver.HasConverged(); i++ {
//	    if err = solver.Step(); err != nil {
//	        log.Fatal(err)
//	    }
//	}
package powerflow
