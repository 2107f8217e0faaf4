// Package powerflow: sentinel errors, functional options, and the per-bus
// estimate record exposed to reporters. Defaults follow the historical
// operating practice: swing bus 1 and 0.001 pu mismatch tolerances.

package powerflow

import (
	"errors"

	"github.com/anadorn/loadflow/grid"
)

// Sentinel errors returned by the solver.
var (
	// ErrNilSystem indicates that a nil *grid.System was passed to New.
	ErrNilSystem = errors.New("powerflow: system is nil")

	// ErrBadTolerance indicates a non-positive mismatch tolerance.
	ErrBadTolerance = errors.New("powerflow: tolerance must be positive")

	// ErrNoFreeBuses indicates a system whose every bus is the swing bus,
	// leaving nothing to solve for.
	ErrNoFreeBuses = errors.New("powerflow: no PV or PQ buses to solve")

	// ErrNonconvergent indicates that the Jacobian was singular or fatally
	// ill-conditioned at some iteration (islanded network, degenerate
	// topology). Distinct from "has not converged yet", which is simply
	// HasConverged() == false and is not an error.
	ErrNonconvergent = errors.New("powerflow: jacobian is singular, network cannot converge")
)

// Default solver configuration. All tolerances are per-unit on the system
// power base.
const (
	// DefaultSwingBusNumber designates bus 1 as the reference bus.
	DefaultSwingBusNumber = 1

	// DefaultMaxActivePowerError is the per-unit active mismatch tolerance.
	DefaultMaxActivePowerError = 0.001

	// DefaultMaxReactivePowerError is the per-unit reactive mismatch tolerance.
	DefaultMaxReactivePowerError = 0.001
)

// Options configures a Solver. Fields are set via functional options; zero
// or negative tolerances are rejected by New.
//
// SwingBusNumber        - the bus whose voltage is the fixed reference.
// MaxActivePowerError   - convergence bound for |dP| at every PV/PQ bus (pu).
// MaxReactivePowerError - convergence bound for |dQ| at every PQ bus (pu).
type Options struct {
	SwingBusNumber        int
	MaxActivePowerError   float64
	MaxReactivePowerError float64
}

// Option mutates Options before validation.
type Option func(*Options)

// DefaultOptions returns the documented default configuration.
func DefaultOptions() Options {
	return Options{
		SwingBusNumber:        DefaultSwingBusNumber,
		MaxActivePowerError:   DefaultMaxActivePowerError,
		MaxReactivePowerError: DefaultMaxReactivePowerError,
	}
}

// WithSwingBus designates bus number n as the swing (reference) bus.
func WithSwingBus(n int) Option {
	return func(o *Options) { o.SwingBusNumber = n }
}

// WithActivePowerTolerance sets the per-unit active mismatch bound used by
// HasConverged. Must be positive; validated by New.
func WithActivePowerTolerance(eps float64) Option {
	return func(o *Options) { o.MaxActivePowerError = eps }
}

// WithReactivePowerTolerance sets the per-unit reactive mismatch bound used
// by HasConverged. Must be positive; validated by New.
func WithReactivePowerTolerance(eps float64) Option {
	return func(o *Options) { o.MaxReactivePowerError = eps }
}

// BusEstimate is the per-iteration power estimate for one non-swing bus:
// the net injection computed from the current voltage state and its mismatch
// against the specified value. Estimates are regenerated on every Step and
// the slice returned by Solver.Estimates reflects the most recent iteration.
type BusEstimate struct {
	// BusNumber is the 1-based bus number this estimate belongs to.
	BusNumber int

	// Kind is the bus role (KindPV or KindPQ; swing buses are not estimated).
	Kind grid.BusKind

	// ActivePower and ReactivePower are the estimated net per-unit
	// injections at the current voltage state.
	ActivePower   float64
	ReactivePower float64

	// ActivePowerError is estimate minus specified active injection.
	// Drives the angle corrections for PV and PQ buses.
	ActivePowerError float64

	// ReactivePowerError is estimate minus specified reactive injection.
	// Meaningful for PQ buses only; zero for PV buses.
	ReactivePowerError float64
}
