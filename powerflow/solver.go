package powerflow

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/anadorn/loadflow/admittance"
	"github.com/anadorn/loadflow/grid"
)

// Solver owns all Newton-Raphson iteration state for one load-flow solve:
// the admittance matrix (computed once, read-only thereafter), the tagged
// bus roles, the stable index sets the Jacobian is built over, and the most
// recent per-bus estimates. The bus voltage array inside the system is the
// only state Step mutates.
type Solver struct {
	sys   *grid.System
	y     *mat.CDense
	kinds []grid.BusKind

	// angleIdx lists the 0-based indices of all non-swing buses in bus
	// order; row/column k of J11 corresponds to angleIdx[k]. magIdx lists
	// the PQ subset in the same stable order, and pqPos maps a magIdx
	// position back to its position within angleIdx.
	angleIdx []int
	magIdx   []int
	pqPos    []int

	tolP float64
	tolQ float64

	// estimates is regenerated by every Step, aligned with angleIdx.
	// nil until the first Step (the Uninitialized state).
	estimates  []BusEstimate
	iterations int
}

// New validates the configuration and prepares a solver over sys.
//
// Validation (in order):
//  1. sys must be non-nil (ErrNilSystem).
//  2. both tolerances must be positive (ErrBadTolerance).
//  3. the swing designation must match a bus and every bus must classify
//     into exactly one role (grid.ErrUnknownSwingBus, grid.ErrUnclassifiable).
//  4. at least one non-swing bus must exist (ErrNoFreeBuses).
//
// The admittance matrix is computed here, once; topology never changes
// mid-solve, so every later Step reads the same matrix.
func New(sys *grid.System, opts ...Option) (*Solver, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if sys == nil {
		return nil, ErrNilSystem
	}
	if cfg.MaxActivePowerError <= 0 {
		return nil, fmt.Errorf("%w: active %g", ErrBadTolerance, cfg.MaxActivePowerError)
	}
	if cfg.MaxReactivePowerError <= 0 {
		return nil, fmt.Errorf("%w: reactive %g", ErrBadTolerance, cfg.MaxReactivePowerError)
	}

	kinds, err := sys.Classify(cfg.SwingBusNumber)
	if err != nil {
		return nil, err
	}

	y, err := admittance.Build(sys)
	if err != nil {
		return nil, err
	}

	s := &Solver{
		sys:   sys,
		y:     y,
		kinds: kinds,
		tolP:  cfg.MaxActivePowerError,
		tolQ:  cfg.MaxReactivePowerError,
	}

	// Fixed, stable ordering for the whole solve: bus order, swing skipped.
	for i, k := range kinds {
		if k == grid.KindSwing {
			continue
		}
		if k == grid.KindPQ {
			s.magIdx = append(s.magIdx, i)
			s.pqPos = append(s.pqPos, len(s.angleIdx))
		}
		s.angleIdx = append(s.angleIdx, i)
	}
	if len(s.angleIdx) == 0 {
		return nil, ErrNoFreeBuses
	}

	return s, nil
}

// Step executes exactly one Newton-Raphson iteration: estimate, Jacobian,
// linear solve, apply. It mutates the voltage of every non-swing bus, so it
// is not idempotent; each call advances the solution.
//
// The correction system J dx = -[dP; dQ] is solved through an LU
// factorization. If the factorization is singular (islanded network,
// degenerate topology) Step returns ErrNonconvergent and no voltage is
// modified: corrections are applied only after the whole solve succeeds, so
// a failed Step is atomic from the caller's point of view.
func (s *Solver) Step() error {
	s.computeEstimates()

	jac := s.jacobian()

	// Right-hand side: the negated mismatch vector [dP; dQ].
	dim := len(s.angleIdx) + len(s.magIdx)
	rhs := mat.NewVecDense(dim, nil)
	for k, est := range s.estimates {
		rhs.SetVec(k, -est.ActivePowerError)
	}
	for j, p := range s.pqPos {
		rhs.SetVec(len(s.angleIdx)+j, -s.estimates[p].ReactivePowerError)
	}

	var lu mat.LU
	lu.Factorize(jac)
	var dx mat.VecDense
	if err := lu.SolveVecTo(&dx, false, rhs); err != nil {
		return fmt.Errorf("%w: %v", ErrNonconvergent, err)
	}

	s.applyCorrections(&dx)
	s.iterations++

	return nil
}

// applyCorrections updates every non-swing bus voltage from the solved
// correction vector: the first len(angleIdx) entries are angle corrections,
// the remainder magnitude corrections for PQ buses in the same stable order.
// PV bus magnitudes are held at their scheduled value and never change.
func (s *Solver) applyCorrections(dx *mat.VecDense) {
	buses := s.sys.Buses()

	for k, i := range s.angleIdx {
		v := buses[i].Voltage
		magnitude := cmplx.Abs(v)
		angle := cmplx.Phase(v) + dx.AtVec(k)
		// Reconstruct as magnitude * e^(i*angle); magnitude handled below
		// for PQ buses, so stage the rotated value first.
		buses[i].Voltage = cmplx.Rect(magnitude, angle)
	}
	for j, i := range s.magIdx {
		v := buses[i].Voltage
		magnitude := cmplx.Abs(v) + dx.AtVec(len(s.angleIdx)+j)
		angle := cmplx.Phase(v)
		buses[i].Voltage = cmplx.Rect(magnitude, angle)
	}

	// Single write-back pass: all non-swing buses updated together.
	for _, i := range s.angleIdx {
		_ = s.sys.SetVoltage(i+1, buses[i].Voltage)
	}
}

// HasConverged reports whether the most recent estimates satisfy the
// configured tolerances: |dP| <= tolP for every PV and PQ bus and
// |dQ| <= tolQ for every PQ bus. It is a pure predicate over
// already-computed state and returns false before the first Step, when no
// estimate exists yet.
func (s *Solver) HasConverged() bool {
	if s.estimates == nil {
		return false
	}

	for _, est := range s.estimates {
		if math.Abs(est.ActivePowerError) > s.tolP {
			return false
		}
		if est.Kind == grid.KindPQ && math.Abs(est.ReactivePowerError) > s.tolQ {
			return false
		}
	}

	return true
}

// Estimates returns a copy of the per-bus estimates from the most recent
// Step, in non-swing bus order. Nil before the first Step.
func (s *Solver) Estimates() []BusEstimate {
	if s.estimates == nil {
		return nil
	}
	out := make([]BusEstimate, len(s.estimates))
	copy(out, s.estimates)

	return out
}

// Roles returns a copy of the tagged bus roles in bus order.
func (s *Solver) Roles() []grid.BusKind {
	out := make([]grid.BusKind, len(s.kinds))
	copy(out, s.kinds)

	return out
}

// Iterations returns the number of completed Step calls.
func (s *Solver) Iterations() int { return s.iterations }
