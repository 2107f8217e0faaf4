package admittance

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/anadorn/loadflow/grid"
)

// Sentinel errors returned by Build.
var (
	// ErrNilSystem indicates that a nil *grid.System was passed to Build.
	ErrNilSystem = errors.New("admittance: system is nil")

	// ErrUnknownBus indicates that a line references a bus number outside
	// the system's 1..N range.
	ErrUnknownBus = errors.New("admittance: line references unknown bus")

	// ErrZeroImpedance indicates a line with exactly zero series impedance;
	// its series admittance 1/Z is undefined.
	ErrZeroImpedance = errors.New("admittance: line has zero series impedance")
)

// halfShuntDivisor splits a line's total charging admittance between its two
// terminals.
const halfShuntDivisor = 2

// Build computes the N x N bus-admittance matrix for the system.
//
// For each line src-dst with series impedance Z and total shunt admittance
// Ysh, let Ys = 1/Z. Then:
//
//	Y[src][dst] -= Ys      Y[dst][src] -= Ys
//	Y[src][src] += Ys + Ysh/2
//	Y[dst][dst] += Ys + Ysh/2
//
// Multiple calls with the same system are deterministic and independent:
// Build holds no state and never mutates its input.
//
// Validation (in order): nil system (ErrNilSystem), line endpoints within
// 1..N (ErrUnknownBus), nonzero series impedance (ErrZeroImpedance).
// grid.NewSystem already guarantees endpoint validity; Build re-checks so it
// stays safe as a standalone entry point.
//
// Complexity: O(N^2) allocation + O(L) accumulation.
func Build(sys *grid.System) (*mat.CDense, error) {
	if sys == nil {
		return nil, ErrNilSystem
	}

	n := sys.Size()
	y := mat.NewCDense(n, n, nil)

	for _, line := range sys.Lines() {
		src, dst := line.Source-1, line.Destination-1
		if src < 0 || src >= n || dst < 0 || dst >= n {
			return nil, fmt.Errorf("%w: line %d-%d", ErrUnknownBus, line.Source, line.Destination)
		}
		if line.SeriesImpedance == 0 {
			return nil, fmt.Errorf("%w: line %d-%d", ErrZeroImpedance, line.Source, line.Destination)
		}

		series := 1 / line.SeriesImpedance
		shunt := line.ShuntAdmittance / halfShuntDivisor

		// Accumulate rather than assign; symmetry holds because both cells
		// receive the same contribution.
		y.Set(src, dst, y.At(src, dst)-series)
		y.Set(dst, src, y.At(dst, src)-series)
		y.Set(src, src, y.At(src, src)+series+shunt)
		y.Set(dst, dst, y.At(dst, dst)+series+shunt)
	}

	return y, nil
}
