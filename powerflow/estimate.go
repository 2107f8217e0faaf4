package powerflow

import (
	"math"
	"math/cmplx"

	"github.com/anadorn/loadflow/grid"
)

// computeEstimates regenerates the per-bus power estimates from the current
// voltage state. For each non-swing bus k:
//
//	P_k = sum_i V_k V_i (G_ki cos t_ki + B_ki sin t_ki)
//	Q_k = sum_i V_k V_i (G_ki sin t_ki - B_ki cos t_ki)
//
// both expressed as net injection at k (generation positive, load negative).
// The mismatch is estimate minus specified, where specified active power is
// injected minus consumed, and specified reactive power is the negated
// consumption. Reactive mismatches are meaningful for PQ buses only: a PV
// bus holds its magnitude, so its reactive injection floats.
//
// Estimates supersede the previous iteration's slice entirely; nothing is
// carried over. Complexity: O(N^2) over the dense admittance matrix.
func (s *Solver) computeEstimates() {
	buses := s.sys.Buses()

	// Magnitudes and angles are reused across the k/i double loop.
	n := len(buses)
	mags := make([]float64, n)
	angles := make([]float64, n)
	for i, b := range buses {
		mags[i] = cmplx.Abs(b.Voltage)
		angles[i] = cmplx.Phase(b.Voltage)
	}

	estimates := make([]BusEstimate, 0, len(s.angleIdx))
	for _, k := range s.angleIdx {
		var p, q float64
		for i := 0; i < n; i++ {
			yki := s.y.At(k, i)
			g, b := real(yki), imag(yki)
			theta := angles[k] - angles[i]
			p += mags[k] * mags[i] * (g*math.Cos(theta) + b*math.Sin(theta))
			q += mags[k] * mags[i] * (g*math.Sin(theta) - b*math.Cos(theta))
		}

		bus := buses[k]
		est := BusEstimate{
			BusNumber:     bus.Number,
			Kind:          s.kinds[k],
			ActivePower:   p,
			ReactivePower: q,
		}
		est.ActivePowerError = p - (bus.ActivePowerInjected - bus.ActivePowerConsumed)
		if s.kinds[k] == grid.KindPQ {
			est.ReactivePowerError = q - (-bus.ReactivePowerConsumed)
		}
		estimates = append(estimates, est)
	}

	s.estimates = estimates
}
