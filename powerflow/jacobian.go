package powerflow

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// jacobian assembles the full Newton-Raphson Jacobian
//
//	J = | J11 J12 |
//	    | J21 J22 |
//
// directly over the solver's stable index sets: rows/columns of J11 span the
// non-swing buses (angle unknowns), the trailing block spans PQ buses
// (magnitude unknowns). Building over the index sets - instead of building
// full-size matrices and deleting the swing row/column - keeps the swing bus
// out by construction.
//
// Submatrix entries, with t_kj = t_k - t_j and G/B from Y[k][j]:
//
//	J11 = dP/dt: off-diag  V_k V_j (G sin t_kj - B cos t_kj)
//	             diag     -Q_k - V_k^2 B_kk
//	J12 = dP/dV: off-diag  V_k (G cos t_kj + B sin t_kj)
//	             diag      P_k/V_k + G_kk V_k
//	J21 = dQ/dt: off-diag -V_k V_j (G cos t_kj + B sin t_kj)
//	             diag      P_k - G_kk V_k^2
//	J22 = dQ/dV: off-diag  V_k (G sin t_kj - B cos t_kj)
//	             diag      Q_k/V_k - B_kk V_k
//
// P_k and Q_k are the net-injection estimates computed immediately before by
// computeEstimates; jacobian must only run in the Estimated state.
func (s *Solver) jacobian() *mat.Dense {
	buses := s.sys.Buses()
	nAngle := len(s.angleIdx)
	nMag := len(s.magIdx)
	jac := mat.NewDense(nAngle+nMag, nAngle+nMag, nil)

	mags := make([]float64, len(buses))
	angles := make([]float64, len(buses))
	for i, b := range buses {
		mags[i] = cmplx.Abs(b.Voltage)
		angles[i] = cmplx.Phase(b.Voltage)
	}

	// J11 and J21 share their column set (angles over non-swing buses);
	// J12 and J22 share theirs (magnitudes over PQ buses). Each cell reads
	// one admittance entry, so the four blocks are filled in two passes
	// over (row set) x (column set).
	for row, k := range s.angleIdx {
		est := s.estimates[row]
		vk := mags[k]

		for col, j := range s.angleIdx {
			ykj := s.y.At(k, j)
			g, b := real(ykj), imag(ykj)
			if k == j {
				jac.Set(row, col, -est.ReactivePower-vk*vk*b)

				continue
			}
			theta := angles[k] - angles[j]
			jac.Set(row, col, vk*mags[j]*(g*math.Sin(theta)-b*math.Cos(theta)))
		}

		for col, j := range s.magIdx {
			ykj := s.y.At(k, j)
			g, b := real(ykj), imag(ykj)
			if k == j {
				jac.Set(row, nAngle+col, est.ActivePower/vk+g*vk)

				continue
			}
			theta := angles[k] - angles[j]
			jac.Set(row, nAngle+col, vk*(g*math.Cos(theta)+b*math.Sin(theta)))
		}
	}

	for row, k := range s.magIdx {
		est := s.estimates[s.pqPos[row]]
		vk := mags[k]

		for col, j := range s.angleIdx {
			ykj := s.y.At(k, j)
			g, b := real(ykj), imag(ykj)
			if k == j {
				jac.Set(nAngle+row, col, est.ActivePower-g*vk*vk)

				continue
			}
			theta := angles[k] - angles[j]
			jac.Set(nAngle+row, col, -vk*mags[j]*(g*math.Cos(theta)+b*math.Sin(theta)))
		}

		for col, j := range s.magIdx {
			ykj := s.y.At(k, j)
			g, b := real(ykj), imag(ykj)
			if k == j {
				jac.Set(nAngle+row, nAngle+col, est.ReactivePower/vk-b*vk)

				continue
			}
			theta := angles[k] - angles[j]
			jac.Set(nAngle+row, nAngle+col, vk*(g*math.Sin(theta)-b*math.Cos(theta)))
		}
	}

	return jac
}
