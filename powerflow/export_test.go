package powerflow

import "gonum.org/v1/gonum/mat"

// estimateForTest runs one estimation pass and returns the fresh estimates.
func (s *Solver) estimateForTest() []BusEstimate {
	s.computeEstimates()

	return s.Estimates()
}

// jacobianForTest runs estimation and returns the assembled Jacobian.
func (s *Solver) jacobianForTest() *mat.Dense {
	s.computeEstimates()

	return s.jacobian()
}

// EstimateForTest and JacobianForTest re-export the private pipeline stages
// for white-box assertions in powerflow_test.
var (
	EstimateForTest = (*Solver).estimateForTest
	JacobianForTest = (*Solver).jacobianForTest
)
