// Package admittance builds the complex bus-admittance (Y) matrix of a
// transmission network from its per-unit line parameters.
//
// Overview:
//
//	The Y matrix encodes network conductance (G, real part) and susceptance
//	(B, imaginary part) between every bus pair. For a system of N buses,
//	Build produces an N x N gonum CDense where:
//
//	  - Y[i][j], i != j: the negative sum of series admittances (1/Z) of all
//	    lines between bus i+1 and bus j+1. Symmetric by construction: each
//	    line contributes identically to [src][dst] and [dst][src].
//	  - Y[i][i]: for every line incident to bus i+1, its series admittance
//	    plus half its total shunt (line-charging) admittance.
//
//	Build is a pure function of the system: no iteration state, no caching.
//	Rebuilding from the same system yields bit-identical results. The solver
//	computes the matrix once per solve and treats it as read-only input.
//
// Conservation property:
//
//	Every row of Y sums to the total shunt admittance attributed to that bus
//	(the series terms cancel between diagonal and off-diagonals). A network
//	with zero shunt admittance therefore has rows summing to ~0.
//
// Errors (sentinel):
//
//   - ErrNilSystem      - Build received a nil system.
//   - ErrUnknownBus     - a line references a bus number outside 1..N.
//   - ErrZeroImpedance  - a line has exactly zero series impedance, which
//     would divide by zero (a singular line).
//
// Example:
//
//	y, err := admittance.Build(sys)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	g, b := real(y.At(0, 1)), imag(y.At(0, 1))
package admittance
