package report

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/cmplx"
	"text/tabwriter"

	"github.com/anadorn/loadflow/admittance"
	"github.com/anadorn/loadflow/grid"
	"github.com/anadorn/loadflow/powerflow"
)

// Sentinel errors for report inputs.
var (
	// ErrNilSystem indicates a nil network.
	ErrNilSystem = errors.New("report: nil system")

	// ErrNoEstimates indicates an empty estimate slice, typically a solver
	// that has not stepped yet.
	ErrNoEstimates = errors.New("report: no estimates")
)

const degreesPerRadian = 180 / math.Pi

// BusVoltages writes one row per bus with the solved voltage magnitude in
// per-unit and the angle in degrees.
func BusVoltages(w io.Writer, sys *grid.System) error {
	if sys == nil {
		return ErrNilSystem
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Bus\tVoltage (pu)\tAngle (deg)\t")
	for _, bus := range sys.Buses() {
		fmt.Fprintf(tw, "%d\t%.4f\t%.3f\t\n",
			bus.Number, cmplx.Abs(bus.Voltage), cmplx.Phase(bus.Voltage)*degreesPerRadian)
	}

	return tw.Flush()
}

// LinePowers writes the sending-end power flow of every line, scaled to
// engineering units on powerBaseMVA. A line loaded above its rating is
// marked OVER; unrated lines (MaxPower zero) are never marked.
func LinePowers(w io.Writer, sys *grid.System, powerBaseMVA float64) error {
	if sys == nil {
		return ErrNilSystem
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "From\tTo\tP (MW)\tQ (Mvar)\tS (MVA)\tRating (MVA)\t\t")
	for _, line := range sys.Lines() {
		s := sendingEndPower(sys, line) * complex(powerBaseMVA, 0)
		apparent := cmplx.Abs(s)

		mark := ""
		if line.MaxPower > 0 && apparent > line.MaxPower {
			mark = "OVER"
		}
		fmt.Fprintf(tw, "%d\t%d\t%.2f\t%.2f\t%.2f\t%.1f\t%s\t\n",
			line.Source, line.Destination, real(s), imag(s), apparent, line.MaxPower, mark)
	}

	return tw.Flush()
}

// sendingEndPower returns the complex power in per-unit entering the line at
// its source terminal, including the source half of the charging admittance.
func sendingEndPower(sys *grid.System, line grid.Line) complex128 {
	vs, _ := sys.Voltage(line.Source)
	vd, _ := sys.Voltage(line.Destination)

	series := 1 / line.SeriesImpedance
	shunt := line.ShuntAdmittance / 2
	current := (vs-vd)*series + vs*shunt

	return vs * cmplx.Conj(current)
}

// LargestMismatch writes the worst remaining active and reactive power
// mismatches across the network, in engineering units, with the iteration
// count that produced them.
func LargestMismatch(w io.Writer, estimates []powerflow.BusEstimate, powerBaseMVA float64, iteration int) error {
	if len(estimates) == 0 {
		return ErrNoEstimates
	}

	worstP, worstQ := estimates[0], estimates[0]
	for _, est := range estimates[1:] {
		if math.Abs(est.ActivePowerError) > math.Abs(worstP.ActivePowerError) {
			worstP = est
		}
		if math.Abs(est.ReactivePowerError) > math.Abs(worstQ.ReactivePowerError) {
			worstQ = est
		}
	}

	fmt.Fprintf(w, "After %d iteration(s): worst ΔP %.4f MW at bus %d, worst ΔQ %.4f Mvar at bus %d\n",
		iteration,
		worstP.ActivePowerError*powerBaseMVA, worstP.BusNumber,
		worstQ.ReactivePowerError*powerBaseMVA, worstQ.BusNumber)

	return nil
}

// SwingPower writes the active and reactive power the swing bus must
// produce to balance the solved network.
func SwingPower(w io.Writer, sys *grid.System, swingNumber int, powerBaseMVA float64) error {
	if sys == nil {
		return ErrNilSystem
	}

	y, err := admittance.Build(sys)
	if err != nil {
		return err
	}
	if _, ok := sys.Bus(swingNumber); !ok {
		return grid.ErrUnknownBus
	}

	row := swingNumber - 1
	var injected complex128
	for i := 0; i < sys.Size(); i++ {
		bus, _ := sys.Bus(i + 1)
		injected += y.At(row, i) * bus.Voltage
	}
	swing, _ := sys.Bus(swingNumber)
	s := swing.Voltage * cmplx.Conj(injected) * complex(powerBaseMVA, 0)

	fmt.Fprintf(w, "Swing bus %d produces %.2f MW and %.2f Mvar\n", swingNumber, real(s), imag(s))

	return nil
}
