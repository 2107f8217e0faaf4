package grid

import "errors"

// Sentinel errors for system construction and classification.
var (
	// ErrNoBuses indicates that a System was constructed with an empty bus list.
	ErrNoBuses = errors.New("grid: system has no buses")

	// ErrBusNumbering indicates that bus numbers do not form 1..N without gaps.
	ErrBusNumbering = errors.New("grid: bus numbers must be exactly 1..N")

	// ErrDuplicateBus indicates that two buses share the same number.
	ErrDuplicateBus = errors.New("grid: duplicate bus number")

	// ErrUnknownBus indicates that a line references a bus number that does
	// not exist in the system.
	ErrUnknownBus = errors.New("grid: line references unknown bus")

	// ErrDuplicateLine indicates that two lines share the same unordered
	// (source, destination) pair.
	ErrDuplicateLine = errors.New("grid: duplicate line between bus pair")

	// ErrSelfLoopLine indicates that a line connects a bus to itself.
	ErrSelfLoopLine = errors.New("grid: line endpoints must differ")

	// ErrUnknownSwingBus indicates that the designated swing bus number does
	// not match any bus in the system.
	ErrUnknownSwingBus = errors.New("grid: swing bus not found in system")

	// ErrUnclassifiable indicates a non-swing bus whose power quantities are
	// all zero, so it is neither a PV nor a PQ bus.
	ErrUnclassifiable = errors.New("grid: bus cannot be classified as PV or PQ")
)

// BusKind is the explicit, tagged bus role used throughout a solve.
//
// KindSwing  - the reference bus: voltage magnitude and angle are fixed for
// the whole solve and the power injection is the solver's output.
// KindPV     - generator bus: active power injection and voltage magnitude
// are fixed, the angle is unknown.
// KindPQ     - load bus: active and reactive consumption are fixed, both
// voltage magnitude and angle are unknown.
type BusKind uint8

const (
	// KindUnknown is the zero value; it never appears in a classified system.
	KindUnknown BusKind = iota

	// KindSwing marks the single reference bus.
	KindSwing

	// KindPV marks a generator bus.
	KindPV

	// KindPQ marks a load bus.
	KindPQ
)

// String returns the conventional short name of the bus role.
func (k BusKind) String() string {
	switch k {
	case KindSwing:
		return "SWING"
	case KindPV:
		return "PV"
	case KindPQ:
		return "PQ"
	default:
		return "UNKNOWN"
	}
}

// Bus is a single bus in the system. All power quantities are per-unit on
// the system power base. Number is fixed at construction and unique within
// a System. Voltage is the only field mutated after construction, and only
// via System.SetVoltage.
type Bus struct {
	// Number is the 1-based bus number.
	Number int

	// ActivePowerConsumed is the per-unit active power consumed at this bus.
	ActivePowerConsumed float64

	// ReactivePowerConsumed is the per-unit reactive power consumed at this bus.
	ReactivePowerConsumed float64

	// ActivePowerInjected is the per-unit active power generated at this bus.
	ActivePowerInjected float64

	// Voltage is the complex per-unit voltage at this bus. For the swing bus
	// it is the fixed reference; for all other buses it is the iterate.
	Voltage complex128
}

// Line is a transmission line between two buses. Lines are immutable once
// the System is built. The (Source, Destination) pair is unordered: a line
// 2-5 is the same line as 5-2.
type Line struct {
	// Source and Destination are the terminal bus numbers.
	Source      int
	Destination int

	// SeriesImpedance is the per-unit distributed (series) impedance.
	// It must be nonzero; the admittance builder rejects zero impedances.
	SeriesImpedance complex128

	// ShuntAdmittance is the total per-unit line-charging admittance
	// (typically j*B). Half is attributed to each terminal when the
	// admittance matrix is built. May be zero.
	ShuntAdmittance complex128

	// MaxPower is the optional apparent-power rating in MVA; zero means the
	// line is unrated.
	MaxPower float64
}
