package grid

import "fmt"

// System is an ordered collection of buses and a collection of lines.
// Bus order defines the matrix indices used by the admittance builder and
// the solver: bus number k lives at index k-1.
//
// The System owns its bus storage: NewSystem copies the slices it is given,
// and the accessor methods return fresh copies, so no caller can alias the
// internal state. The only mutation a System permits after construction is
// SetVoltage, which by contract belongs to the power-flow solver.
type System struct {
	buses []Bus
	lines []Line
}

// NewSystem validates and builds a System from buses and lines.
//
// Validation (in order):
//  1. buses must be non-empty (ErrNoBuses).
//  2. bus numbers must be unique (ErrDuplicateBus) and exactly 1..N
//     (ErrBusNumbering); buses are stored sorted by number.
//  3. every line must connect two distinct (ErrSelfLoopLine), known
//     (ErrUnknownBus) buses, and no unordered pair may repeat
//     (ErrDuplicateLine).
//
// The input slices are copied; the caller keeps ownership of its own data.
//
// Complexity: O(N + L) time, O(N + L) space.
func NewSystem(buses []Bus, lines []Line) (*System, error) {
	if len(buses) == 0 {
		return nil, ErrNoBuses
	}

	// Place each bus at index number-1, detecting duplicates and gaps in
	// one pass. This also normalizes any caller-side ordering.
	n := len(buses)
	ordered := make([]Bus, n)
	seen := make([]bool, n)
	for _, b := range buses {
		if b.Number < 1 || b.Number > n {
			return nil, fmt.Errorf("%w: bus %d with %d buses", ErrBusNumbering, b.Number, n)
		}
		if seen[b.Number-1] {
			return nil, fmt.Errorf("%w: bus %d", ErrDuplicateBus, b.Number)
		}
		seen[b.Number-1] = true
		ordered[b.Number-1] = b
	}

	// Validate lines against the bus set and reject duplicate pairs.
	// The pair key is order-independent: (min, max).
	type pair struct{ lo, hi int }
	pairs := make(map[pair]struct{}, len(lines))
	copied := make([]Line, len(lines))
	for i, l := range lines {
		if l.Source == l.Destination {
			return nil, fmt.Errorf("%w: line %d-%d", ErrSelfLoopLine, l.Source, l.Destination)
		}
		if l.Source < 1 || l.Source > n {
			return nil, fmt.Errorf("%w: line %d-%d references bus %d", ErrUnknownBus, l.Source, l.Destination, l.Source)
		}
		if l.Destination < 1 || l.Destination > n {
			return nil, fmt.Errorf("%w: line %d-%d references bus %d", ErrUnknownBus, l.Source, l.Destination, l.Destination)
		}
		key := pair{lo: l.Source, hi: l.Destination}
		if key.lo > key.hi {
			key.lo, key.hi = key.hi, key.lo
		}
		if _, dup := pairs[key]; dup {
			return nil, fmt.Errorf("%w: %d-%d", ErrDuplicateLine, key.lo, key.hi)
		}
		pairs[key] = struct{}{}
		copied[i] = l
	}

	return &System{buses: ordered, lines: copied}, nil
}

// Size returns the number of buses in the system.
func (s *System) Size() int { return len(s.buses) }

// Bus returns the bus with the given number, or false if the number is out
// of range. The returned Bus is a copy; mutating it does not affect the
// system.
func (s *System) Bus(number int) (Bus, bool) {
	if number < 1 || number > len(s.buses) {
		return Bus{}, false
	}

	return s.buses[number-1], true
}

// Voltage returns the current voltage of bus number, or false if the number
// is out of range.
func (s *System) Voltage(number int) (complex128, bool) {
	b, ok := s.Bus(number)

	return b.Voltage, ok
}

// SetVoltage replaces the voltage of bus number. It is the single mutation a
// System allows after construction and is reserved for the power-flow
// solver; reporting code must treat the system as read-only.
func (s *System) SetVoltage(number int, v complex128) error {
	if number < 1 || number > len(s.buses) {
		return fmt.Errorf("%w: bus %d", ErrUnknownBus, number)
	}
	s.buses[number-1].Voltage = v

	return nil
}

// Classify derives the role of every bus relative to swingNumber and returns
// the roles in bus order. Classification is intentionally explicit and
// one-shot: callers (the solver) store the result and never re-derive roles
// during iteration.
//
// Rules, applied in order per bus:
//  1. the bus numbered swingNumber is KindSwing;
//  2. a bus with nonzero active injection is KindPV;
//  3. a bus with nonzero active or reactive consumption is KindPQ;
//  4. anything else is unclassifiable (ErrUnclassifiable).
//
// Returns ErrUnknownSwingBus if swingNumber matches no bus. Bus numbers are
// unique by construction, so exactly one bus is ever tagged KindSwing.
func (s *System) Classify(swingNumber int) ([]BusKind, error) {
	if swingNumber < 1 || swingNumber > len(s.buses) {
		return nil, fmt.Errorf("%w: bus %d", ErrUnknownSwingBus, swingNumber)
	}

	kinds := make([]BusKind, len(s.buses))
	for i, b := range s.buses {
		switch {
		case b.Number == swingNumber:
			kinds[i] = KindSwing
		case b.ActivePowerInjected != 0:
			kinds[i] = KindPV
		case b.ActivePowerConsumed != 0 || b.ReactivePowerConsumed != 0:
			kinds[i] = KindPQ
		default:
			return nil, fmt.Errorf("%w: bus %d", ErrUnclassifiable, b.Number)
		}
	}

	return kinds, nil
}
