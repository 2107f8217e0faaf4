// Package grid defines the network model for load-flow analysis: the Bus,
// Line and System types, bus-role classification, and read-only views.
//
// Overview:
//
//   - A Bus carries its 1-based number, per-unit power consumption and
//     generation, and a complex per-unit voltage. Voltage is the only field
//     that changes after construction, and only through System.SetVoltage -
//     by contract the power-flow solver is the sole caller.
//   - A Line connects an unordered pair of bus numbers and carries the series
//     impedance, the total shunt (line-charging) admittance, and an optional
//     apparent-power rating.
//   - A System is an ordered collection of buses plus a collection of lines.
//     Bus order defines every matrix index used downstream: bus number k
//     always lives at index k-1.
//
// Invariants (enforced by NewSystem):
//
//   - Bus numbers are exactly 1..N with no gaps and no duplicates.
//   - Every line references bus numbers present in the system.
//   - No line connects a bus to itself.
//   - No two lines share the same unordered (source, destination) pair.
//
// Roles:
//
//	Each bus is classified into exactly one role relative to a designated
//	swing bus: Swing (fixed voltage, free power), PV (fixed injection and
//	magnitude), or PQ (fixed consumption, free voltage). Classification is
//	performed once per solve by System.Classify and stored by the solver as
//	an explicit tag; it is never re-derived mid-iteration.
//
// Errors (sentinel):
//
//   - ErrNoBuses          - the system has no buses.
//   - ErrBusNumbering     - bus numbers are not exactly 1..N.
//   - ErrDuplicateBus     - two buses share a number.
//   - ErrUnknownBus       - a line references a bus number not in the system.
//   - ErrDuplicateLine    - two lines share the same unordered bus pair.
//   - ErrSelfLoopLine     - a line connects a bus to itself.
//   - ErrUnknownSwingBus  - Classify was given a number matching no bus.
//   - ErrUnclassifiable   - a non-swing bus has no nonzero quantity to
//     classify it as PV or PQ.
//
// All sentinels are matchable with errors.Is; wrapped forms add the offending
// bus or line pair.
package grid
