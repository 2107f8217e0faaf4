// Non-mutating views over a System. External readers (reporters, callers
// inspecting results) receive fresh copies; only the solver holds a mutable
// handle via SetVoltage.

package grid

// Buses returns a copy of the bus collection in index order. Mutating the
// returned slice or its elements does not affect the system.
//
// Complexity: O(N).
func (s *System) Buses() []Bus {
	out := make([]Bus, len(s.buses))
	copy(out, s.buses)

	return out
}

// Lines returns a copy of the line collection in construction order.
//
// Complexity: O(L).
func (s *System) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)

	return out
}
