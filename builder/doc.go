// Package builder constructs grid.System values from external network
// descriptions: a fluent programmatic builder, a JSON document format, and
// a pair of CSV tables.
//
// Overview:
//
//	All input power quantities are engineering units (MW, Mvar, MVA); the
//	builder converts them to per-unit on the configured power base before
//	handing them to grid.NewSystem. Line parameters (resistance, reactance,
//	susceptance) are already per-unit in every supported format, matching
//	the usual line-data table convention. A bus with no specified voltage
//	is seeded with the flat-start voltage (1.0 at angle 0 by default).
//
// Formats:
//
//   - JSON: one document with power_base_mva, a bus list, and a line list.
//     A positive power_base_mva in the document overrides the configured
//     base, so a network file travels with its own base.
//   - CSV: two tables with header rows, mirroring the classic worksheet
//     layout - buses (number, active_load_mw, reactive_load_mvar,
//     active_generation_mw, voltage_pu) and lines (source, destination,
//     resistance_pu, reactance_pu, susceptance_pu, max_power_mva).
//     Empty cells read as zero.
//
// Validation is delegated to grid.NewSystem; the builder adds only the
// format-level failures (ErrBadPowerBase, ErrBadRecord).
//
// Example:
//
//	sys, err := builder.New(builder.WithPowerBase(100)).
//	    AddBus(1, 0, 0, 0, 1.0).
//	    AddBus(2, 40, 20, 0, 0).
//	    AddLine(1, 2, 0.05, 0.11, 0.02, 0).
//	    Build()
package builder
