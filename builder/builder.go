package builder

import (
	"errors"

	"github.com/anadorn/loadflow/grid"
)

// Sentinel errors for network construction from external input.
var (
	// ErrBadPowerBase indicates a non-positive MVA power base.
	ErrBadPowerBase = errors.New("builder: power base must be positive")

	// ErrBadRecord indicates a malformed row in a tabular input.
	ErrBadRecord = errors.New("builder: malformed input record")
)

// Default builder configuration.
const (
	// DefaultPowerBaseMVA is the conventional 100 MVA system base.
	DefaultPowerBaseMVA = 100.0
)

// DefaultFlatStart seeds unknown voltages at 1.0 pu, zero angle.
var DefaultFlatStart = complex(1, 0)

// Options configures unit conversion and voltage seeding.
//
// PowerBaseMVA - the apparent-power base used to convert MW/Mvar to pu.
// FlatStart    - the complex voltage assigned to buses with no specified
// voltage.
type Options struct {
	PowerBaseMVA float64
	FlatStart    complex128
}

// Option mutates Options before validation.
type Option func(*Options)

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{PowerBaseMVA: DefaultPowerBaseMVA, FlatStart: DefaultFlatStart}
}

// WithPowerBase sets the MVA base for unit conversion. Must be positive;
// validated by Build and the loaders.
func WithPowerBase(mva float64) Option {
	return func(o *Options) { o.PowerBaseMVA = mva }
}

// WithFlatStart sets the seed voltage for buses without a specified voltage.
func WithFlatStart(v complex128) Option {
	return func(o *Options) { o.FlatStart = v }
}

// Builder accumulates buses and lines in engineering units and converts
// them to a validated grid.System on Build. Methods chain; validation is
// deferred so a whole network can be described before the first error check.
type Builder struct {
	opts  Options
	buses []grid.Bus
	lines []grid.Line
}

// New returns an empty Builder with the given configuration.
func New(opts ...Option) *Builder {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Builder{opts: cfg}
}

// AddBus appends a bus. Load and generation are MW/Mvar on the configured
// base; voltagePU of zero means "unspecified" and seeds the flat-start
// voltage.
func (b *Builder) AddBus(number int, loadMW, loadMvar, generationMW, voltagePU float64) *Builder {
	voltage := b.opts.FlatStart
	if voltagePU != 0 {
		voltage = complex(voltagePU, 0)
	}
	b.buses = append(b.buses, grid.Bus{
		Number:                number,
		ActivePowerConsumed:   loadMW / b.opts.PowerBaseMVA,
		ReactivePowerConsumed: loadMvar / b.opts.PowerBaseMVA,
		ActivePowerInjected:   generationMW / b.opts.PowerBaseMVA,
		Voltage:               voltage,
	})

	return b
}

// AddLine appends a line. Resistance, reactance and total charging
// susceptance are per-unit; maxPowerMVA of zero means unrated.
func (b *Builder) AddLine(source, destination int, resistancePU, reactancePU, susceptancePU, maxPowerMVA float64) *Builder {
	b.lines = append(b.lines, grid.Line{
		Source:          source,
		Destination:     destination,
		SeriesImpedance: complex(resistancePU, reactancePU),
		ShuntAdmittance: complex(0, susceptancePU),
		MaxPower:        maxPowerMVA,
	})

	return b
}

// Build validates the configuration and hands the accumulated network to
// grid.NewSystem. Returns ErrBadPowerBase for a non-positive base; all
// topology errors come from the grid sentinels.
func (b *Builder) Build() (*grid.System, error) {
	if b.opts.PowerBaseMVA <= 0 {
		return nil, ErrBadPowerBase
	}

	return grid.NewSystem(b.buses, b.lines)
}
