package builder_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anadorn/loadflow/builder"
	"github.com/anadorn/loadflow/grid"
	"github.com/anadorn/loadflow/powerflow"
)

// powellJSON is the 5-bus Powell network on a 100 MVA base.
const powellJSON = `{
  "power_base_mva": 100,
  "buses": [
    {"number": 1, "voltage_pu": 1.0},
    {"number": 2, "active_load_mw": 40, "reactive_load_mvar": 20},
    {"number": 3, "active_load_mw": 25, "reactive_load_mvar": 15},
    {"number": 4, "active_load_mw": 40, "reactive_load_mvar": 20},
    {"number": 5, "active_load_mw": 50, "reactive_load_mvar": 20}
  ],
  "lines": [
    {"source": 1, "destination": 2, "resistance_pu": 0.05, "reactance_pu": 0.11, "susceptance_pu": 0.02},
    {"source": 1, "destination": 3, "resistance_pu": 0.05, "reactance_pu": 0.11, "susceptance_pu": 0.02},
    {"source": 1, "destination": 5, "resistance_pu": 0.03, "reactance_pu": 0.08, "susceptance_pu": 0.02},
    {"source": 2, "destination": 3, "resistance_pu": 0.04, "reactance_pu": 0.09, "susceptance_pu": 0.02},
    {"source": 2, "destination": 5, "resistance_pu": 0.04, "reactance_pu": 0.09, "susceptance_pu": 0.02},
    {"source": 3, "destination": 4, "resistance_pu": 0.06, "reactance_pu": 0.13, "susceptance_pu": 0.03},
    {"source": 4, "destination": 5, "resistance_pu": 0.04, "reactance_pu": 0.09, "susceptance_pu": 0.02}
  ]
}`

func TestBuilder_ConvertsEngineeringUnits(t *testing.T) {
	sys, err := builder.New().
		AddBus(1, 0, 0, 0, 1.0).
		AddBus(2, 40, 20, 0, 0).
		AddLine(1, 2, 0.05, 0.11, 0.02, 60).
		Build()
	require.NoError(t, err)

	bus, ok := sys.Bus(2)
	require.True(t, ok)
	assert.InDelta(t, 0.4, bus.ActivePowerConsumed, 1e-12)
	assert.InDelta(t, 0.2, bus.ReactivePowerConsumed, 1e-12)
	assert.Equal(t, complex(1, 0), bus.Voltage, "unspecified voltage seeds flat start")

	lines := sys.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, complex(0.05, 0.11), lines[0].SeriesImpedance)
	assert.Equal(t, complex(0, 0.02), lines[0].ShuntAdmittance)
	assert.Equal(t, 60.0, lines[0].MaxPower)
}

func TestBuilder_CustomPowerBase(t *testing.T) {
	sys, err := builder.New(builder.WithPowerBase(50)).
		AddBus(1, 0, 0, 0, 1.0).
		AddBus(2, 40, 20, 0, 0).
		AddLine(1, 2, 0.05, 0.11, 0.02, 0).
		Build()
	require.NoError(t, err)

	bus, _ := sys.Bus(2)
	assert.InDelta(t, 0.8, bus.ActivePowerConsumed, 1e-12)
	assert.InDelta(t, 0.4, bus.ReactivePowerConsumed, 1e-12)
}

func TestBuilder_CustomFlatStart(t *testing.T) {
	sys, err := builder.New(builder.WithFlatStart(complex(1.05, 0))).
		AddBus(1, 0, 0, 0, 1.0).
		AddBus(2, 40, 20, 0, 0).
		AddLine(1, 2, 0.05, 0.11, 0.02, 0).
		Build()
	require.NoError(t, err)

	v, _ := sys.Voltage(2)
	assert.Equal(t, complex(1.05, 0), v)

	v, _ = sys.Voltage(1)
	assert.Equal(t, complex(1, 0), v, "explicit voltage wins over flat start")
}

func TestBuilder_BadPowerBase(t *testing.T) {
	_, err := builder.New(builder.WithPowerBase(0)).
		AddBus(1, 0, 0, 0, 1.0).
		AddBus(2, 40, 20, 0, 0).
		AddLine(1, 2, 0.05, 0.11, 0.02, 0).
		Build()
	assert.ErrorIs(t, err, builder.ErrBadPowerBase)
}

func TestBuilder_TopologyErrorsPassThrough(t *testing.T) {
	_, err := builder.New().
		AddBus(1, 0, 0, 0, 1.0).
		AddBus(2, 40, 20, 0, 0).
		AddLine(1, 1, 0.05, 0.11, 0.02, 0).
		Build()
	assert.ErrorIs(t, err, grid.ErrSelfLoopLine)
}

func TestLoadJSON_Powell(t *testing.T) {
	sys, err := builder.LoadJSON(strings.NewReader(powellJSON))
	require.NoError(t, err)
	require.Equal(t, 5, sys.Size())

	bus, ok := sys.Bus(5)
	require.True(t, ok)
	assert.InDelta(t, 0.5, bus.ActivePowerConsumed, 1e-12)
	assert.InDelta(t, 0.2, bus.ReactivePowerConsumed, 1e-12)
	assert.Len(t, sys.Lines(), 7)
}

func TestLoadJSON_DocumentBaseOverridesOption(t *testing.T) {
	// The document declares 100 MVA; the 50 MVA option must lose.
	sys, err := builder.LoadJSON(strings.NewReader(powellJSON), builder.WithPowerBase(50))
	require.NoError(t, err)

	bus, _ := sys.Bus(2)
	assert.InDelta(t, 0.4, bus.ActivePowerConsumed, 1e-12)
}

func TestLoadJSON_Malformed(t *testing.T) {
	_, err := builder.LoadJSON(strings.NewReader(`{"buses": [`))
	assert.ErrorIs(t, err, builder.ErrBadRecord)
}

func TestLoadJSON_NegativeBase(t *testing.T) {
	_, err := builder.LoadJSON(strings.NewReader(`{"power_base_mva": -1, "buses": [], "lines": []}`))
	assert.ErrorIs(t, err, builder.ErrBadPowerBase)
}

func TestLoadJSONFile_Powell(t *testing.T) {
	sys, err := builder.LoadJSONFile("testdata/powell.json")
	require.NoError(t, err)
	assert.Equal(t, 5, sys.Size())
}

func TestLoadCSV_MatchesJSON(t *testing.T) {
	fromJSON, err := builder.LoadJSON(strings.NewReader(powellJSON))
	require.NoError(t, err)

	fromCSV, err := builder.LoadCSVFiles("testdata/powell_buses.csv", "testdata/powell_lines.csv")
	require.NoError(t, err)

	require.Equal(t, fromJSON.Size(), fromCSV.Size())
	for _, want := range fromJSON.Buses() {
		got, ok := fromCSV.Bus(want.Number)
		require.True(t, ok)
		assert.InDelta(t, want.ActivePowerConsumed, got.ActivePowerConsumed, 1e-12)
		assert.InDelta(t, want.ReactivePowerConsumed, got.ReactivePowerConsumed, 1e-12)
		assert.Equal(t, want.Voltage, got.Voltage)
	}
}

func TestLoadCSV_BadCell(t *testing.T) {
	buses := "number,active_load_mw,reactive_load_mvar,active_generation_mw,voltage_pu\n" +
		"one,40,20,,\n"
	lines := "source,destination,resistance_pu,reactance_pu,susceptance_pu,max_power_mva\n"

	_, err := builder.LoadCSV(strings.NewReader(buses), strings.NewReader(lines))
	assert.ErrorIs(t, err, builder.ErrBadRecord)
}

func TestLoadCSV_WrongColumnCount(t *testing.T) {
	buses := "number,active_load_mw\n1,40\n"
	lines := "source,destination,resistance_pu,reactance_pu,susceptance_pu,max_power_mva\n"

	_, err := builder.LoadCSV(strings.NewReader(buses), strings.NewReader(lines))
	assert.ErrorIs(t, err, builder.ErrBadRecord)
}

// The loaded network must behave identically to the hand-built one.
func TestLoadJSON_SolvesToConvergence(t *testing.T) {
	sys, err := builder.LoadJSONFile("testdata/powell.json")
	require.NoError(t, err)

	solver, err := powerflow.New(sys)
	require.NoError(t, err)

	for i := 0; i < 10 && !solver.HasConverged(); i++ {
		require.NoError(t, solver.Step())
	}
	assert.True(t, solver.HasConverged())
}
