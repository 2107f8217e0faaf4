package report_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anadorn/loadflow/builder"
	"github.com/anadorn/loadflow/grid"
	"github.com/anadorn/loadflow/powerflow"
	"github.com/anadorn/loadflow/report"
)

// solvedPowell builds and solves the 5-bus Powell network.
func solvedPowell(t *testing.T) (*grid.System, *powerflow.Solver) {
	t.Helper()

	sys, err := builder.New().
		AddBus(1, 0, 0, 0, 1.0).
		AddBus(2, 40, 20, 0, 0).
		AddBus(3, 25, 15, 0, 0).
		AddBus(4, 40, 20, 0, 0).
		AddBus(5, 50, 20, 0, 0).
		AddLine(1, 2, 0.05, 0.11, 0.02, 60).
		AddLine(1, 3, 0.05, 0.11, 0.02, 60).
		AddLine(1, 5, 0.03, 0.08, 0.02, 80).
		AddLine(2, 3, 0.04, 0.09, 0.02, 60).
		AddLine(2, 5, 0.04, 0.09, 0.02, 60).
		AddLine(3, 4, 0.06, 0.13, 0.03, 60).
		AddLine(4, 5, 0.04, 0.09, 0.02, 60).
		Build()
	require.NoError(t, err)

	solver, err := powerflow.New(sys)
	require.NoError(t, err)
	for i := 0; i < 10 && !solver.HasConverged(); i++ {
		require.NoError(t, solver.Step())
	}
	require.True(t, solver.HasConverged())

	return sys, solver
}

func TestBusVoltages_Solved(t *testing.T) {
	sys, _ := solvedPowell(t)

	var buf strings.Builder
	require.NoError(t, report.BusVoltages(&buf, sys))

	out := buf.String()
	assert.Contains(t, out, "Voltage (pu)")
	assert.Contains(t, out, "1.0000", "swing bus stays at its specified magnitude")
	assert.Equal(t, 6, strings.Count(out, "\n"), "header plus one row per bus")
}

func TestBusVoltages_NilSystem(t *testing.T) {
	err := report.BusVoltages(&strings.Builder{}, nil)
	assert.ErrorIs(t, err, report.ErrNilSystem)
}

func TestLinePowers_MarksOverload(t *testing.T) {
	build := func(rating float64) *grid.System {
		sys, err := builder.New().
			AddBus(1, 0, 0, 0, 1.0).
			AddBus(2, 40, 20, 0, 0).
			AddLine(1, 2, 0.05, 0.11, 0.02, rating).
			Build()
		require.NoError(t, err)

		solver, err := powerflow.New(sys)
		require.NoError(t, err)
		for i := 0; i < 10 && !solver.HasConverged(); i++ {
			require.NoError(t, solver.Step())
		}

		return sys
	}

	// About 45 MVA flows into the line; a 10 MVA rating must trip the marker.
	var buf strings.Builder
	require.NoError(t, report.LinePowers(&buf, build(10), 100))
	assert.Contains(t, buf.String(), "OVER")

	buf.Reset()
	require.NoError(t, report.LinePowers(&buf, build(60), 100))
	assert.NotContains(t, buf.String(), "OVER")

	// Unrated lines are never flagged.
	buf.Reset()
	require.NoError(t, report.LinePowers(&buf, build(0), 100))
	assert.NotContains(t, buf.String(), "OVER")
}

func TestLargestMismatch(t *testing.T) {
	estimates := []powerflow.BusEstimate{
		{BusNumber: 2, Kind: grid.KindPQ, ActivePowerError: 0.002, ReactivePowerError: -0.0004},
		{BusNumber: 3, Kind: grid.KindPQ, ActivePowerError: -0.005, ReactivePowerError: 0.0001},
	}

	var buf strings.Builder
	require.NoError(t, report.LargestMismatch(&buf, estimates, 100, 3))

	out := buf.String()
	assert.Contains(t, out, "After 3 iteration(s)")
	assert.Contains(t, out, "-0.5000 MW at bus 3")
	assert.Contains(t, out, "-0.0400 Mvar at bus 2")
}

func TestLargestMismatch_Empty(t *testing.T) {
	err := report.LargestMismatch(&strings.Builder{}, nil, 100, 0)
	assert.ErrorIs(t, err, report.ErrNoEstimates)
}

func TestSwingPower_CoversLoadAndLosses(t *testing.T) {
	sys, _ := solvedPowell(t)

	var buf strings.Builder
	require.NoError(t, report.SwingPower(&buf, sys, 1, 100))

	var bus int
	var mw, mvar float64
	_, err := fmt.Sscanf(buf.String(), "Swing bus %d produces %f MW and %f Mvar", &bus, &mw, &mvar)
	require.NoError(t, err)
	assert.Equal(t, 1, bus)

	// Total load is 155 MW; the swing adds losses on top of it.
	assert.Greater(t, mw, 155.0)
	assert.Less(t, mw, 170.0)
}

func TestSwingPower_UnknownBus(t *testing.T) {
	sys, _ := solvedPowell(t)
	err := report.SwingPower(&strings.Builder{}, sys, 9, 100)
	assert.ErrorIs(t, err, grid.ErrUnknownBus)
}

func TestConvergencePlot_SavesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "convergence.png")
	require.NoError(t, report.ConvergencePlot(path, []float64{0.5, 0.04, 0.0008, 0.0000002}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestConvergencePlot_EmptyHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "convergence.png")
	err := report.ConvergencePlot(path, []float64{0, 0})
	assert.ErrorIs(t, err, report.ErrEmptyHistory)
}
