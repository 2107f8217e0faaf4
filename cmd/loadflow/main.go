// Command loadflow solves the steady-state power flow of a transmission
// network described by a JSON document or a pair of CSV tables, then prints
// bus voltages, line loadings, and the swing bus balance.
//
// Usage:
//
//	loadflow -json network.json
//	loadflow -buses buses.csv -lines lines.csv -swing 1 -plot conv.png
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/cmplx"
	"os"

	"github.com/anadorn/loadflow/builder"
	"github.com/anadorn/loadflow/grid"
	"github.com/anadorn/loadflow/powerflow"
	"github.com/anadorn/loadflow/report"
)

func main() {
	var (
		jsonPath   = flag.String("json", "", "network description as a JSON document")
		busPath    = flag.String("buses", "", "bus table as CSV (requires -lines)")
		linePath   = flag.String("lines", "", "line table as CSV (requires -buses)")
		swing      = flag.Int("swing", powerflow.DefaultSwingBusNumber, "swing bus number")
		base       = flag.Float64("base", builder.DefaultPowerBaseMVA, "power base in MVA")
		maxP       = flag.Float64("max-dp", 0.1, "active power convergence tolerance in MW")
		maxQ       = flag.Float64("max-dq", 0.1, "reactive power convergence tolerance in Mvar")
		flatStart  = flag.Float64("start", 1.0, "flat-start voltage magnitude in pu")
		startAngle = flag.Float64("start-angle", 0, "flat-start voltage angle in radians")
		iterations = flag.Int("iterations", 20, "iteration cap")
		plotPath   = flag.String("plot", "", "save a convergence plot to this path")
	)
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("loadflow: ")

	sys, err := load(*jsonPath, *busPath, *linePath, *base, cmplx.Rect(*flatStart, *startAngle))
	if err != nil {
		log.Fatal(err)
	}

	solver, err := powerflow.New(sys,
		powerflow.WithSwingBus(*swing),
		powerflow.WithActivePowerTolerance(*maxP/(*base)),
		powerflow.WithReactivePowerTolerance(*maxQ/(*base)))
	if err != nil {
		log.Fatal(err)
	}

	history := make([]float64, 0, *iterations)
	for i := 0; i < *iterations && !solver.HasConverged(); i++ {
		if err = solver.Step(); err != nil {
			log.Fatal(err)
		}
		history = append(history, worstMismatch(solver.Estimates()))
	}

	if *plotPath != "" {
		if err = report.ConvergencePlot(*plotPath, history); err != nil {
			log.Fatal(err)
		}
	}
	if !solver.HasConverged() {
		report.LargestMismatch(os.Stderr, solver.Estimates(), *base, solver.Iterations())
		log.Fatalf("no convergence after %d iterations", solver.Iterations())
	}

	if err = report.BusVoltages(os.Stdout, sys); err != nil {
		log.Fatal(err)
	}
	fmt.Println()
	if err = report.LinePowers(os.Stdout, sys, *base); err != nil {
		log.Fatal(err)
	}
	fmt.Println()
	if err = report.SwingPower(os.Stdout, sys, *swing, *base); err != nil {
		log.Fatal(err)
	}
	report.LargestMismatch(os.Stdout, solver.Estimates(), *base, solver.Iterations())
}

// load picks the input format from the flags that were set.
func load(jsonPath, busPath, linePath string, base float64, start complex128) (*grid.System, error) {
	opts := []builder.Option{
		builder.WithPowerBase(base),
		builder.WithFlatStart(start),
	}

	switch {
	case jsonPath != "" && (busPath != "" || linePath != ""):
		return nil, fmt.Errorf("use either -json or -buses/-lines, not both")
	case jsonPath != "":
		return builder.LoadJSONFile(jsonPath, opts...)
	case busPath != "" && linePath != "":
		return builder.LoadCSVFiles(busPath, linePath, opts...)
	default:
		return nil, fmt.Errorf("no input: pass -json or both -buses and -lines")
	}
}

// worstMismatch returns the largest absolute power mismatch in per-unit.
func worstMismatch(estimates []powerflow.BusEstimate) float64 {
	var worst float64
	for _, est := range estimates {
		worst = math.Max(worst, math.Abs(est.ActivePowerError))
		worst = math.Max(worst, math.Abs(est.ReactivePowerError))
	}

	return worst
}
