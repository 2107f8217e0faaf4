package report

import (
	"errors"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrEmptyHistory indicates a convergence history with no positive entries.
var ErrEmptyHistory = errors.New("report: empty convergence history")

// ConvergencePlot saves a log-scale chart of the worst power mismatch per
// iteration to path. history[i] is the largest absolute mismatch in per-unit
// after iteration i+1; non-positive entries are dropped since they cannot be
// drawn on a log axis.
func ConvergencePlot(path string, history []float64) error {
	points := make(plotter.XYs, 0, len(history))
	for i, mismatch := range history {
		if mismatch <= 0 {
			continue
		}
		points = append(points, plotter.XY{X: float64(i + 1), Y: mismatch})
	}
	if len(points) == 0 {
		return ErrEmptyHistory
	}

	p := plot.New()
	p.Title.Text = "Newton-Raphson convergence"
	p.X.Label.Text = "Iteration"
	p.Y.Label.Text = "Worst mismatch (pu)"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	line, err := plotter.NewLine(points)
	if err != nil {
		return err
	}
	p.Add(line, plotter.NewGrid())

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
