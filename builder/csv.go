package builder

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/anadorn/loadflow/grid"
)

// Column counts for the two tables. Header rows are skipped, so the layout
// is positional.
const (
	busColumns  = 5 // number, active_load_mw, reactive_load_mvar, active_generation_mw, voltage_pu
	lineColumns = 6 // source, destination, resistance_pu, reactance_pu, susceptance_pu, max_power_mva
)

// LoadCSV reads the bus and line tables and builds a grid.System. The first
// row of each table is a header and is discarded; empty cells read as zero.
func LoadCSV(busData, lineData io.Reader, opts ...Option) (*grid.System, error) {
	b := New(opts...)

	busRows, err := readTable(busData, busColumns)
	if err != nil {
		return nil, fmt.Errorf("bus table: %w", err)
	}
	for _, row := range busRows {
		number, err := cellInt(row[0])
		if err != nil {
			return nil, fmt.Errorf("bus table: %w", err)
		}
		fields, err := cellFloats(row[1:])
		if err != nil {
			return nil, fmt.Errorf("bus table: %w", err)
		}
		b.AddBus(number, fields[0], fields[1], fields[2], fields[3])
	}

	lineRows, err := readTable(lineData, lineColumns)
	if err != nil {
		return nil, fmt.Errorf("line table: %w", err)
	}
	for _, row := range lineRows {
		source, err := cellInt(row[0])
		if err != nil {
			return nil, fmt.Errorf("line table: %w", err)
		}
		destination, err := cellInt(row[1])
		if err != nil {
			return nil, fmt.Errorf("line table: %w", err)
		}
		fields, err := cellFloats(row[2:])
		if err != nil {
			return nil, fmt.Errorf("line table: %w", err)
		}
		b.AddLine(source, destination, fields[0], fields[1], fields[2], fields[3])
	}

	return b.Build()
}

// LoadCSVFiles opens both paths and delegates to LoadCSV.
func LoadCSVFiles(busPath, linePath string, opts ...Option) (*grid.System, error) {
	busFile, err := os.Open(busPath)
	if err != nil {
		return nil, err
	}
	defer busFile.Close()

	lineFile, err := os.Open(linePath)
	if err != nil {
		return nil, err
	}
	defer lineFile.Close()

	return LoadCSV(busFile, lineFile, opts...)
}

// readTable parses r as CSV, drops the header row, and checks the column
// count of every data row.
func readTable(r io.Reader, columns int) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = columns
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRecord, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	return rows[1:], nil
}

func cellInt(cell string) (int, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(cell)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadRecord, err)
	}

	return n, nil
}

func cellFloats(cells []string) ([]float64, error) {
	out := make([]float64, len(cells))
	for i, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadRecord, err)
		}
		out[i] = v
	}

	return out, nil
}
