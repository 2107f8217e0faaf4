package builder

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/anadorn/loadflow/grid"
)

// jsonDocument mirrors the network file layout.
type jsonDocument struct {
	PowerBaseMVA float64    `json:"power_base_mva"`
	Buses        []jsonBus  `json:"buses"`
	Lines        []jsonLine `json:"lines"`
}

type jsonBus struct {
	Number             int     `json:"number"`
	ActiveLoadMW       float64 `json:"active_load_mw"`
	ReactiveLoadMvar   float64 `json:"reactive_load_mvar"`
	ActiveGenerationMW float64 `json:"active_generation_mw"`
	VoltagePU          float64 `json:"voltage_pu"`
}

type jsonLine struct {
	Source        int     `json:"source"`
	Destination   int     `json:"destination"`
	ResistancePU  float64 `json:"resistance_pu"`
	ReactancePU   float64 `json:"reactance_pu"`
	SusceptancePU float64 `json:"susceptance_pu"`
	MaxPowerMVA   float64 `json:"max_power_mva"`
}

// LoadJSON decodes a network document from r and builds a grid.System.
// A positive power_base_mva in the document overrides the configured base;
// a negative one is ErrBadPowerBase. Decode failures wrap ErrBadRecord.
func LoadJSON(r io.Reader, opts ...Option) (*grid.System, error) {
	var doc jsonDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRecord, err)
	}
	if doc.PowerBaseMVA < 0 {
		return nil, ErrBadPowerBase
	}

	b := New(opts...)
	if doc.PowerBaseMVA > 0 {
		b.opts.PowerBaseMVA = doc.PowerBaseMVA
	}
	for _, bus := range doc.Buses {
		b.AddBus(bus.Number, bus.ActiveLoadMW, bus.ReactiveLoadMvar, bus.ActiveGenerationMW, bus.VoltagePU)
	}
	for _, line := range doc.Lines {
		b.AddLine(line.Source, line.Destination, line.ResistancePU, line.ReactancePU, line.SusceptancePU, line.MaxPowerMVA)
	}

	return b.Build()
}

// LoadJSONFile opens path and delegates to LoadJSON.
func LoadJSONFile(path string, opts ...Option) (*grid.System, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadJSON(f, opts...)
}
