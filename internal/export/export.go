// Package export renders a generation result as JSON or CSV on a writer.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/sigsynth/internal/experiment"
	"github.com/san-kum/sigsynth/internal/waveform"
)

type ComponentData struct {
	Label  string          `json:"label"`
	Family waveform.Family `json:"family"`
	Params waveform.Params `json:"params,omitempty"`
	Values [][]float64     `json:"values,omitempty"`
}

type ExportData struct {
	Shape      [2]int          `json:"shape"`
	Space      []float64       `json:"space"`
	Times      []float64       `json:"times"`
	Seed       int64           `json:"seed"`
	Noisy      bool            `json:"noisy"`
	NoiseStd   float64         `json:"noise_std"`
	Components []ComponentData `json:"components"`
	Signal     [][]float64     `json:"signal"`
}

// Build collects the sampled signal and component metadata. Component
// arrays are included only when withValues is set; they cover the full grid.
func Build(res *experiment.Result, withValues bool) ExportData {
	data := ExportData{
		Shape:      [2]int{len(res.Sampled), res.Grid.NX()},
		Space:      res.Grid.Space(),
		Times:      res.Time,
		Seed:       res.Seed,
		Noisy:      res.Noisy,
		NoiseStd:   res.NoiseStd,
		Components: make([]ComponentData, len(res.Components)),
		Signal:     res.Sampled,
	}
	for i, c := range res.Components {
		spec := c.Spec()
		data.Components[i] = ComponentData{Label: spec.Name(), Family: spec.Family, Params: spec.Params}
		if withValues {
			data.Components[i].Values = c.Values()
		}
	}
	return data
}

func WriteJSON(w io.Writer, res *experiment.Result, withValues bool) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Build(res, withValues))
}

// WriteCSV writes one row per sampled time step: time, then one column per
// spatial point.
func WriteCSV(w io.Writer, res *experiment.Result) error {
	cw := csv.NewWriter(w)

	header := []string{"time"}
	for j := 0; j < res.Grid.NX(); j++ {
		header = append(header, fmt.Sprintf("x%d", j))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, row := range res.Sampled {
		record := []string{strconv.FormatFloat(res.Time[i], 'f', 6, 64)}
		for _, v := range row {
			record = append(record, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
