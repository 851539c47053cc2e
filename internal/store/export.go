// Package store persists finished trajectories; persistence is a
// collaborator of the engine, not part of the stepping core.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Run is a finished, buffered trajectory with its provenance.
type Run struct {
	Model    string      `json:"model"`
	Scheme   string      `json:"scheme"`
	Dt       float64     `json:"dt"`
	Duration float64     `json:"duration"`
	Times    []float64   `json:"times"`
	States   [][]float64 `json:"states"`
}

func ExportJSON(path string, run *Run) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(run)
}

func ExportJSONStdout(run *Run) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(run)
}

// ExportCSV writes one row per output point: t, x0, x1, ...
func ExportCSV(path string, run *Run) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if len(run.States) == 0 {
		return nil
	}

	header := []string{"t"}
	for i := range run.States[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for i, t := range run.Times {
		row[0] = strconv.FormatFloat(t, 'g', -1, 64)
		for j, v := range run.States[i] {
			row[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
