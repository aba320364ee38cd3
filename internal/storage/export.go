package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/astrogolf/internal/dynamo"
)

type ExportData struct {
	Scenario string             `json:"scenario"`
	Model    string             `json:"model"`
	Solver   string             `json:"solver"`
	FrameDt  float64            `json:"frame_dt"`
	Duration float64            `json:"duration"`
	Masses   []float64          `json:"masses,omitempty"`
	Names    []string           `json:"names,omitempty"`
	Frames   int                `json:"frames"`
	Times    []float64          `json:"times"`
	States   [][]float64        `json:"states"`
	Metrics  map[string]float64 `json:"metrics"`
}

func NewExportData(info RunInfo, result *dynamo.Result) ExportData {
	metrics, _ := finiteMetrics(result.Metrics)
	data := ExportData{
		Scenario: info.Scenario,
		Model:    info.Model,
		Solver:   info.Solver,
		FrameDt:  info.FrameDt,
		Duration: info.Duration,
		Masses:   info.Masses,
		Names:    info.Names,
		Frames:   len(result.Times),
		Times:    result.Times,
		States:   make([][]float64, len(result.States)),
		Metrics:  metrics,
	}

	for i, s := range result.States {
		data.States[i] = s
	}
	return data
}

// WriteJSON encodes a run as indented JSON.
func WriteJSON(w io.Writer, info RunInfo, result *dynamo.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(info, result))
}

func ExportJSON(path string, info RunInfo, result *dynamo.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := WriteJSON(file, info, result); err != nil {
		return err
	}
	return file.Close()
}
