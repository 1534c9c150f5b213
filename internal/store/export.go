// Package store exports solve results to JSON and CSV.
package store

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/mrsolve/internal/multirate"
)

type ExportData struct {
	System    string             `json:"system"`
	Method    string             `json:"method"`
	MacroStep float64            `json:"macro_step"`
	Steps     int                `json:"steps"`
	Evals     int                `json:"evals"`
	ElapsedMs float64            `json:"elapsed_ms"`
	Complete  bool               `json:"complete"`
	Times     []float64          `json:"times"`
	States    [][]float64        `json:"states"`
	Metrics   map[string]float64 `json:"metrics"`
}

func newExportData(system, method string, macroStep float64, result *multirate.Result) ExportData {
	data := ExportData{
		System:    system,
		Method:    method,
		MacroStep: macroStep,
		Steps:     result.Steps,
		Evals:     result.Evals,
		ElapsedMs: float64(result.Elapsed.Microseconds()) / 1000.0,
		Complete:  result.Complete,
		Times:     result.Times,
		States:    make([][]float64, len(result.States)),
		Metrics:   result.Metrics,
	}
	for i, s := range result.States {
		data.States[i] = s
	}
	return data
}

func ExportJSON(path, system, method string, macroStep float64, result *multirate.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, system, method, macroStep, result)
}

func WriteJSON(w io.Writer, system, method string, macroStep float64, result *multirate.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(system, method, macroStep, result))
}

func ExportCSV(path string, result *multirate.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteCSV(file, result)
}

// WriteCSV writes one row per trajectory sample: t followed by the full
// state vector.
func WriteCSV(w io.Writer, result *multirate.Result) error {
	cw := csv.NewWriter(w)

	dim := 0
	if len(result.States) > 0 {
		dim = len(result.States[0])
	}
	header := make([]string, 0, dim+1)
	header = append(header, "t")
	for i := 0; i < dim; i++ {
		header = append(header, "y"+strconv.Itoa(i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, dim+1)
	for i, t := range result.Times {
		row[0] = strconv.FormatFloat(t, 'g', -1, 64)
		for j, v := range result.States[i] {
			row[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
