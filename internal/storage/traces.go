package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/lcsim/internal/dynamo"
)

var ErrMalformedTraces = errors.New("storage: malformed traces")

// Columns of traces.csv, in order.
var Columns = []string{
	"time",
	"voltage",
	"current",
	"charge",
	"inductor_energy",
	"capacitor_energy",
	"shift",
}

func columnsOf(r *dynamo.Result) [][]float64 {
	return [][]float64{
		r.Times,
		r.Voltage,
		r.Current,
		r.Charge,
		r.InductorEnergy,
		r.CapacitorEnergy,
		r.Shift,
	}
}

// WriteCSV writes one row per recorded frame. Values use the shortest
// representation that parses back to the same float64.
func WriteCSV(w io.Writer, result *dynamo.Result) error {
	cols := columnsOf(result)
	for i, col := range cols {
		if len(col) != result.Len() {
			return fmt.Errorf("%w: column %s has %d values, want %d", ErrMalformedTraces, Columns[i], len(col), result.Len())
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}

	row := make([]string, len(cols))
	for i := 0; i < result.Len(); i++ {
		for j, col := range cols {
			row[j] = strconv.FormatFloat(col[i], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses traces written by WriteCSV. Columns are matched by header
// name, so extra columns are ignored.
func ReadCSV(r io.Reader) (*dynamo.Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTraces, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: missing header", ErrMalformedTraces)
	}

	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[name] = i
	}
	for _, name := range Columns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformedTraces, name)
		}
	}

	result := &dynamo.Result{Metrics: make(map[string]float64)}
	cols := make([][]float64, len(Columns))
	for line, record := range records[1:] {
		for j, name := range Columns {
			k := index[name]
			if k >= len(record) {
				return nil, fmt.Errorf("%w: line %d is short", ErrMalformedTraces, line+2)
			}
			v, err := strconv.ParseFloat(record[k], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %s: %v", ErrMalformedTraces, line+2, name, err)
			}
			cols[j] = append(cols[j], v)
		}
	}

	result.Times = cols[0]
	result.Voltage = cols[1]
	result.Current = cols[2]
	result.Charge = cols[3]
	result.InductorEnergy = cols[4]
	result.CapacitorEnergy = cols[5]
	result.Shift = cols[6]
	if n := result.Len(); n > 0 {
		result.StepsTaken = n - 1
	}
	return result, nil
}

// ExportData is the JSON document written by export-json.
type ExportData struct {
	Run    RunMetadata          `json:"run"`
	Traces map[string][]float64 `json:"traces"`
}

func WriteJSON(w io.Writer, meta RunMetadata, result *dynamo.Result) error {
	data := ExportData{
		Run:    meta,
		Traces: make(map[string][]float64, len(Columns)),
	}
	for j, col := range columnsOf(result) {
		data.Traces[Columns[j]] = col
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
