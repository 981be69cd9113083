package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/san-kum/odestep/internal/dynamo"
)

type ExportData struct {
	RunMetadata
	Times  []float64   `json:"times"`
	States [][]float64 `json:"states"`
}

func ExportJSON(w io.Writer, meta RunMetadata, traj *dynamo.Trajectory) error {
	data := ExportData{
		RunMetadata: meta,
		Times:       traj.Times(),
		States:      make([][]float64, traj.Len()),
	}
	for i, x := range traj.States() {
		data.States[i] = x
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteCSV writes a header "time,x0,x1,..." followed by one row per sample.
// Values use the shortest representation that round-trips exactly.
func WriteCSV(w io.Writer, traj *dynamo.Trajectory) error {
	cw := csv.NewWriter(w)

	if traj.Len() == 0 {
		cw.Flush()
		return cw.Error()
	}

	header := []string{"time"}
	for i := 0; i < traj.Dim(); i++ {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, sample := range traj.Samples() {
		row := make([]string, 0, len(sample.State)+1)
		row = append(row, strconv.FormatFloat(sample.Time, 'g', -1, 64))
		for _, val := range sample.State {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses the WriteCSV format into a sealed trajectory.
func ReadCSV(r io.Reader) (*dynamo.Trajectory, error) {
	cr := csv.NewReader(r)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}

	traj := dynamo.NewTrajectory(len(records))
	for i := 1; i < len(records); i++ {
		record := records[i]

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: time", i+1)
		}

		state := make(dynamo.State, len(record)-1)
		for j := 1; j < len(record); j++ {
			state[j-1], err = strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: x%d", i+1, j-1)
			}
		}

		if err := traj.Record(t, state); err != nil {
			return nil, errors.Wrapf(err, "line %d", i+1)
		}
	}

	traj.Seal()
	return traj, nil
}
