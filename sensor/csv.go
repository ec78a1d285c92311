package sensor

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	ftracker "fit-tracker"
)

// ReadCSV reads one sample per row: the workout code followed by its readings,
// e.g. "WLK,9000,1,75,180". Rows may have any length; the dispatcher checks
// arity. Blank rows and rows starting with '#' are skipped.
func ReadCSV(r io.Reader) ([]ftracker.Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	out := make([]ftracker.Sample, 0, 16)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line, _ := cr.FieldPos(0)

		sample := ftracker.Sample{
			Code:   strings.TrimSpace(row[0]),
			Params: make([]float64, 0, len(row)-1),
		}
		for i, field := range row[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("csv line %d field %d: %w", line, i+2, err)
			}
			sample.Params = append(sample.Params, v)
		}
		out = append(out, sample)
	}
}

// WriteCSV writes samples in the layout ReadCSV accepts.
func WriteCSV(w io.Writer, samples []ftracker.Sample) error {
	cw := csv.NewWriter(w)
	for _, s := range samples {
		row := make([]string, 0, len(s.Params)+1)
		row = append(row, s.Code)
		for _, p := range s.Params {
			row = append(row, strconv.FormatFloat(p, 'f', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
