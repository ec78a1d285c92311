package sensor

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	ftracker "fit-tracker"
)

// ReadJSONL reads one {"code": ..., "params": [...]} object per line.
func ReadJSONL(r io.Reader) ([]ftracker.Sample, error) {
	sc := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	sc.Buffer(buf, 1024*1024)

	out := make([]ftracker.Sample, 0, 16)
	line := 0
	for sc.Scan() {
		line++
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		var s ftracker.Sample
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("unmarshal jsonl line %d: %w", line, err)
		}
		out = append(out, s)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read jsonl: %w", err)
	}
	return out, nil
}

// WriteJSONL writes samples in the layout ReadJSONL accepts.
func WriteJSONL(w io.Writer, samples []ftracker.Sample) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for _, s := range samples {
		if err := enc.Encode(s); err != nil {
			return err
		}
	}
	return bw.Flush()
}
