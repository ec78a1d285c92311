package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	ftracker "fit-tracker"
)

// Process resolves samples in order and writes one line per sample to w.
// A sample with an unknown code produces ftracker.NotFoundMessage and the batch
// continues; an arity mismatch stops the batch and is returned. Outcomes of
// the samples handled before the failure are returned alongside the error.
func Process(ctx context.Context, samples []ftracker.Sample, w io.Writer) ([]Outcome, error) {
	out := make([]Outcome, 0, len(samples))
	for i, s := range samples {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		outcome := Outcome{Index: i, Sample: s}
		report, err := ftracker.ResolveSample(s)
		switch {
		case errors.Is(err, ftracker.ErrUnknownWorkoutKind):
			outcome.NotFound = true
			outcome.Line = ftracker.NotFoundMessage
		case err != nil:
			return out, fmt.Errorf("sample %d: %w", i, err)
		default:
			outcome.Report = &report
			outcome.Line = report.Message()
		}

		if _, err := fmt.Fprintln(w, outcome.Line); err != nil {
			return out, fmt.Errorf("write report line: %w", err)
		}
		out = append(out, outcome)
	}
	return out, nil
}
