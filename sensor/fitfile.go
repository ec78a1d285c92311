package sensor

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	ftracker "fit-tracker"
	"github.com/tormoder/fit"
)

const secondsPerHour = 3600.0

// ReadFITFile decodes an activity FIT file from disk. See ReadFIT.
func ReadFITFile(path string, athlete Athlete) ([]ftracker.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open FIT file: %w", err)
	}
	defer f.Close()

	return ReadFIT(f, athlete)
}

// ReadFITBytes decodes an activity FIT file held in memory.
func ReadFITBytes(data []byte, athlete Athlete) ([]ftracker.Sample, error) {
	return ReadFIT(bytes.NewReader(data), athlete)
}

// ReadFIT turns every session of an activity FIT file into one sample.
// Running, walking and swimming sessions map to RUN, WLK and SWM; sessions of
// any other sport keep the sport name as their code so that the batch reports
// them as unknown. The session's total cycles (strides or strokes) become the
// action count and pool geometry comes from pool length and active lengths.
func ReadFIT(r io.Reader, athlete Athlete) ([]ftracker.Sample, error) {
	decoded, err := fit.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode FIT file: %w", err)
	}

	activity, err := decoded.Activity()
	if err != nil {
		return nil, fmt.Errorf("activity FIT expected: %w", err)
	}
	if len(activity.Sessions) == 0 {
		return nil, fmt.Errorf("activity file has no session message")
	}

	out := make([]ftracker.Sample, 0, len(activity.Sessions))
	for _, session := range activity.Sessions {
		if session == nil {
			continue
		}
		out = append(out, sessionSample(session, athlete))
	}
	return out, nil
}

func sessionSample(session *fit.SessionMsg, athlete Athlete) ftracker.Sample {
	action := float64(validUint32(session.TotalCycles))

	seconds := safePositive(session.GetTotalTimerTimeScaled())
	if seconds == 0 {
		seconds = safePositive(session.GetTotalElapsedTimeScaled())
	}
	durationH := seconds / secondsPerHour

	switch session.Sport {
	case fit.SportRunning:
		return ftracker.Sample{
			Code:   ftracker.Running.Code(),
			Params: []float64{action, durationH, athlete.WeightKG},
		}
	case fit.SportWalking:
		return ftracker.Sample{
			Code:   ftracker.Walking.Code(),
			Params: []float64{action, durationH, athlete.WeightKG, athlete.HeightCM},
		}
	case fit.SportSwimming:
		lengths := validUint16(session.NumActiveLengths)
		if lengths == 0 {
			lengths = validUint16(session.NumLengths)
		}
		return ftracker.Sample{
			Code: ftracker.Swimming.Code(),
			Params: []float64{
				action,
				durationH,
				athlete.WeightKG,
				safePositive(session.GetPoolLengthScaled()),
				float64(lengths),
			},
		}
	default:
		return ftracker.Sample{
			Code:   strings.ToUpper(fmt.Sprint(session.Sport)),
			Params: []float64{action, durationH, athlete.WeightKG},
		}
	}
}

func validUint16(v uint16) uint16 {
	if v == math.MaxUint16 {
		return 0
	}
	return v
}

func validUint32(v uint32) uint32 {
	if v == math.MaxUint32 {
		return 0
	}
	return v
}

func safePositive(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	return v
}
