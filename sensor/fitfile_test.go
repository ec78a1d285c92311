package sensor

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"

	ftracker "fit-tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tormoder/fit"
)

func TestReadFITMapsSessions(t *testing.T) {
	samples, err := ReadFITBytes(buildTestFIT(t), Athlete{WeightKG: 72, HeightCM: 180})
	require.NoError(t, err)
	require.Len(t, samples, 4)

	assert.Equal(t, ftracker.Sample{Code: "RUN", Params: []float64{7500, 1, 72}}, samples[0])
	assert.Equal(t, ftracker.Sample{Code: "WLK", Params: []float64{9000, 1.5, 72, 180}}, samples[1])
	assert.Equal(t, ftracker.Sample{Code: "SWM", Params: []float64{720, 1, 72, 25, 40}}, samples[2])

	_, err = ftracker.ResolveSample(samples[3])
	assert.ErrorIs(t, err, ftracker.ErrUnknownWorkoutKind)
	assert.Len(t, samples[3].Params, 3)
}

func TestReadFITResolvesSwim(t *testing.T) {
	samples, err := ReadFITBytes(buildTestFIT(t), Athlete{WeightKG: 80})
	require.NoError(t, err)

	report, err := ftracker.ResolveSample(samples[2])
	require.NoError(t, err)
	assert.InDelta(t, 1.0, report.Speed, 1e-12)
	assert.InDelta(t, (1.0+1.1)*2*80, report.Calories, 1e-9)
}

func TestReadFITRejectsGarbage(t *testing.T) {
	_, err := ReadFITBytes([]byte("not a fit file"), Athlete{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode FIT file")
}

func TestReadFITRequiresSession(t *testing.T) {
	header := fit.NewHeader(fit.V20, true)
	file, err := fit.NewFile(fit.FileTypeActivity, header)
	require.NoError(t, err)

	activity, err := file.Activity()
	require.NoError(t, err)
	event := fit.NewEventMsg()
	event.Timestamp = time.Date(2026, 2, 26, 23, 0, 0, 0, time.UTC)
	event.Event = fit.EventTimer
	event.EventType = fit.EventTypeStart
	activity.Events = append(activity.Events, event)

	var buf bytes.Buffer
	require.NoError(t, fit.Encode(&buf, file, binary.LittleEndian))

	_, err = ReadFITBytes(buf.Bytes(), Athlete{})
	assert.ErrorContains(t, err, "no session")
}

func buildTestFIT(t *testing.T) []byte {
	t.Helper()

	header := fit.NewHeader(fit.V20, true)
	file, err := fit.NewFile(fit.FileTypeActivity, header)
	if err != nil {
		t.Fatalf("new fit file: %v", err)
	}

	activity, err := file.Activity()
	if err != nil {
		t.Fatalf("activity accessor: %v", err)
	}

	start := time.Date(2026, 2, 26, 7, 0, 0, 0, time.UTC)

	run := fit.NewSessionMsg()
	run.StartTime = start
	run.Timestamp = start.Add(time.Hour)
	run.Sport = fit.SportRunning
	run.TotalTimerTime = 3600 * 1000
	run.TotalCycles = 7500
	activity.Sessions = append(activity.Sessions, run)

	walk := fit.NewSessionMsg()
	walk.StartTime = start.Add(2 * time.Hour)
	walk.Timestamp = start.Add(3*time.Hour + 30*time.Minute)
	walk.Sport = fit.SportWalking
	walk.TotalTimerTime = 5400 * 1000
	walk.TotalCycles = 9000
	activity.Sessions = append(activity.Sessions, walk)

	swim := fit.NewSessionMsg()
	swim.StartTime = start.Add(4 * time.Hour)
	swim.Timestamp = start.Add(5 * time.Hour)
	swim.Sport = fit.SportSwimming
	swim.TotalTimerTime = 3600 * 1000
	swim.TotalCycles = 720
	swim.PoolLength = 25 * 100
	swim.NumActiveLengths = 40
	activity.Sessions = append(activity.Sessions, swim)

	ride := fit.NewSessionMsg()
	ride.StartTime = start.Add(6 * time.Hour)
	ride.Timestamp = start.Add(7 * time.Hour)
	ride.Sport = fit.SportCycling
	ride.TotalTimerTime = 3600 * 1000
	activity.Sessions = append(activity.Sessions, ride)

	var buf bytes.Buffer
	if err := fit.Encode(&buf, file, binary.LittleEndian); err != nil {
		t.Fatalf("encode fit: %v", err)
	}
	return buf.Bytes()
}
