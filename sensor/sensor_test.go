package sensor

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ftracker "fit-tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPackages(t *testing.T) {
	samples := DefaultPackages()
	require.Len(t, samples, 3)
	assert.Equal(t, []string{"SWM", "RUN", "WLK"}, []string{samples[0].Code, samples[1].Code, samples[2].Code})

	for _, s := range samples {
		_, err := ftracker.ResolveSample(s)
		assert.NoError(t, err, s.String())
	}
}

func TestDefaultAthleteResolvesFITSessions(t *testing.T) {
	athlete := DefaultAthlete()
	require.NoError(t, athlete.Validate())
	assert.Equal(t, Athlete{WeightKG: 75, HeightCM: 180}, athlete)

	samples, err := ReadFITBytes(buildTestFIT(t), athlete)
	require.NoError(t, err)
	for _, s := range samples[:3] {
		report, err := ftracker.ResolveSample(s)
		require.NoError(t, err, s.String())
		assert.False(t, math.IsNaN(report.Calories), s.String())
		assert.NotZero(t, report.Calories, s.String())
	}
}

func TestAthleteValidate(t *testing.T) {
	tests := []struct {
		name    string
		athlete Athlete
		wantErr string
	}{
		{"zero profile", Athlete{}, "weight must be positive"},
		{"missing height", Athlete{WeightKG: 72}, "height must be positive"},
		{"negative weight", Athlete{WeightKG: -1, HeightCM: 180}, "weight must be positive"},
		{"nan height", Athlete{WeightKG: 72, HeightCM: math.NaN()}, "height must be positive"},
		{"infinite weight", Athlete{WeightKG: math.Inf(1), HeightCM: 180}, "weight must be positive"},
		{"valid", Athlete{WeightKG: 72, HeightCM: 180}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.athlete.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestReadCSV(t *testing.T) {
	input := strings.Join([]string{
		"# code,action,duration_h,weight_kg,...",
		"SWM,720,1,80,25,40",
		"",
		"RUN, 15000, 1, 75",
		"WLK,9000,1.5,75,180",
		"XYZ,1,2",
		"RUN",
	}, "\n")

	samples, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []ftracker.Sample{
		{Code: "SWM", Params: []float64{720, 1, 80, 25, 40}},
		{Code: "RUN", Params: []float64{15000, 1, 75}},
		{Code: "WLK", Params: []float64{9000, 1.5, 75, 180}},
		{Code: "XYZ", Params: []float64{1, 2}},
		{Code: "RUN", Params: []float64{}},
	}, samples)
}

func TestReadCSVRejectsNonNumericReading(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("RUN,720,1,80\nWLK,9000,one,75,180\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv line 2 field 3")
}

func TestCSVRoundTripKeepsOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, DefaultPackages()))

	samples, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, DefaultPackages(), samples)
}

func TestReadJSONL(t *testing.T) {
	input := `{"code":"RUN","params":[720,1,80]}

{"code":"SWM","params":[720,1,80,25,40]}
{"code":"WLK"}
`
	samples, err := ReadJSONL(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, samples, 3)

	assert.Equal(t, ftracker.Sample{Code: "RUN", Params: []float64{720, 1, 80}}, samples[0])
	assert.Equal(t, "SWM", samples[1].Code)
	assert.Empty(t, samples[2].Params)
}

func TestReadJSONLReportsLine(t *testing.T) {
	_, err := ReadJSONL(strings.NewReader("{\"code\":\"RUN\",\"params\":[1,2,3]}\n{broken\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReadFileDispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "packages.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("RUN,15000,1,75\n"), 0o644))

	jsonlPath := filepath.Join(dir, "packages.JSONL")
	require.NoError(t, os.WriteFile(jsonlPath, []byte(`{"code":"WLK","params":[9000,1,75,180]}`+"\n"), 0o644))

	fitPath := filepath.Join(dir, "session.fit")
	require.NoError(t, os.WriteFile(fitPath, buildTestFIT(t), 0o644))

	got, err := ReadFile(csvPath, Athlete{})
	require.NoError(t, err)
	assert.Equal(t, "RUN", got[0].Code)

	got, err = ReadFile(jsonlPath, Athlete{})
	require.NoError(t, err)
	assert.Equal(t, "WLK", got[0].Code)

	got, err = ReadFile(fitPath, Athlete{WeightKG: 72, HeightCM: 180})
	require.NoError(t, err)
	assert.Len(t, got, 4)

	_, err = ReadFile(filepath.Join(dir, "packages.xml"), Athlete{})
	assert.ErrorContains(t, err, "unsupported input format")

	_, err = ReadFile(filepath.Join(dir, "missing.csv"), Athlete{})
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = ReadFile(" ", Athlete{})
	assert.Error(t, err)
}
