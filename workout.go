package ftracker

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	mInKm  = 1000.0
	minInH = 60.0

	runCaloriesSpeedMultiplier = 18.0
	runCaloriesSpeedShift      = 20.0

	walkCaloriesWeightMultiplier = 0.035
	walkCaloriesSpeedMultiplier  = 0.029

	swimCaloriesSpeedShift       = 1.1
	swimCaloriesWeightMultiplier = 2.0
)

var (
	// ErrUnknownWorkoutKind is returned for workout codes other than RUN, WLK and SWM.
	ErrUnknownWorkoutKind = errors.New("unknown workout kind")
	// ErrInvalidParameterCount is returned when a sample does not carry exactly
	// the number of readings its kind requires.
	ErrInvalidParameterCount = errors.New("invalid parameter count")
)

// Kind is one of the closed set of workout categories.
type Kind int

const (
	Running Kind = iota + 1
	Walking
	Swimming
)

type kindInfo struct {
	code    string
	name    string
	arity   int
	lenStep float64 // metres per step or stroke
}

var kindTable = map[Kind]kindInfo{
	Running:  {code: "RUN", name: "Running", arity: 3, lenStep: 0.65},
	Walking:  {code: "WLK", name: "SportsWalking", arity: 4, lenStep: 0.65},
	Swimming: {code: "SWM", name: "Swimming", arity: 5, lenStep: 1.38},
}

var kindsByCode = map[string]Kind{
	"RUN": Running,
	"WLK": Walking,
	"SWM": Swimming,
}

// ParseKind maps a three-letter workout code to its Kind. Codes are case sensitive.
func ParseKind(code string) (Kind, error) {
	kind, ok := kindsByCode[code]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownWorkoutKind, code)
	}
	return kind, nil
}

// Kinds returns every supported kind in code order RUN, WLK, SWM.
func Kinds() []Kind {
	return []Kind{Running, Walking, Swimming}
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	_, ok := kindTable[k]
	return ok
}

// Code returns the sensor code of the kind, e.g. "RUN".
func (k Kind) Code() string {
	return kindTable[k].code
}

// Arity is the number of readings a sample of this kind carries.
func (k Kind) Arity() int {
	return kindTable[k].arity
}

// String returns the workout type name printed in reports.
func (k Kind) String() string {
	if info, ok := kindTable[k]; ok {
		return info.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText renders the kind by its type name.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownWorkoutKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText accepts the type name written by MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	for _, kind := range Kinds() {
		if kindTable[kind].name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownWorkoutKind, text)
}

// Sample is one raw sensor package: a workout code and its positional readings.
type Sample struct {
	Code   string    `json:"code"`
	Params []float64 `json:"params"`
}

func (s Sample) String() string {
	parts := make([]string, len(s.Params))
	for i, p := range s.Params {
		parts[i] = fmt.Sprint(p)
	}
	return fmt.Sprintf("%s [%s]", s.Code, strings.Join(parts, ", "))
}

// Record is a sample bound to named fields. Fields the kind does not use stay zero.
type Record struct {
	Kind        Kind
	Action      float64 // steps, or strokes when swimming
	DurationH   float64
	WeightKG    float64
	HeightCM    float64
	PoolLengthM float64
	PoolCount   float64
}

// NewRecord binds params positionally according to the kind's schema:
//
//	RUN: action, duration_h, weight_kg
//	WLK: action, duration_h, weight_kg, height_cm
//	SWM: action, duration_h, weight_kg, pool_length_m, pool_count
func NewRecord(kind Kind, params []float64) (Record, error) {
	if !kind.Valid() {
		return Record{}, fmt.Errorf("%w: %d", ErrUnknownWorkoutKind, int(kind))
	}
	if want := kind.Arity(); len(params) != want {
		return Record{}, fmt.Errorf("%w: %s expects %d readings, got %d",
			ErrInvalidParameterCount, kind.Code(), want, len(params))
	}

	rec := Record{
		Kind:      kind,
		Action:    params[0],
		DurationH: params[1],
		WeightKG:  params[2],
	}
	switch kind {
	case Walking:
		rec.HeightCM = params[3]
	case Swimming:
		rec.PoolLengthM = params[3]
		rec.PoolCount = params[4]
	}
	return rec, nil
}

// Distance is the step-based distance in km. Swimming uses its stroke length
// here even though its mean speed is derived from pool geometry.
func (r Record) Distance() float64 {
	return r.Action * kindTable[r.Kind].lenStep / mInKm
}

// MeanSpeed is the average speed over the whole duration in km/h.
func (r Record) MeanSpeed() float64 {
	if r.Kind == Swimming {
		return r.PoolLengthM * r.PoolCount / mInKm / r.DurationH
	}
	return r.Distance() / r.DurationH
}

// SpentCalories returns the kcal burned according to the kind's formula.
func (r Record) SpentCalories() float64 {
	speed := r.MeanSpeed()
	switch r.Kind {
	case Running:
		return (runCaloriesSpeedMultiplier*speed - runCaloriesSpeedShift) *
			r.WeightKG / mInKm * r.DurationH * minInH
	case Walking:
		return (walkCaloriesWeightMultiplier +
			floorDiv(speed*speed, r.HeightCM)*walkCaloriesSpeedMultiplier) *
			r.WeightKG * r.DurationH * minInH
	case Swimming:
		return (speed + swimCaloriesSpeedShift) * swimCaloriesWeightMultiplier * r.WeightKG
	}
	return 0
}

// Report computes the summary for the record.
func (r Record) Report() Report {
	return Report{
		Kind:     r.Kind,
		Duration: r.DurationH,
		Distance: r.Distance(),
		Speed:    r.MeanSpeed(),
		Calories: r.SpentCalories(),
	}
}

// Resolve selects the formulas for code and computes the report for params.
// It fails with ErrUnknownWorkoutKind or ErrInvalidParameterCount.
func Resolve(code string, params []float64) (Report, error) {
	kind, err := ParseKind(code)
	if err != nil {
		return Report{}, err
	}
	rec, err := NewRecord(kind, params)
	if err != nil {
		return Report{}, err
	}
	return rec.Report(), nil
}

// ResolveSample is Resolve for a Sample.
func ResolveSample(s Sample) (Report, error) {
	return Resolve(s.Code, s.Params)
}

// floorDiv is floating-point floor division: the quotient is derived from
// fmod and corrected toward negative infinity, so 34.2225 // 180 is 0 and
// -1 // 3 is -1. A zero divisor yields NaN.
func floorDiv(a, b float64) float64 {
	mod := math.Mod(a, b)
	div := (a - mod) / b
	if mod != 0 && (b < 0) != (mod < 0) {
		div -= 1
	}
	if div == 0 {
		return math.Copysign(0, a/b)
	}
	floor := math.Floor(div)
	if div-floor > 0.5 {
		floor++
	}
	return floor
}
