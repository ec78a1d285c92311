//go:build js && wasm

package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"syscall/js"

	ftracker "fit-tracker"
	"fit-tracker/pipeline"
	"fit-tracker/sensor"
)

func main() {
	js.Global().Set("resolveWorkout", js.FuncOf(resolveWorkout))
	js.Global().Set("analyzeFit", js.FuncOf(analyzeFit))
	select {}
}

// resolveWorkout(code string, params number[])
func resolveWorkout(_ js.Value, args []js.Value) any {
	if len(args) < 2 {
		return failure(errors.New("expected arguments: code(string), params(number[])"))
	}
	if args[0].Type() != js.TypeString {
		return failure(errors.New("code must be a string"))
	}

	params, err := getFloats(args[1])
	if err != nil {
		return failure(err)
	}

	report, err := ftracker.Resolve(args[0].String(), params)
	if err != nil {
		return failure(err)
	}
	return map[string]any{
		"ok":      true,
		"message": report.Message(),
		"report":  reportToAny(report),
	}
}

// analyzeFit(fileBytes Uint8Array, options {weight_kg, height_cm, format})
func analyzeFit(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return failure(errors.New("expected arguments: fileBytes(Uint8Array), options(object)"))
	}
	fileArg := args[0]
	if fileArg.IsUndefined() || fileArg.IsNull() || fileArg.Get("length").Int() == 0 {
		return failure(errors.New("fit file bytes are required"))
	}
	optsArg := js.Undefined()
	if len(args) > 1 {
		optsArg = args[1]
	}

	fileBytes := make([]byte, fileArg.Get("length").Int())
	if n := js.CopyBytesToGo(fileBytes, fileArg); n == 0 {
		return failure(errors.New("failed to read FIT bytes from JS input"))
	}

	athlete := sensor.DefaultAthlete()
	athlete.WeightKG = getFloat(optsArg, "weight_kg", athlete.WeightKG)
	athlete.HeightCM = getFloat(optsArg, "height_cm", athlete.HeightCM)
	if err := athlete.Validate(); err != nil {
		return failure(err)
	}
	samples, err := sensor.ReadFITBytes(fileBytes, athlete)
	if err != nil {
		return failure(err)
	}

	var out bytes.Buffer
	outcomes, err := pipeline.Process(context.Background(), samples, &out)
	if err != nil {
		return failure(err)
	}

	format := getString(optsArg, "format", "parquet")
	data, err := pipeline.MarshalReports(pipeline.BuildReportRows(outcomes), format)
	if err != nil {
		return failure(err)
	}
	payload := js.Global().Get("Uint8Array").New(len(data))
	js.CopyBytesToJS(payload, data)

	var lines []string
	if out.Len() > 0 {
		lines = strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	}
	return map[string]any{
		"ok":      true,
		"lines":   stringsToAny(lines),
		"reports": payload,
		"format":  format,
	}
}

func failure(err error) map[string]any {
	return map[string]any{
		"ok":        false,
		"error":     err.Error(),
		"not_found": errors.Is(err, ftracker.ErrUnknownWorkoutKind),
	}
}

func reportToAny(r ftracker.Report) map[string]any {
	return map[string]any{
		"kind":          r.Kind.String(),
		"duration_h":    r.Duration,
		"distance_km":   r.Distance,
		"speed_kmh":     r.Speed,
		"calories_kcal": r.Calories,
	}
}

func getFloats(v js.Value) ([]float64, error) {
	if v.IsUndefined() || v.IsNull() || !v.InstanceOf(js.Global().Get("Array")) {
		return nil, errors.New("params must be an array of numbers")
	}
	n := v.Length()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		item := v.Index(i)
		if item.Type() != js.TypeNumber {
			return nil, errors.New("params must be an array of numbers")
		}
		out[i] = item.Float()
	}
	return out, nil
}

func getString(v js.Value, key, fallback string) string {
	if v.IsUndefined() || v.IsNull() {
		return fallback
	}
	out := v.Get(key)
	if out.IsUndefined() || out.IsNull() {
		return fallback
	}
	s := out.String()
	if s == "" || s == "undefined" || s == "null" {
		return fallback
	}
	return s
}

func getFloat(v js.Value, key string, fallback float64) float64 {
	if v.IsUndefined() || v.IsNull() {
		return fallback
	}
	out := v.Get(key)
	if out.IsUndefined() || out.IsNull() || out.Type() != js.TypeNumber {
		return fallback
	}
	return out.Float()
}

func stringsToAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
