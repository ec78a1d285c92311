package ftracker

import (
	"fmt"
	"strings"
)

// NotFoundMessage is printed instead of a report when a sample's code is unknown.
const NotFoundMessage = "Код тренировки не найден."

// Report is the computed summary of one workout.
type Report struct {
	Kind     Kind    `json:"kind"`
	Duration float64 `json:"duration_h"`
	Distance float64 `json:"distance_km"`
	Speed    float64 `json:"speed_kmh"`
	Calories float64 `json:"calories_kcal"`
}

// Message renders the report as a one-line training summary.
func (r Report) Message() string {
	return Format(r)
}

// Format renders r with every numeric field fixed at three decimals.
// Non-finite fields, such as the speed of a zero-duration workout, are
// printed as +Inf, -Inf or NaN instead.
func Format(r Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Тип тренировки: %s; ", r.Kind)
	fmt.Fprintf(&b, "Длительность: %.3f ч.; ", r.Duration)
	fmt.Fprintf(&b, "Дистанция: %.3f км; ", r.Distance)
	fmt.Fprintf(&b, "Ср. скорость: %.3f км/ч; ", r.Speed)
	fmt.Fprintf(&b, "Потрачено ккал: %.3f.", r.Calories)

	return b.String()
}
