package utils

import (
	"fmt"

	"mealplanner/models"
)

// suggestedMealTimes pre-tags well known clock times with a meal type.
var suggestedMealTimes = map[string]models.MealType{
	"7:00 AM": models.Breakfast,
	"7:30 AM": models.Breakfast,
	"8:00 AM": models.Breakfast,
	"8:30 AM": models.Breakfast,

	"12:00 PM": models.Lunch,
	"12:30 PM": models.Lunch,
	"1:00 PM":  models.Lunch,
	"1:30 PM":  models.Lunch,

	"3:00 PM": models.AfternoonSnack,
	"3:30 PM": models.AfternoonSnack,
	"4:00 PM": models.AfternoonSnack,

	"6:00 PM": models.Dinner,
	"6:30 PM": models.Dinner,
	"7:00 PM": models.Dinner,
	"7:30 PM": models.Dinner,

	"11:00 PM": models.MidnightSnack,
	"11:30 PM": models.MidnightSnack,
	"12:00 AM": models.MidnightSnack,
	"12:30 AM": models.MidnightSnack,
}

// SlotsPerDay is the number of half-hour slots GenerateTimeSlots returns.
const SlotsPerDay = 48

// FormatClock renders hour (0-23) and minute on a 12-hour clock, e.g. "7:30 PM".
func FormatClock(hour, minute int) string {
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	display := hour
	switch {
	case hour == 0:
		display = 12
	case hour > 12:
		display = hour - 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, period)
}

// SuggestedMealType returns the meal type pre-associated with a clock time,
// or MealTypeNone.
func SuggestedMealType(clock string) models.MealType {
	return suggestedMealTimes[clock]
}

// GenerateTimeSlots returns every half hour of the day starting at midnight.
func GenerateTimeSlots() []models.MealTimeInfo {
	slots := make([]models.MealTimeInfo, 0, SlotsPerDay)
	for hour := 0; hour < 24; hour++ {
		for _, minute := range []int{0, 30} {
			clock := FormatClock(hour, minute)
			slots = append(slots, models.MealTimeInfo{
				Time:     clock,
				MealType: SuggestedMealType(clock),
			})
		}
	}
	return slots
}

// IsTimeSlot reports whether clock is one of the catalog times.
func IsTimeSlot(clock string) bool {
	for _, s := range GenerateTimeSlots() {
		if s.Time == clock {
			return true
		}
	}
	return false
}

// SlotsForType filters the catalog down to the slots suggested for t.
func SlotsForType(t models.MealType) []models.MealTimeInfo {
	var out []models.MealTimeInfo
	for _, s := range GenerateTimeSlots() {
		if s.MealType == t {
			out = append(out, s)
		}
	}
	return out
}
