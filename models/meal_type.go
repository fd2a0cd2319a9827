package models

import (
	"encoding/json"
	"fmt"
)

// MealType tags when in the day a meal happens. The zero value is MealTypeNone.
type MealType string

const (
	MealTypeNone   MealType = ""
	Breakfast      MealType = "breakfast"
	Lunch          MealType = "lunch"
	Dinner         MealType = "dinner"
	AfternoonSnack MealType = "afternoon_snack"
	MidnightSnack  MealType = "midnight_snack"
)

// MealTypes lists the selectable types in display order.
var MealTypes = []MealType{Breakfast, Lunch, AfternoonSnack, Dinner, MidnightSnack}

// ParseMealType accepts the wire spelling of a meal type. An empty string is MealTypeNone.
func ParseMealType(s string) (MealType, error) {
	t := MealType(s)
	if t == MealTypeNone || t.Valid() {
		return t, nil
	}
	return MealTypeNone, fmt.Errorf("unknown meal type %q", s)
}

func (t MealType) Valid() bool {
	switch t {
	case Breakfast, Lunch, Dinner, AfternoonSnack, MidnightSnack:
		return true
	}
	return false
}

// Emoji is the icon shown in front of a plan entry.
func (t MealType) Emoji() string {
	switch t {
	case Breakfast:
		return "🍳"
	case Lunch:
		return "🥗"
	case Dinner:
		return "🍽️"
	case AfternoonSnack:
		return "🍎"
	case MidnightSnack:
		return "🍪"
	default:
		return "🕒"
	}
}

// Label is the human tag used by the time picker ("🍳 Breakfast").
func (t MealType) Label() string {
	switch t {
	case Breakfast:
		return "🍳 Breakfast"
	case Lunch:
		return "🥗 Lunch"
	case Dinner:
		return "🍽️ Dinner"
	case AfternoonSnack:
		return "🍎 Afternoon Snack"
	case MidnightSnack:
		return "🍪 Midnight Snack"
	default:
		return ""
	}
}

// Accent is the border colour a client uses for entries of this type.
func (t MealType) Accent() string {
	switch t {
	case Breakfast, AfternoonSnack:
		return "#FFB340"
	case Lunch:
		return "#34C759"
	case Dinner:
		return "#A35C7A"
	case MidnightSnack:
		return "#C890A7"
	default:
		return ""
	}
}

// MarshalJSON writes MealTypeNone as null.
func (t MealType) MarshalJSON() ([]byte, error) {
	if t == MealTypeNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(t))
}

func (t *MealType) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*t = MealTypeNone
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseMealType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
