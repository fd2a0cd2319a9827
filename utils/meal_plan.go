package utils

import (
	"fmt"

	"mealplanner/models"
)

// MealPlans maps an ISO date to the rendered plan entries for that day.
type MealPlans map[string][]string

func GetMealEmoji(t models.MealType) string {
	return t.Emoji()
}

// CreateMealDescription renders one plan line:
//
//	"{emoji} [{type}] {name} ({category}, {area}) ({time})"
//
// Without a time slot (nil or empty) the name is returned untouched. The bracketed type is
// omitted when the slot has no meal type.
func CreateMealDescription(mealName string, timeInfo *models.MealTimeInfo, mealData *models.MealData) string {
	if timeInfo.Empty() {
		return mealName
	}

	description := mealName
	if mealData != nil {
		description = fmt.Sprintf("%s (%s, %s)", mealName, mealData.StrCategory, mealData.StrArea)
	}

	emoji := timeInfo.MealType.Emoji()
	if timeInfo.MealType == models.MealTypeNone {
		return fmt.Sprintf("%s %s (%s)", emoji, description, timeInfo.Time)
	}
	return fmt.Sprintf("%s [%s] %s (%s)", emoji, timeInfo.MealType, description, timeInfo.Time)
}

// FormatSavedMealsForDisplay renders records in the order given.
func FormatSavedMealsForDisplay(meals []models.SavedMeal) []string {
	out := make([]string, 0, len(meals))
	for _, m := range meals {
		out = append(out, CreateMealDescription(m.MealName, m.TimeInfo(), m.MealDetails))
	}
	return out
}

// FormatSavedMealEntries is FormatSavedMealsForDisplay keeping the meal type
// alongside each line.
func FormatSavedMealEntries(meals []models.SavedMeal) []models.PlanEntry {
	out := make([]models.PlanEntry, 0, len(meals))
	for _, m := range meals {
		out = append(out, models.PlanEntry{
			ID:          m.ID,
			Description: CreateMealDescription(m.MealName, m.TimeInfo(), m.MealDetails),
			MealType:    m.MealType,
			Accent:      m.MealType.Accent(),
		})
	}
	return out
}

// AddMealPlan returns a copy of existing with the rendered meal appended to
// date's list. An empty name or date returns existing as is.
func AddMealPlan(mealName, date string, timeInfo *models.MealTimeInfo, existing MealPlans, mealData *models.MealData) MealPlans {
	if mealName == "" || date == "" {
		return existing
	}

	next := make(MealPlans, len(existing)+1)
	for d, list := range existing {
		next[d] = list
	}
	day := make([]string, 0, len(existing[date])+1)
	day = append(day, existing[date]...)
	next[date] = append(day, CreateMealDescription(mealName, timeInfo, mealData))
	return next
}

// PlanMirror maps an ISO date to structured plan entries.
type PlanMirror map[string][]models.PlanEntry

// AddPlanEntry is AddMealPlan for the structured mirror.
func AddPlanEntry(mealName, date string, timeInfo *models.MealTimeInfo, existing PlanMirror, mealData *models.MealData) PlanMirror {
	if mealName == "" || date == "" {
		return existing
	}

	entry := models.PlanEntry{Description: CreateMealDescription(mealName, timeInfo, mealData)}
	if !timeInfo.Empty() {
		entry.MealType = timeInfo.MealType
		entry.Accent = timeInfo.MealType.Accent()
	}

	next := make(PlanMirror, len(existing)+1)
	for d, list := range existing {
		next[d] = list
	}
	day := make([]models.PlanEntry, 0, len(existing[date])+1)
	day = append(day, existing[date]...)
	next[date] = append(day, entry)
	return next
}

// BuildPlanMirror rebuilds the mirror from scratch, grouping records by date
// and keeping their relative order.
func BuildPlanMirror(meals []models.SavedMeal) PlanMirror {
	mirror := make(PlanMirror)
	for _, m := range meals {
		e := FormatSavedMealEntries([]models.SavedMeal{m})[0]
		mirror[m.Date] = append(mirror[m.Date], e)
	}
	return mirror
}
