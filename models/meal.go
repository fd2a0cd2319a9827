package models

// MealTimeInfo is a display clock time plus an optional meal type.
type MealTimeInfo struct {
	Time     string   `json:"time"`
	MealType MealType `json:"mealType"`
}

// Empty reports whether t carries neither a time nor a meal type. An empty
// slot formats and persists exactly like no slot at all.
func (t *MealTimeInfo) Empty() bool {
	return t == nil || (t.Time == "" && t.MealType == MealTypeNone)
}

// MealData is recipe metadata attached when the user picked a suggestion.
// A nil *MealData means the meal was typed in by hand.
type MealData struct {
	IDMeal       string `json:"idMeal"`
	StrMeal      string `json:"strMeal"`
	StrMealThumb string `json:"strMealThumb"`
	StrCategory  string `json:"strCategory"`
	StrArea      string `json:"strArea"`
}

// Ingredient is one name/measure pair of a recipe.
type Ingredient struct {
	Ingredient string `json:"ingredient"`
	Measure    string `json:"measure"`
}

// MealDetails is the full recipe returned by a lookup.
type MealDetails struct {
	IDMeal          string       `json:"idMeal"`
	StrMeal         string       `json:"strMeal"`
	StrMealThumb    string       `json:"strMealThumb"`
	StrCategory     string       `json:"strCategory"`
	StrArea         string       `json:"strArea"`
	StrInstructions string       `json:"strInstructions"`
	Ingredients     []Ingredient `json:"ingredients"`
}

// Summary drops the recipe body, keeping what a plan entry stores.
func (d *MealDetails) Summary() *MealData {
	if d == nil {
		return nil
	}
	return &MealData{
		IDMeal:       d.IDMeal,
		StrMeal:      d.StrMeal,
		StrMealThumb: d.StrMealThumb,
		StrCategory:  d.StrCategory,
		StrArea:      d.StrArea,
	}
}
