package models

// SavedMeal is one planned meal as persisted. Records are append-only.
type SavedMeal struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id,omitempty"`
	UserID      string    `gorm:"index:idx_saved_meals_user_date;size:64;not null" json:"userId"`
	Date        string    `gorm:"index:idx_saved_meals_user_date;size:10;not null" json:"date"` // YYYY-MM-DD
	MealTime    string    `gorm:"size:16" json:"mealTime"`
	MealType    MealType  `gorm:"size:20" json:"mealType"`
	MealName    string    `gorm:"not null" json:"mealName"`
	MealDetails *MealData `gorm:"type:text;serializer:json" json:"mealDetails"`
	Timestamp   int64     `gorm:"index" json:"timestamp"` // epoch millis
}

// TimeInfo rebuilds the slot the record was planned for. A record saved
// without a time has no slot.
func (m SavedMeal) TimeInfo() *MealTimeInfo {
	info := &MealTimeInfo{Time: m.MealTime, MealType: m.MealType}
	if info.Empty() {
		return nil
	}
	return info
}

// PlanEntry is one line of the plan mirror. MealType and Accent are kept
// next to the rendered text so clients never have to parse Description.
type PlanEntry struct {
	ID          string   `json:"id,omitempty"`
	Description string   `json:"description"`
	MealType    MealType `json:"mealType"`
	Accent      string   `json:"accent,omitempty"`
}
