package models

import "time"

type FavoriteMeal struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	UserID       string    `gorm:"uniqueIndex:idx_favorite_user_meal;size:64;not null" json:"-"`
	IDMeal       string    `gorm:"uniqueIndex:idx_favorite_user_meal;size:32;not null" json:"idMeal"`
	StrMeal      string    `json:"strMeal"`
	StrMealThumb string    `json:"strMealThumb"`
	CreatedAt    time.Time `json:"createdAt"`
}
