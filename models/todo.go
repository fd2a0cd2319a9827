package models

import "time"

// Todo is a user-owned task; unrelated to meal planning.
type Todo struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"index;size:64;not null" json:"userId"`
	Task      string    `gorm:"not null" json:"task"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}
