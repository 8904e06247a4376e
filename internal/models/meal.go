package models

import "time"

// Meal is a single logged meal. CreatedAt is the ordering key for the
// best-diet-sequence computation.
type Meal struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name"`
	Desc        string    `json:"desc"`
	Calories    float64   `json:"calories"`
	IsInTheDiet bool      `json:"isInTheDiet" gorm:"column:is_in_the_diet"`
	CreatedAt   time.Time `json:"created_at"`
	UserID      string    `json:"user_id" gorm:"index;type:varchar(36)"`
}

// MealWithOwner is the read model for meal listings, joining in the owning
// user's name.
type MealWithOwner struct {
	Meal
	UserName string `json:"user_name" gorm:"column:user_name"`
}
