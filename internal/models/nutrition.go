package models

import "time"

// NutritionLog aggregates a user's intake for one date.
type NutritionLog struct {
	Base
	UserID        string    `gorm:"type:uuid;not null;uniqueIndex:idx_nutrition_logs_user_date" json:"userId"`
	Date          time.Time `gorm:"type:date;not null;uniqueIndex:idx_nutrition_logs_user_date" json:"date"`
	TotalCalories int       `gorm:"not null;default:0" json:"totalCalories"`
	TotalProtein  int       `gorm:"not null;default:0" json:"totalProtein"` // grams
	TotalCarbs    int       `gorm:"not null;default:0" json:"totalCarbs"`   // grams
	TotalFat      int       `gorm:"not null;default:0" json:"totalFat"`     // grams
	WaterIntake   *int      `json:"waterIntake,omitempty"`                  // ml
	Notes         string    `gorm:"type:text" json:"notes,omitempty"`
	User          *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Meals         []Meal    `gorm:"foreignKey:NutritionLogID;constraint:OnDelete:CASCADE" json:"meals,omitempty"`
}

// Meal is one eating occasion within a nutrition log.
type Meal struct {
	Key
	NutritionLogID string     `gorm:"type:uuid;not null;index" json:"nutritionLogId"`
	MealType       MealType   `gorm:"size:20;not null" json:"mealType"`
	Name           string     `gorm:"size:100;not null" json:"name"`
	Calories       *int       `json:"calories,omitempty"`
	Protein        *float64   `gorm:"type:decimal(5,1)" json:"protein,omitempty"` // grams
	Carbs          *float64   `gorm:"type:decimal(5,1)" json:"carbs,omitempty"`   // grams
	Fat            *float64   `gorm:"type:decimal(5,1)" json:"fat,omitempty"`     // grams
	Time           *time.Time `json:"time,omitempty"`
	Notes          string     `gorm:"type:text" json:"notes,omitempty"`
}
