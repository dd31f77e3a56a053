package models

import (
    "gorm.io/gorm"
)

// Meal types, in day order.
const (
    MealBreakfast      = "BREAKFAST"
    MealMorningSnack   = "MORNING_SNACK"
    MealLunch          = "LUNCH"
    MealAfternoonSnack = "AFTERNOON_SNACK"
    MealDinner         = "DINNER"
    MealEveningSnack   = "EVENING_SNACK"
)

// MealTypes lists every valid Meal.Type value.
var MealTypes = []string{
    MealBreakfast, MealMorningSnack, MealLunch,
    MealAfternoonSnack, MealDinner, MealEveningSnack,
}

// One meal inside a plan. The four nutrient fields are a snapshot:
// they are recomputed from Foods whenever the food list is replaced
// and are NOT reconciled automatically if catalog foods change later.
type Meal struct {
    gorm.Model
    MealPlanID    uint   `gorm:"index;not null" json:"meal_plan_id"`
    Type          string `gorm:"size:24;not null" json:"type"`
    Name          string `gorm:"not null" json:"name"`
    SuggestedTime string `gorm:"size:8" json:"suggested_time,omitempty"` // "HH:MM"

    Calories float64 `json:"calories"`
    Proteins float64 `json:"proteins"`
    Carbs    float64 `json:"carbs"`
    Fats     float64 `json:"fats"`

    Foods []MealFood `json:"foods,omitempty"`
}

// MealFood links a catalog food into a meal; Quantity is grams.
type MealFood struct {
    gorm.Model
    MealID   uint    `gorm:"index;not null" json:"meal_id"`
    FoodID   uint    `gorm:"index;not null" json:"food_id"`
    Quantity float64 `gorm:"not null" json:"quantity"`

    Food Food `json:"food,omitempty"`
}

// ValidMealType reports whether t is one of the six meal slots.
func ValidMealType(t string) bool {
    for _, m := range MealTypes {
        if m == t {
            return true
        }
    }
    return false
}
