package models

import (
    "time"

    "gorm.io/gorm"
)

type MealPlan struct {
    gorm.Model
    ContractID     uint      `gorm:"index;not null" json:"contract_id"`
    NutritionistID uint      `gorm:"index;not null" json:"nutritionist_id"`
    Title          string    `gorm:"not null" json:"title"`
    StartDate      time.Time `gorm:"not null" json:"start_date"`
    EndDate        time.Time `gorm:"not null" json:"end_date"` // must be after StartDate
    IsActive       bool      `gorm:"default:true" json:"is_active"`

    Meals []Meal `json:"meals,omitempty"`

    // Daily totals, summed from the meals' cached values on every read.
    TotalCalories float64 `gorm:"-" json:"total_calories"`
    TotalProteins float64 `gorm:"-" json:"total_proteins"`
    TotalCarbs    float64 `gorm:"-" json:"total_carbs"`
    TotalFats     float64 `gorm:"-" json:"total_fats"`
}
