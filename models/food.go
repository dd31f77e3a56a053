package models

import "gorm.io/gorm"

// Food is a catalog entry; all nutrient values are per 100 g.
type Food struct {
    gorm.Model
    Name     string  `gorm:"not null;index" json:"name"`
    Category string  `gorm:"index" json:"category,omitempty"`
    Calories float64 `gorm:"not null" json:"calories"`
    Proteins float64 `gorm:"not null" json:"proteins"`
    Carbs    float64 `gorm:"not null" json:"carbs"`
    Fats     float64 `gorm:"not null" json:"fats"`
    Fiber    float64 `json:"fiber,omitempty"`

    // Nutritionist who created the entry; only they may change it.
    CreatedBy uint `gorm:"index" json:"created_by"`
}
