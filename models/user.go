package models

import (
    "gorm.io/gorm"
)

const (
    RoleClient       = "CLIENT"
    RoleNutritionist = "NUTRITIONIST"
)

type User struct {
    gorm.Model
    Email    string `gorm:"uniqueIndex;not null" json:"email"`
    Password string `gorm:"not null" json:"-"`
    Name     string `json:"name"`
    Role     string `gorm:"size:16;not null;default:CLIENT" json:"role"`

    // Marketplace profile fields, filled in by nutritionists.
    Bio        string  `gorm:"type:text" json:"bio,omitempty"`
    Specialty  string  `json:"specialty,omitempty"`
    HourlyRate float64 `json:"hourly_rate,omitempty"`
}
