package models

import (
    "time"

    "gorm.io/gorm"
)

const (
    ContractActive    = "ACTIVE"
    ContractPaused    = "PAUSED"
    ContractCancelled = "CANCELLED"
    ContractCompleted = "COMPLETED"
)

// Contract is the service relationship between one client and one
// nutritionist. At most one ACTIVE contract may exist per pair.
type Contract struct {
    gorm.Model
    ClientID       uint       `gorm:"index;not null" json:"client_id"`
    NutritionistID uint       `gorm:"index;not null" json:"nutritionist_id"`
    Status         string     `gorm:"size:16;not null;default:ACTIVE" json:"status"`
    MonthlyPrice   float64    `gorm:"not null" json:"monthly_price"`
    StartDate      time.Time  `gorm:"not null" json:"start_date"`
    EndDate        *time.Time `json:"end_date,omitempty"` // stamped on CANCELLED/COMPLETED

    Client       User `gorm:"foreignKey:ClientID" json:"client,omitempty"`
    Nutritionist User `gorm:"foreignKey:NutritionistID" json:"nutritionist,omitempty"`
}
