package models

import (
    "time"

    "gorm.io/datatypes"
    "gorm.io/gorm"
)

// ProgressRecord is one body-measurement entry in a client's log.
// Measurement fields are pointers so an unreported metric stays null
// instead of a misleading zero.
type ProgressRecord struct {
    gorm.Model
    UserID     uint           `gorm:"index;not null" json:"user_id"`
    Weight     *float64       `json:"weight,omitempty"`   // kg
    BodyFat    *float64       `json:"body_fat,omitempty"` // percent
    Muscle     *float64       `json:"muscle,omitempty"`   // kg
    Notes      string         `gorm:"type:text" json:"notes,omitempty"`
    Photos     datatypes.JSON `json:"photos,omitempty"` // array of S3 URLs
    RecordDate time.Time      `gorm:"index;not null" json:"record_date"`
}
