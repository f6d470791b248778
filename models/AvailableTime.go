package models

import (
	"time"

	"gorm.io/gorm"
)

// AvailableTime is the host-declared booking window of a space for one date.
// Times are wall-clock "HH:MM" strings on that date.
type AvailableTime struct {
	gorm.Model
	SpaceID   uint      `json:"spaceID" gorm:"not null;index"`
	Date      time.Time `json:"date" gorm:"type:date;not null;index"`
	StartTime string    `json:"startTime" gorm:"size:5"`
	EndTime   string    `json:"endTime" gorm:"size:5"`

	Space *Space `json:"space,omitempty" gorm:"foreignKey:SpaceID"`
}
