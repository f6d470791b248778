package models

import (
	"time"

	"gorm.io/gorm"
)

// Review left by a guest for a stay. Looked up by (guest, space, reserved
// date) to decorate past-reservation listings; never written by this server.
type Review struct {
	gorm.Model
	GuestID      uint      `json:"guestID" gorm:"not null;index"`
	SpaceID      uint      `json:"spaceID" gorm:"not null;index"`
	ReservedDate time.Time `json:"reservedDate" gorm:"type:date;not null"`
	Stars        int       `json:"stars" gorm:"check:stars >= 1 AND stars <= 5"`
	Content      string    `json:"content" gorm:"type:text"`

	Guest *User  `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
	Space *Space `json:"space,omitempty" gorm:"foreignKey:SpaceID"`
}
