package models

import (
	"time"

	"gorm.io/gorm"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationAccepted  ReservationStatus = "ACCEPTED"
	ReservationCancelled ReservationStatus = "CANCELLED"
	ReservationCompleted ReservationStatus = "COMPLETED"
)

// Reservation is a guest booking of a space for one date and an integral-hour
// time range. Created PENDING; cancellable only while PENDING; ACCEPTED rows
// whose date has passed are flipped to COMPLETED when the guest reads their
// past reservations.
type Reservation struct {
	gorm.Model
	GuestID        uint              `json:"guestID" gorm:"not null;index"`
	HostID         uint              `json:"hostID" gorm:"not null;index"`
	SpaceID        uint              `json:"spaceID" gorm:"not null;index"`
	Date           time.Time         `json:"date" gorm:"type:date;not null;index"`
	StartTime      string            `json:"startTime" gorm:"size:5"`
	EndTime        string            `json:"endTime" gorm:"size:5"`
	Price          int               `json:"price"`
	GuestCount     int               `json:"guestCount"`
	UsagePurpose   string            `json:"usagePurpose" gorm:"type:text"`
	RequestMessage string            `json:"requestMessage" gorm:"type:text"`
	Status         ReservationStatus `json:"status" gorm:"type:varchar(20);index"`

	Guest *User  `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
	Host  *User  `json:"host,omitempty" gorm:"foreignKey:HostID"`
	Space *Space `json:"space,omitempty" gorm:"foreignKey:SpaceID"`
}
