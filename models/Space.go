package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Space is a bookable unit owned by a host. Reservation logic only consumes
// PricePerHour and MaxCapacity; the rest is listing metadata managed by the
// host-side subsystem.
type Space struct {
	gorm.Model
	HostID       uint           `json:"hostID" gorm:"not null;index"`
	Name         string         `json:"name"`
	Description  string         `json:"description" gorm:"type:text"`
	Address      string         `json:"address"`
	PricePerHour int            `json:"pricePerHour" gorm:"not null"`
	MaxCapacity  int            `json:"maxCapacity" gorm:"not null"`
	Tags         datatypes.JSON `json:"tags"`

	Host           *User           `json:"host,omitempty" gorm:"foreignKey:HostID"`
	AvailableTimes []AvailableTime `json:"availableTimes,omitempty" gorm:"foreignKey:SpaceID"`
}

// MarshalJSON renders Tags as a plain string array instead of raw JSON bytes.
func (s *Space) MarshalJSON() ([]byte, error) {
	type Alias Space
	aux := &struct {
		Tags []string `json:"tags"`
		*Alias
	}{
		Tags:  []string{},
		Alias: (*Alias)(s),
	}

	if s.Tags != nil {
		var tags []string
		if err := json.Unmarshal(s.Tags, &tags); err == nil {
			aux.Tags = tags
		}
	}

	return json.Marshal(aux)
}
