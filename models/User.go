package models

import (
	"gorm.io/gorm"
)

// User is both the guest making reservations and the host owning spaces;
// Role tells them apart. Soft-deleted users are treated as gone everywhere.
type User struct {
	gorm.Model
	LoginID  string `json:"loginId" gorm:"uniqueIndex;size:50"`
	Password string `json:"-"`
	Name     string `json:"name"`
	Phone    string `json:"phone" gorm:"size:20"`
	Email    string `json:"email"`
	Role     string `json:"role" gorm:"type:varchar(20);default:guest"` // guest, host
}
