package models

import (
	"time"
)

type UserRole string

const (
	RoleUser UserRole = "user"
	// RoleAdmin is a gym partner account.
	RoleAdmin UserRole = "admin"
	RoleOwner UserRole = "owner"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleOwner:
		return true
	}
	return false
}

type User struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	Mobile        string     `json:"mobile" gorm:"uniqueIndex;not null"`
	Password      string     `json:"-" gorm:"not null"`
	Name          string     `json:"name" gorm:"not null"`
	Role          UserRole   `json:"role" gorm:"default:'user';index"`
	Credits       int        `json:"credits" gorm:"not null;default:0"`
	LastCheckInAt *time.Time `json:"lastCheckInAt,omitempty"`
	GymID         *uint      `json:"gymId,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
