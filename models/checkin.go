package models

import "time"

// CheckIn is written once per successful check-in and never updated.
type CheckIn struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"userId" gorm:"not null;index"`
	UserName    string    `json:"userName" gorm:"not null"`
	UserMobile  string    `json:"userMobile" gorm:"not null"`
	GymID       uint      `json:"gymId" gorm:"not null;index"`
	GymName     string    `json:"gymName" gorm:"not null"`
	GymAddress  string    `json:"gymAddress" gorm:"not null"`
	CreditsUsed int       `json:"creditsUsed" gorm:"not null;default:1"`
	Timestamp   time.Time `json:"timestamp" gorm:"not null;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (CheckIn) TableName() string {
	return "check_ins"
}
