package models

import "time"

const DefaultGymRating = 4.0

type Gym struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"not null"`
	Address    string    `json:"address" gorm:"not null"`
	District   string    `json:"district" gorm:"not null"`
	Image      string    `json:"image" gorm:"not null"`
	OpenTime   string    `json:"openTime"`
	CloseTime  string    `json:"closeTime"`
	Rating     float64   `json:"rating" gorm:"default:4"`
	PartnerID  uint      `json:"partnerId" gorm:"not null;index"`
	CreditCost int       `json:"creditCost" gorm:"not null;default:1"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// EffectiveCreditCost is the number of credits one visit costs.
func (g *Gym) EffectiveCreditCost() int {
	if g.CreditCost <= 0 {
		return 1
	}
	return g.CreditCost
}
