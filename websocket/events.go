package websocket

import "time"

// Event types for WebSocket messages
const (
	EventCheckInCreated = "checkin:created"
	EventGymCreated     = "gym:created"
)

// Message is the envelope written to every client.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	SentAt  time.Time   `json:"sentAt"`
}

// CheckInEvent is broadcast after a check-in commits.
type CheckInEvent struct {
	CheckInID   uint      `json:"checkInId"`
	GymID       uint      `json:"gymId"`
	GymName     string    `json:"gymName"`
	PartnerID   uint      `json:"partnerId"`
	UserName    string    `json:"userName"`
	CreditsUsed int       `json:"creditsUsed"`
	Timestamp   time.Time `json:"timestamp"`
}

// GymEvent is broadcast when an owner lists a new gym.
type GymEvent struct {
	GymID     uint   `json:"gymId"`
	GymName   string `json:"gymName"`
	PartnerID uint   `json:"partnerId"`
}
