package model

import "time"

// Message is a dashboard message between two users.
type Message struct {
	ID          string    `json:"id"`
	SenderID    int       `json:"sender_id"`
	RecipientID int       `json:"recipient_id"`
	Body        string    `json:"body"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}
