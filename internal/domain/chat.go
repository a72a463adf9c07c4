package domain

import "time"

type Conversation struct {
	ID         int64     `json:"id"`
	PropertyID int64     `json:"property_id"`
	GuestID    int64     `json:"guest_id"`
	HostID     int64     `json:"host_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Participant reports whether userID is one of the two sides of the
// conversation.
func (c *Conversation) Participant(userID int64) bool {
	return c.GuestID == userID || c.HostID == userID
}

type Message struct {
	ID             int64      `json:"id"`
	ConversationID int64      `json:"conversation_id"`
	SenderID       int64      `json:"sender_id"`
	Body           string     `json:"body"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
