package chat

type StartConversationRequest struct {
	PropertyID int64 `json:"property_id" binding:"required"`
}

type SendMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

// WSMessage is the frame pushed to live websocket connections when a
// new message lands in one of the user's conversations.
type WSMessage struct {
	Type           string `json:"type"`
	ConversationID int64  `json:"conversation_id"`
	MessageID      int64  `json:"message_id"`
	SenderID       int64  `json:"sender_id"`
	Body           string `json:"body"`
	SentAt         string `json:"sent_at"`
}
