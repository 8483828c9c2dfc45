package model

import "time"

type ConversationID string

type Conversation struct {
	ID            ConversationID `json:"id"`
	CustomerID    CustomerID     `json:"customer_id"`
	CustomerName  string         `json:"customer_name"`
	Channel       string         `json:"channel"` // "whatsapp" | "web" | "instagram"
	Unread        bool           `json:"unread"`
	LastMessage   string         `json:"last_message"`
	LastMessageAt time.Time      `json:"last_message_at"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
