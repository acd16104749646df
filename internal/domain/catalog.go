package domain

import "time"

// Category groups messages.
type Category struct {
	ID        ID        `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is a single text entry filed under a category.
type Message struct {
	ID         ID        `json:"id"`
	CategoryID ID        `json:"category_id"`
	Text       string    `json:"message_text"`
	CreatedAt  time.Time `json:"created_at"`
}

// Dashboard aggregates counts shown on the admin landing screen.
type Dashboard struct {
	CategoryCount int
	MessageCount  int
}
