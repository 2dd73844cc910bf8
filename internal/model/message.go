package model

import "time"

// Message represents a contact-form submission with read/unread status.
// ID and CreatedAt are assigned by the store on insert and never change;
// IsRead is the only mutable field and only ever moves false → true.
type Message struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"message"`
	CreatedAt time.Time `json:"timestamp"`
	IsRead    bool      `json:"is_read"`
}
