package contact

import "time"

type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type Stats struct {
	TotalMessages  int `json:"total_messages"`
	UnreadMessages int `json:"unread_messages"`
	ReadMessages   int `json:"read_messages"`
	ThisWeek       int `json:"messages_this_week"`
}

// CreateRequest payload of message intake.
// swagger:model CreateContactRequest
type CreateRequest struct {
	Name    string `json:"name"    example:"Luis Moreno"`
	Email   string `json:"email"   example:"luis@example.com"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject" example:"Stock availability"`
	Message string `json:"message" example:"Do you ship to Cordoba?"`
}
