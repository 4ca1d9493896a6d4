package user

import "time"

type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegisterRequest payload of account creation.
// swagger:model RegisterRequest
type RegisterRequest struct {
	FirstName string `json:"first_name" example:"Amira"`
	LastName  string `json:"last_name"  example:"Haddad"`
	Email     string `json:"email"      example:"amira@example.com"`
	Password  string `json:"password"   example:"s3cret-pass"`
}

// LoginRequest payload of credential verification.
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email"    example:"amira@example.com"`
	Password string `json:"password" example:"s3cret-pass"`
}
