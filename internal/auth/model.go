package auth

import "time"

// Farmer is the account entity. Password holds the bcrypt hash.
type Farmer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Password  string    `json:"-"`
	Language  string    `json:"language"`
	State     string    `json:"state,omitempty"`
	District  string    `json:"district,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type RegisterInput struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Language string `json:"language"`
	State    string `json:"state"`
	District string `json:"district"`
}
