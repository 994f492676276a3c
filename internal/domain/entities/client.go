package entities

import "time"

// Client is a billing client managed by the back-office.
//
// Storage model (DynamoDB):
//   - PK: id
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
