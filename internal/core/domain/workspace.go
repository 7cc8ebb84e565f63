package domain

import (
	"time"

	"github.com/google/uuid"
)

// Workspace is a tenant boundary. It owns vault accounts and, through
// address ownership, views over transactions.
type Workspace struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	APIKeyHash string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}
