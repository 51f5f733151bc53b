package models

import (
	"time"

	"github.com/google/uuid"
)

type Portfolio struct {
	ID           uuid.UUID     `json:"id"`
	UserID       string        `json:"-"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Currency     string        `json:"currency"`
	Transactions []Transaction `json:"transactions,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
