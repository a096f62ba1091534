package message

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// Log records one SMS attempt, delivered or not.
type Log struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Recipient string    `db:"recipient" json:"recipient"`
	Body      string    `db:"body" json:"body"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
