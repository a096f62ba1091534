package access

import (
	"time"

	"github.com/google/uuid"
)

const (
	ResultGranted = "granted"
	ResultDenied  = "denied"
	ResultUnknown = "unknown_badge"
)

// EntryLog records one turnstile event reported by the access controller.
type EntryLog struct {
	ID         uuid.UUID     `db:"id" json:"id"`
	MemberID   uuid.NullUUID `db:"member_id" json:"member_id,omitempty"`
	BadgeID    string        `db:"badge_id" json:"badge_id"`
	MemberName string        `db:"member_name" json:"member_name"`
	Result     string        `db:"result" json:"result"`
	OccurredAt time.Time     `db:"occurred_at" json:"occurred_at"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
}
