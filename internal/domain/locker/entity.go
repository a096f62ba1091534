package locker

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status of a locker assignment
type Status string

const (
	StatusActive   Status = "active"
	StatusExpired  Status = "expired"
	StatusReleased Status = "released"
)

// Locker is a catalog entry: a rentable locker type with price and duration.
type Locker struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	Months    int             `db:"months" json:"months"`
	Price     decimal.Decimal `db:"price" json:"price"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// Assignment binds a member to a physical locker number for a period.
// LockerNumber is unique among active assignments.
type Assignment struct {
	ID           uuid.UUID `db:"id" json:"id"`
	MemberID     uuid.UUID `db:"member_id" json:"member_id"`
	LockerID     uuid.UUID `db:"locker_id" json:"locker_id"`
	LockerNumber string    `db:"locker_number" json:"locker_number"`
	StartDate    time.Time `db:"start_date" json:"start_date"`
	EndDate      time.Time `db:"end_date" json:"end_date"`
	Status       Status    `db:"locker_status" json:"locker_status"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
