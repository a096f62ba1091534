package member

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Member is a gym member. Credit is the running balance: positive means the
// gym owes the member, negative means the member owes the gym (an advance).
// It is a derived total maintained by the billing engine, never set directly.
type Member struct {
	ID                  uuid.UUID       `db:"id" json:"id"`
	Name                string          `db:"name" json:"name"`
	Phone               string          `db:"phone" json:"phone"`
	Gender              sql.NullString  `db:"gender" json:"-"`
	Address             sql.NullString  `db:"address" json:"-"`
	PhotoURL            sql.NullString  `db:"photo_url" json:"-"`
	ThumbURL            sql.NullString  `db:"thumb_url" json:"-"`
	Credit              decimal.Decimal `db:"credit" json:"credit"`
	MembershipPackageID uuid.NullUUID   `db:"membership_package_id" json:"-"`
	BadgeID             sql.NullString  `db:"badge_id" json:"-"`
	StartDate           time.Time       `db:"start_date" json:"start_date"`
	EndDate             time.Time       `db:"end_date" json:"end_date"`
	PaymentExpiryDate   time.Time       `db:"payment_expiry_date" json:"payment_expiry_date"`
	IsApproved          bool            `db:"is_approved" json:"is_approved"`
	CreatedAt           time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time       `db:"updated_at" json:"updated_at"`
}
