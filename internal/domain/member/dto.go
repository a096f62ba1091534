package member

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UpdateMemberRequest edits member identity fields. Balance and membership
// dates are owned by the billing engine and cannot be set here.
type UpdateMemberRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Phone   string `json:"phone" validate:"required,min=7,max=20"`
	Gender  string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	Address string `json:"address,omitempty" validate:"omitempty,max=255"`
	BadgeID string `json:"badge_id,omitempty" validate:"omitempty,max=50"`
}

// MemberResponse for API responses
type MemberResponse struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	Phone             string          `json:"phone"`
	Gender            string          `json:"gender,omitempty"`
	Address           string          `json:"address,omitempty"`
	PhotoURL          string          `json:"photo_url,omitempty"`
	ThumbURL          string          `json:"thumb_url,omitempty"`
	Credit            decimal.Decimal `json:"credit"`
	PackageID         string          `json:"membership_package_id,omitempty"`
	BadgeID           string          `json:"badge_id,omitempty"`
	StartDate         string          `json:"start_date"`
	EndDate           string          `json:"end_date"`
	PaymentExpiryDate string          `json:"payment_expiry_date"`
	IsApproved        bool            `json:"is_approved"`
	CreatedAt         string          `json:"created_at"`
}

// ToResponse converts entity to response
func ToResponse(m *Member) *MemberResponse {
	resp := &MemberResponse{
		ID:                m.ID,
		Name:              m.Name,
		Phone:             m.Phone,
		Credit:            m.Credit,
		StartDate:         m.StartDate.Format("2006-01-02"),
		EndDate:           m.EndDate.Format("2006-01-02"),
		PaymentExpiryDate: m.PaymentExpiryDate.Format("2006-01-02"),
		IsApproved:        m.IsApproved,
		CreatedAt:         m.CreatedAt.Format(time.RFC3339),
	}

	if m.Gender.Valid {
		resp.Gender = m.Gender.String
	}
	if m.Address.Valid {
		resp.Address = m.Address.String
	}
	if m.PhotoURL.Valid {
		resp.PhotoURL = m.PhotoURL.String
	}
	if m.ThumbURL.Valid {
		resp.ThumbURL = m.ThumbURL.String
	}
	if m.MembershipPackageID.Valid {
		resp.PackageID = m.MembershipPackageID.UUID.String()
	}
	if m.BadgeID.Valid {
		resp.BadgeID = m.BadgeID.String
	}

	return resp
}
