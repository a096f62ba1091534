package application

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/domain/billing"
)

// Workflow turns reviewed applications into committed billing operations.
// The application row is removed in the same transaction that commits the
// money, so a failed approval leaves it untouched for another attempt and
// a successful one can never be approved twice.
type Workflow struct {
	repo        *Repository
	coordinator *billing.Coordinator
}

func NewWorkflow(repo *Repository, coordinator *billing.Coordinator) *Workflow {
	return &Workflow{repo: repo, coordinator: coordinator}
}

func (s *Workflow) SubmitRegistration(ctx context.Context, req *SubmitRegistrationRequest) (*RegistrationApplication, error) {
	pkgID, err := uuid.Parse(req.PackageID)
	if err != nil {
		return nil, ErrApplicationNotFound
	}

	app := &RegistrationApplication{
		ID:          uuid.New(),
		Name:        req.Name,
		Phone:       req.Phone,
		Gender:      nullString(req.Gender),
		Address:     nullString(req.Address),
		PackageID:   pkgID,
		Months:      req.Months,
		PaidAmount:  req.PaidAmount,
		PaymentMode: req.PaymentMode,
	}
	if err := s.repo.CreateRegistration(ctx, app); err != nil {
		return nil, err
	}

	log.Info().
		Str("application_id", app.ID.String()).
		Str("phone", app.Phone).
		Msg("Registration application submitted")
	return app, nil
}

func (s *Workflow) SubmitRenewal(ctx context.Context, req *SubmitRenewalRequest) (*RenewalApplication, error) {
	memberID, err := uuid.Parse(req.MemberID)
	if err != nil {
		return nil, ErrApplicationNotFound
	}

	app := &RenewalApplication{
		ID:          uuid.New(),
		MemberID:    memberID,
		Months:      req.Months,
		PaidAmount:  req.PaidAmount,
		PaymentMode: req.PaymentMode,
	}
	if err := s.repo.CreateRenewal(ctx, app); err != nil {
		return nil, err
	}

	log.Info().
		Str("application_id", app.ID.String()).
		Str("member_id", req.MemberID).
		Msg("Renewal application submitted")
	return app, nil
}

func (s *Workflow) ListRegistrations(ctx context.Context) ([]*RegistrationApplication, error) {
	return s.repo.ListRegistrations(ctx)
}

func (s *Workflow) ListRenewals(ctx context.Context) ([]*RenewalApplication, error) {
	return s.repo.ListRenewals(ctx)
}

// ApproveRegistration prices the application against the current catalog and
// registers the member. The claimed paid amount moves the opening balance;
// it never influences the bill.
func (s *Workflow) ApproveRegistration(ctx context.Context, id uuid.UUID, req *ApproveRequest) (*billing.RegistrationResult, error) {
	app, err := s.repo.GetRegistration(ctx, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrApplicationNotFound
	}

	result, err := s.coordinator.Register(ctx, &billing.RegistrationRequest{
		Name:          app.Name,
		Phone:         app.Phone,
		Gender:        app.Gender.String,
		Address:       app.Address.String,
		BadgeID:       req.BadgeID,
		PackageID:     app.PackageID.String(),
		Months:        app.Months,
		ExtraDiscount: req.ExtraDiscount,
		PaidAmount:    app.PaidAmount,
		BillNumber:    req.BillNumber,
		PaymentMode:   app.PaymentMode,
	}, func(ctx context.Context, tx *sqlx.Tx) error {
		return s.repo.DeleteRegistrationTx(ctx, tx, id)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("application_id", id.String()).
		Str("member_id", result.MemberID.String()).
		Msg("Registration application approved")
	return result, nil
}

// ApproveRenewal prices and applies the renewal on the member's current
// package, then removes the application.
func (s *Workflow) ApproveRenewal(ctx context.Context, id uuid.UUID, req *ApproveRequest) (*billing.RenewalResult, error) {
	app, err := s.repo.GetRenewal(ctx, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrApplicationNotFound
	}

	result, err := s.coordinator.Renew(ctx, app.MemberID, &billing.RenewalRequest{
		Months:        app.Months,
		ExtraDiscount: req.ExtraDiscount,
		PaidAmount:    app.PaidAmount,
		BillNumber:    req.BillNumber,
		PaymentMode:   app.PaymentMode,
	}, func(ctx context.Context, tx *sqlx.Tx) error {
		return s.repo.DeleteRenewalTx(ctx, tx, id)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("application_id", id.String()).
		Str("member_id", app.MemberID.String()).
		Msg("Renewal application approved")
	return result, nil
}

// RejectRegistration discards the application without any financial effect.
func (s *Workflow) RejectRegistration(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteRegistration(ctx, id)
}

func (s *Workflow) RejectRenewal(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteRenewal(ctx, id)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
