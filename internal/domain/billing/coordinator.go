package billing

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/domain/locker"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/domain/member"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/domain/membership"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/pkg/device"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/pkg/sms"
)

const dateLayout = "2006-01-02"

// TxFunc runs inside a coordinator transaction just before commit. A
// non-nil error aborts the whole operation.
type TxFunc func(ctx context.Context, tx *sqlx.Tx) error

func runTxFuncs(ctx context.Context, tx *sqlx.Tx, fns []TxFunc) error {
	for _, fn := range fns {
		if err := fn(ctx, tx); err != nil {
			return err
		}
	}
	return nil
}

// Coordinator runs every financial operation as one database transaction:
// the ledger row(s), the balance delta, and any dependent rows commit
// together or not at all. The member row lock taken at the start of each
// operation serializes concurrent mutations of the same balance.
type Coordinator struct {
	repo     *Repository
	members  *member.Repository
	packages *membership.Repository
	lockers  *locker.Repository

	deviceClient *device.Client
	smsClient    *sms.Client
	gymName      string
}

func NewCoordinator(
	repo *Repository,
	members *member.Repository,
	packages *membership.Repository,
	lockers *locker.Repository,
	deviceClient *device.Client,
	smsClient *sms.Client,
	gymName string,
) *Coordinator {
	return &Coordinator{
		repo:         repo,
		members:      members,
		packages:     packages,
		lockers:      lockers,
		deviceClient: deviceClient,
		smsClient:    smsClient,
		gymName:      gymName,
	}
}

// Register creates a member with their initial payment. Pricing is derived
// from the catalog; the submitted paid amount only moves the balance.
// Any before funcs share the transaction and run last.
func (c *Coordinator) Register(ctx context.Context, req *RegistrationRequest, before ...TxFunc) (*RegistrationResult, error) {
	if req.PaidAmount.IsNegative() || req.ExtraDiscount.IsNegative() {
		return nil, ErrInvalidAmount
	}

	pkgID, err := uuid.Parse(req.PackageID)
	if err != nil {
		return nil, membership.ErrPackageNotFound
	}
	startDate, err := parseDateOrToday(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start_date: %w", err)
	}

	tx, err := c.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	pkg, err := c.packages.GetByIDTx(ctx, tx, pkgID)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, membership.ErrPackageNotFound
	}

	quote, err := membership.ComputeRegistration(pkg, req.Months, req.ExtraDiscount)
	if err != nil {
		return nil, err
	}

	endDate := startDate.AddDate(0, req.Months, 0)

	m := &member.Member{
		ID:                  uuid.New(),
		Name:                req.Name,
		Phone:               req.Phone,
		Gender:              sql.NullString{String: req.Gender, Valid: req.Gender != ""},
		Address:             sql.NullString{String: req.Address, Valid: req.Address != ""},
		Credit:              decimal.Zero,
		MembershipPackageID: uuid.NullUUID{UUID: pkg.ID, Valid: true},
		BadgeID:             sql.NullString{String: req.BadgeID, Valid: req.BadgeID != ""},
		StartDate:           startDate,
		EndDate:             endDate,
		PaymentExpiryDate:   endDate,
		IsApproved:          true,
	}
	if err := c.members.CreateTx(ctx, tx, m); err != nil {
		return nil, err
	}

	payment := &Payment{
		ID:            uuid.New(),
		MemberID:      m.ID,
		PackageID:     pkg.ID,
		Months:        req.Months,
		NetAmount:     quote.Net,
		PaidAmount:    req.PaidAmount,
		TierDiscount:  quote.TierDiscount,
		ExtraDiscount: req.ExtraDiscount,
		BillNumber:    req.BillNumber,
		PaymentMode:   PaymentMode(req.PaymentMode),
		PaymentDate:   startDate,
	}
	if err := c.repo.InsertPaymentTx(ctx, tx, payment); err != nil {
		return nil, err
	}

	newBalance, err := c.members.ApplyCreditDeltaTx(ctx, tx, m.ID, TransactionDelta(quote.Net, req.PaidAmount))
	if err != nil {
		return nil, err
	}

	if err := runTxFuncs(ctx, tx, before); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info().
		Str("member_id", m.ID.String()).
		Str("net_amount", quote.Net.String()).
		Str("paid_amount", req.PaidAmount.String()).
		Str("new_balance", newBalance.String()).
		Msg("Registration committed")

	result := &RegistrationResult{
		MemberID:   m.ID,
		Quote:      quote,
		NewBalance: newBalance,
		IsApproved: true,
	}
	result.Warnings = c.afterRegistration(ctx, m, endDate)
	return result, nil
}

// afterRegistration runs the best-effort collaborator calls. Failures are
// logged and surfaced as warnings next to the committed financial result.
func (c *Coordinator) afterRegistration(ctx context.Context, m *member.Member, endDate time.Time) []string {
	var warnings []string

	if m.BadgeID.Valid && c.deviceClient != nil {
		err := c.deviceClient.PutMember(ctx, device.PutMemberPayload{
			MemberID: m.ID.String(),
			Name:     m.Name,
			BadgeID:  m.BadgeID.String,
			ValidTo:  endDate.Format(dateLayout),
		})
		if err != nil {
			log.Error().Err(err).Str("member_id", m.ID.String()).Msg("Failed to register member on access device")
			warnings = append(warnings, "failed to register member on access device")
		}
	}

	if c.smsClient != nil {
		msg := fmt.Sprintf("Welcome to %s! Your membership is active until %s.", c.gymName, endDate.Format(dateLayout))
		if _, err := c.smsClient.Send(ctx, m.Phone, msg); err != nil {
			log.Error().Err(err).Str("member_id", m.ID.String()).Msg("Failed to send welcome SMS")
			warnings = append(warnings, "failed to send welcome SMS")
		}
	}

	return warnings
}

// Renew extends a membership from the previous payment expiry, not from
// today, so late renewals do not shorten the paid period.
func (c *Coordinator) Renew(ctx context.Context, memberID uuid.UUID, req *RenewalRequest, before ...TxFunc) (*RenewalResult, error) {
	if req.PaidAmount.IsNegative() || req.ExtraDiscount.IsNegative() {
		return nil, ErrInvalidAmount
	}

	tx, err := c.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	m, err := c.members.LockTx(ctx, tx, memberID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, member.ErrMemberNotFound
	}
	if !m.MembershipPackageID.Valid {
		return nil, membership.ErrPackageNotFound
	}

	pkg, err := c.packages.GetByIDTx(ctx, tx, m.MembershipPackageID.UUID)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, membership.ErrPackageNotFound
	}

	quote, err := membership.ComputeRenewal(pkg, req.Months, req.ExtraDiscount)
	if err != nil {
		return nil, err
	}

	newExpiry := m.PaymentExpiryDate.AddDate(0, req.Months, 0)

	renewal := &Renewal{
		ID:            uuid.New(),
		MemberID:      m.ID,
		PackageID:     pkg.ID,
		Months:        req.Months,
		NetAmount:     quote.Net,
		PaidAmount:    req.PaidAmount,
		TierDiscount:  quote.TierDiscount,
		ExtraDiscount: req.ExtraDiscount,
		BillNumber:    req.BillNumber,
		PaymentMode:   PaymentMode(req.PaymentMode),
		PaymentDate:   time.Now(),
	}
	if err := c.repo.InsertRenewalTx(ctx, tx, renewal); err != nil {
		return nil, err
	}

	if err := c.members.ExtendMembershipTx(ctx, tx, m.ID, newExpiry, newExpiry); err != nil {
		return nil, err
	}

	newBalance, err := c.members.ApplyCreditDeltaTx(ctx, tx, m.ID, TransactionDelta(quote.Net, req.PaidAmount))
	if err != nil {
		return nil, err
	}

	if err := runTxFuncs(ctx, tx, before); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info().
		Str("member_id", m.ID.String()).
		Int("months", req.Months).
		Str("net_amount", quote.Net.String()).
		Str("new_balance", newBalance.String()).
		Msg("Renewal committed")

	result := &RenewalResult{
		MemberID:      m.ID,
		Quote:         quote,
		NewBalance:    newBalance,
		PaymentExpiry: newExpiry.Format(dateLayout),
	}

	if c.smsClient != nil {
		msg := fmt.Sprintf("Your %s membership has been renewed until %s.", c.gymName, newExpiry.Format(dateLayout))
		if _, err := c.smsClient.Send(ctx, m.Phone, msg); err != nil {
			log.Error().Err(err).Str("member_id", m.ID.String()).Msg("Failed to send renewal SMS")
			result.Warnings = append(result.Warnings, "failed to send renewal SMS")
		}
	}

	return result, nil
}

// AssignLocker rents a locker. The number must be free among active
// assignments; the check and the insert share the transaction, and a partial
// unique index turns any race into ErrLockerNumberTaken instead of a
// double booking.
func (c *Coordinator) AssignLocker(ctx context.Context, memberID uuid.UUID, req *LockerAssignRequest) (*LockerResult, error) {
	if req.PaidAmount.IsNegative() || req.Discount.IsNegative() {
		return nil, ErrInvalidAmount
	}

	lockerID, err := uuid.Parse(req.LockerID)
	if err != nil {
		return nil, locker.ErrLockerNotFound
	}
	startDate, err := parseDateOrToday(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start_date: %w", err)
	}

	tx, err := c.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	m, err := c.members.LockTx(ctx, tx, memberID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, member.ErrMemberNotFound
	}

	cat, err := c.lockers.GetByIDTx(ctx, tx, lockerID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, locker.ErrLockerNotFound
	}

	taken, err := c.lockers.NumberTakenTx(ctx, tx, req.LockerNumber)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, locker.ErrLockerNumberTaken
	}

	net := clampNet(cat.Price, req.Discount)
	endDate := startDate.AddDate(0, cat.Months, 0)

	assignment := &locker.Assignment{
		ID:           uuid.New(),
		MemberID:     m.ID,
		LockerID:     cat.ID,
		LockerNumber: req.LockerNumber,
		StartDate:    startDate,
		EndDate:      endDate,
		Status:       locker.StatusActive,
	}
	if err := c.lockers.CreateAssignmentTx(ctx, tx, assignment); err != nil {
		return nil, err
	}

	lp := &LockerPayment{
		ID:           uuid.New(),
		MemberID:     m.ID,
		AssignmentID: assignment.ID,
		NetAmount:    net,
		PaidAmount:   req.PaidAmount,
		Discount:     req.Discount,
		BillNumber:   req.BillNumber,
		PaymentMode:  PaymentMode(req.PaymentMode),
		PaymentDate:  startDate,
	}
	if err := c.repo.InsertLockerPaymentTx(ctx, tx, lp); err != nil {
		return nil, err
	}

	newBalance, err := c.members.ApplyCreditDeltaTx(ctx, tx, m.ID, TransactionDelta(net, req.PaidAmount))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info().
		Str("member_id", m.ID.String()).
		Str("locker_number", req.LockerNumber).
		Str("net_amount", net.String()).
		Msg("Locker assignment committed")

	return &LockerResult{
		AssignmentID: assignment.ID,
		LockerNumber: assignment.LockerNumber,
		EndDate:      endDate.Format(dateLayout),
		NetAmount:    net,
		NewBalance:   newBalance,
	}, nil
}

// ExtendLocker keeps the same number and adds the locker's duration to the
// previous end date, so a late extension still starts where the old period
// stopped.
func (c *Coordinator) ExtendLocker(ctx context.Context, assignmentID uuid.UUID, req *LockerExtendRequest) (*LockerResult, error) {
	if req.PaidAmount.IsNegative() || req.Discount.IsNegative() {
		return nil, ErrInvalidAmount
	}

	tx, err := c.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	assignment, err := c.lockers.LockAssignmentTx(ctx, tx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, locker.ErrAssignmentNotFound
	}

	m, err := c.members.LockTx(ctx, tx, assignment.MemberID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, member.ErrMemberNotFound
	}

	cat, err := c.lockers.GetByIDTx(ctx, tx, assignment.LockerID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, locker.ErrLockerNotFound
	}

	net := clampNet(cat.Price, req.Discount)
	newEnd := assignment.EndDate.AddDate(0, cat.Months, 0)

	lp := &LockerPayment{
		ID:           uuid.New(),
		MemberID:     m.ID,
		AssignmentID: assignment.ID,
		NetAmount:    net,
		PaidAmount:   req.PaidAmount,
		Discount:     req.Discount,
		BillNumber:   req.BillNumber,
		PaymentMode:  PaymentMode(req.PaymentMode),
		PaymentDate:  time.Now(),
	}
	if err := c.repo.InsertLockerPaymentTx(ctx, tx, lp); err != nil {
		return nil, err
	}

	if err := c.lockers.ExtendAssignmentTx(ctx, tx, assignment.ID, newEnd); err != nil {
		return nil, err
	}

	newBalance, err := c.members.ApplyCreditDeltaTx(ctx, tx, m.ID, TransactionDelta(net, req.PaidAmount))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info().
		Str("member_id", m.ID.String()).
		Str("locker_number", assignment.LockerNumber).
		Str("end_date", newEnd.Format(dateLayout)).
		Msg("Locker extension committed")

	return &LockerResult{
		AssignmentID: assignment.ID,
		LockerNumber: assignment.LockerNumber,
		EndDate:      newEnd.Format(dateLayout),
		NetAmount:    net,
		NewBalance:   newBalance,
	}, nil
}

// RecordTransaction records a miscellaneous charge.
func (c *Coordinator) RecordTransaction(ctx context.Context, memberID uuid.UUID, req *MiscTransactionRequest) (*BalanceResult, error) {
	if req.NetAmount.IsNegative() || req.PaidAmount.IsNegative() {
		return nil, ErrInvalidAmount
	}

	tx, err := c.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	m, err := c.members.LockTx(ctx, tx, memberID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, member.ErrMemberNotFound
	}

	t := &Transaction{
		ID:          uuid.New(),
		MemberID:    m.ID,
		Remarks:     req.Remarks,
		NetAmount:   req.NetAmount,
		PaidAmount:  req.PaidAmount,
		BillNumber:  req.BillNumber,
		PaymentMode: PaymentMode(req.PaymentMode),
		PaymentDate: time.Now(),
	}
	if err := c.repo.InsertTransactionTx(ctx, tx, t); err != nil {
		return nil, err
	}

	newBalance, err := c.members.ApplyCreditDeltaTx(ctx, tx, m.ID, TransactionDelta(req.NetAmount, req.PaidAmount))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info().
		Str("member_id", m.ID.String()).
		Str("net_amount", req.NetAmount.String()).
		Str("new_balance", newBalance.String()).
		Msg("Transaction committed")

	return &BalanceResult{MemberID: m.ID, NewBalance: newBalance}, nil
}

// RefundMember pays money back and moves the balance per the refund rules.
// A refund row is recorded on every branch.
func (c *Coordinator) RefundMember(ctx context.Context, memberID uuid.UUID, req *RefundRequest) (*BalanceResult, error) {
	if !req.RefundAmount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	tx, err := c.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	m, err := c.members.LockTx(ctx, tx, memberID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, member.ErrMemberNotFound
	}

	target := ResolveRefund(m.Credit, req.RefundAmount)
	delta := target.Sub(m.Credit)

	refund := &Refund{
		ID:             uuid.New(),
		MemberID:       m.ID,
		RefundAmount:   req.RefundAmount,
		PaymentMode:    PaymentMode(req.PaymentMode),
		PaymentVoucher: sql.NullString{String: req.PaymentVoucher, Valid: req.PaymentVoucher != ""},
		PaymentDate:    time.Now(),
	}
	if err := c.repo.InsertRefundTx(ctx, tx, refund); err != nil {
		return nil, err
	}

	newBalance, err := c.members.ApplyCreditDeltaTx(ctx, tx, m.ID, delta)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info().
		Str("member_id", m.ID.String()).
		Str("refund_amount", req.RefundAmount.String()).
		Str("new_balance", newBalance.String()).
		Msg("Refund committed")

	return &BalanceResult{MemberID: m.ID, NewBalance: newBalance}, nil
}

// GrantExtraCredit adds credit with no payment attached.
func (c *Coordinator) GrantExtraCredit(ctx context.Context, memberID uuid.UUID, req *ExtraCreditRequest) (*BalanceResult, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	tx, err := c.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	m, err := c.members.LockTx(ctx, tx, memberID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, member.ErrMemberNotFound
	}

	ec := &ExtraCredit{
		ID:         uuid.New(),
		MemberID:   m.ID,
		Amount:     req.Amount,
		Remarks:    req.Remarks,
		BillNumber: req.BillNumber,
	}
	if err := c.repo.InsertExtraCreditTx(ctx, tx, ec); err != nil {
		return nil, err
	}

	newBalance, err := c.members.ApplyCreditDeltaTx(ctx, tx, m.ID, req.Amount)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info().
		Str("member_id", m.ID.String()).
		Str("amount", req.Amount.String()).
		Msg("Extra credit granted")

	return &BalanceResult{MemberID: m.ID, NewBalance: newBalance}, nil
}

// RevokeExtraCredit deletes a grant and reverses its effect. The credit may
// already be spent, so the revocation fails rather than pushing the member
// into an advance they never agreed to.
func (c *Coordinator) RevokeExtraCredit(ctx context.Context, entryID uuid.UUID) (*BalanceResult, error) {
	tx, err := c.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	ec, err := c.repo.GetExtraCreditTx(ctx, tx, entryID)
	if err != nil {
		return nil, err
	}
	if ec == nil {
		return nil, ErrEntryNotFound
	}

	m, err := c.members.LockTx(ctx, tx, ec.MemberID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, member.ErrMemberNotFound
	}

	if m.Credit.LessThan(ec.Amount) {
		return nil, ErrInsufficientCredit
	}

	if err := c.repo.DeleteExtraCreditTx(ctx, tx, entryID); err != nil {
		return nil, err
	}

	newBalance, err := c.members.ApplyCreditDeltaTx(ctx, tx, m.ID, ec.Amount.Neg())
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info().
		Str("member_id", m.ID.String()).
		Str("amount", ec.Amount.String()).
		Msg("Extra credit revoked")

	return &BalanceResult{MemberID: m.ID, NewBalance: newBalance}, nil
}

// ChangePackage reassigns a member's package. The device re-binding is part
// of the operation's contract: if the controller call fails, the whole
// change rolls back.
func (c *Coordinator) ChangePackage(ctx context.Context, memberID uuid.UUID, req *PackageChangeRequest) error {
	pkgID, err := uuid.Parse(req.PackageID)
	if err != nil {
		return membership.ErrPackageNotFound
	}

	tx, err := c.repo.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	m, err := c.members.LockTx(ctx, tx, memberID)
	if err != nil {
		return err
	}
	if m == nil {
		return member.ErrMemberNotFound
	}

	pkg, err := c.packages.GetByIDTx(ctx, tx, pkgID)
	if err != nil {
		return err
	}
	if pkg == nil {
		return membership.ErrPackageNotFound
	}

	if err := c.members.SetPackageTx(ctx, tx, m.ID, pkg.ID); err != nil {
		return err
	}

	// Device re-binding happens before commit so a controller failure
	// aborts the package change in full.
	if m.BadgeID.Valid && c.deviceClient != nil {
		if err := c.deviceClient.DeleteUser(ctx, m.BadgeID.String); err != nil {
			return fmt.Errorf("%w: %v", ErrDeviceSyncFailed, err)
		}
		err := c.deviceClient.PutMember(ctx, device.PutMemberPayload{
			MemberID: m.ID.String(),
			Name:     m.Name,
			BadgeID:  m.BadgeID.String,
			ValidTo:  m.PaymentExpiryDate.Format(dateLayout),
		})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrDeviceSyncFailed, err)
		}
	}

	if err := tx.Commit(); err != nil {
		// The re-issued binding carries only the badge and validity
		// window, neither of which this operation changes, so the
		// controller still matches the rolled-back row.
		return err
	}

	log.Info().
		Str("member_id", m.ID.String()).
		Str("package_id", pkg.ID.String()).
		Msg("Package change committed")

	return nil
}

// Statement returns a member's full ledger history.
func (c *Coordinator) Statement(ctx context.Context, memberID uuid.UUID) ([]StatementEntry, error) {
	m, err := c.members.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, member.ErrMemberNotFound
	}
	return c.repo.Statement(ctx, memberID)
}

func clampNet(price, discount decimal.Decimal) decimal.Decimal {
	if discount.GreaterThan(price) {
		return decimal.Zero
	}
	return price.Sub(discount)
}

func parseDateOrToday(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(dateLayout, s)
}
