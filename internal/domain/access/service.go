package access

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Service struct {
	repo *Repository
	hub  *Hub
}

func NewService(repo *Repository, hub *Hub) *Service {
	return &Service{repo: repo, hub: hub}
}

// RecordCheckIn classifies and stores a turnstile event, then pushes it to
// the live feed. The controller already made the physical decision; this is
// the bookkeeping side, so unknown badges are stored too.
func (s *Service) RecordCheckIn(ctx context.Context, badgeID string, occurredAt time.Time) (*EntryLog, error) {
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	entry := &EntryLog{
		ID:         uuid.New(),
		BadgeID:    badgeID,
		Result:     ResultUnknown,
		OccurredAt: occurredAt,
	}

	m, err := s.repo.memberByBadge(ctx, badgeID)
	if err != nil {
		return nil, err
	}
	if m != nil {
		entry.MemberID = uuid.NullUUID{UUID: m.ID, Valid: true}
		entry.MemberName = m.Name
		if m.IsApproved && !occurredAt.After(m.PaymentExpiryDate.AddDate(0, 0, 1)) {
			entry.Result = ResultGranted
		} else {
			entry.Result = ResultDenied
		}
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	log.Info().
		Str("badge_id", badgeID).
		Str("result", entry.Result).
		Msg("Check-in recorded")

	if s.hub != nil {
		s.hub.Broadcast(entry)
	}
	return entry, nil
}

func (s *Service) ListEntries(ctx context.Context, limit, offset int) ([]*EntryLog, error) {
	return s.repo.List(ctx, limit, offset)
}
