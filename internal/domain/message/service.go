package message

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/pkg/sms"
)

type Service struct {
	repo      *Repository
	smsClient *sms.Client
}

func NewService(repo *Repository, smsClient *sms.Client) *Service {
	return &Service{repo: repo, smsClient: smsClient}
}

// Send delivers one SMS and records the attempt. A provider failure is
// logged in the table and returned to the caller.
func (s *Service) Send(ctx context.Context, recipient, body string) (*Log, error) {
	status := StatusSent
	var sendErr error
	if s.smsClient == nil {
		status = StatusFailed
		sendErr = sms.ErrNotConfigured
	} else if _, err := s.smsClient.Send(ctx, recipient, body); err != nil {
		status = StatusFailed
		sendErr = err
	}

	l := &Log{
		ID:        uuid.New(),
		Recipient: recipient,
		Body:      body,
		Status:    status,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		log.Error().Err(err).Str("recipient", recipient).Msg("Failed to record message log")
	}

	return l, sendErr
}

// SendExpiryReminders messages every member whose paid period ends within
// the given window. Individual failures do not stop the batch.
func (s *Service) SendExpiryReminders(ctx context.Context, days int, body string) (sent, failed int, err error) {
	phones, err := s.repo.ExpiringPhones(ctx, days)
	if err != nil {
		return 0, 0, err
	}

	for _, phone := range phones {
		if _, err := s.Send(ctx, phone, body); err != nil {
			failed++
			continue
		}
		sent++
	}

	log.Info().Int("sent", sent).Int("failed", failed).Msg("Expiry reminder batch finished")
	return sent, failed, nil
}

func (s *Service) ListLogs(ctx context.Context, limit, offset int) ([]*Log, error) {
	return s.repo.List(ctx, limit, offset)
}
