package member

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/pkg/device"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/pkg/imaging"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/pkg/storage"
)

// Service handles member profile management. The financial side of a member
// (registration, renewal, balance) lives in the billing domain.
type Service struct {
	repo         *Repository
	deviceClient *device.Client
	photos       *storage.S3Storage
	processor    *imaging.Processor
}

func NewService(repo *Repository, deviceClient *device.Client, photos *storage.S3Storage, processor *imaging.Processor) *Service {
	return &Service{
		repo:         repo,
		deviceClient: deviceClient,
		photos:       photos,
		processor:    processor,
	}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMemberNotFound
	}
	return m, nil
}

func (s *Service) List(ctx context.Context, search string, limit, offset int) ([]*Member, int, error) {
	members, err := s.repo.List(ctx, search, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, search)
	if err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateMemberRequest) (*Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMemberNotFound
	}

	m.Name = req.Name
	m.Phone = req.Phone
	m.Gender = sql.NullString{String: req.Gender, Valid: req.Gender != ""}
	m.Address = sql.NullString{String: req.Address, Valid: req.Address != ""}
	m.BadgeID = sql.NullString{String: req.BadgeID, Valid: req.BadgeID != ""}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes a member. The device binding teardown is best effort: a
// dead controller must not block removing the member, but the failure is
// logged and reported alongside the result.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (deviceErr error, err error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMemberNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	if m.BadgeID.Valid && s.deviceClient != nil {
		if derr := s.deviceClient.DeleteUser(ctx, m.BadgeID.String); derr != nil {
			log.Error().Err(derr).
				Str("member_id", id.String()).
				Str("badge_id", m.BadgeID.String).
				Msg("Failed to remove member from access device")
			deviceErr = derr
		}
	}

	log.Info().Str("member_id", id.String()).Msg("Member deleted")
	return deviceErr, nil
}

// UploadPhoto processes and stores a member photo plus thumbnail.
func (s *Service) UploadPhoto(ctx context.Context, id uuid.UUID, reader io.Reader) (*Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMemberNotFound
	}
	if s.photos == nil || s.processor == nil {
		return nil, fmt.Errorf("photo storage is not configured")
	}

	processed, err := s.processor.Process(reader)
	if err != nil {
		return nil, ErrInvalidPhoto
	}

	ext := "jpg"
	if processed.ContentType == "image/png" {
		ext = "png"
	}
	photoKey := fmt.Sprintf("members/%s/photo.%s", id, ext)
	thumbKey := fmt.Sprintf("members/%s/thumb.%s", id, ext)

	if err := s.photos.Put(ctx, photoKey, bytes.NewReader(processed.Photo), processed.ContentType); err != nil {
		return nil, err
	}
	if err := s.photos.Put(ctx, thumbKey, bytes.NewReader(processed.Thumbnail), processed.ContentType); err != nil {
		return nil, err
	}

	photoURL := s.photos.URL(photoKey)
	thumbURL := s.photos.URL(thumbKey)
	if err := s.repo.UpdatePhoto(ctx, id, photoURL, thumbURL); err != nil {
		return nil, err
	}

	m.PhotoURL = sql.NullString{String: photoURL, Valid: true}
	m.ThumbURL = sql.NullString{String: thumbURL, Valid: true}
	return m, nil
}
