package staff

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/pkg/jwt"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/pkg/password"
)

type Service struct {
	repo       *Repository
	jwtService *jwt.Service
}

func NewService(repo *Repository, jwtService *jwt.Service) *Service {
	return &Service{repo: repo, jwtService: jwtService}
}

type LoginResult struct {
	Token string `json:"token"`
	Staff *Staff `json:"staff"`
}

func (s *Service) Login(ctx context.Context, username, plainPassword string) (*LoginResult, error) {
	st, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if st == nil || !password.Verify(plainPassword, st.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateAccessToken(st.ID, st.Role)
	if err != nil {
		return nil, err
	}

	log.Info().Str("staff_id", st.ID.String()).Str("role", st.Role).Msg("Staff logged in")
	return &LoginResult{Token: token, Staff: st}, nil
}

func (s *Service) Create(ctx context.Context, req *CreateStaffRequest) (*Staff, error) {
	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	st := &Staff{
		ID:           uuid.New(),
		Name:         req.Name,
		Username:     req.Username,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Service) List(ctx context.Context) ([]*Staff, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
