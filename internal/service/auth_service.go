package service

import (
	"context"
	"errors"
	"time"

	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/dto"
	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/model"

	"github.com/google/uuid"
)

var ErrLoginNoDisponible = errors.New("login no disponible con este proveedor de identidad")

// CredencialesLocales is the part of the local credential store used to log in.
type CredencialesLocales interface {
	Authenticate(ctx context.Context, email, password string) (*model.Identidad, error)
	IssueToken(id uuid.UUID, email string) (string, error)
	TTL() time.Duration
}

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	creds CredencialesLocales
}

// NewAuthService returns a service whose Login fails with ErrLoginNoDisponible
// when creds is nil (remote identity providers issue their own tokens).
func NewAuthService(creds CredencialesLocales) AuthService {
	return &authService{creds: creds}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.creds == nil {
		return nil, ErrLoginNoDisponible
	}
	ident, err := s.creds.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, errors.New("credenciales invalidas")
	}

	token, err := s.creds.IssueToken(ident.ID, ident.Email)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(s.creds.TTL().Seconds()),
		UserID:      ident.ID.String(),
	}, nil
}
