package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/labfetch/labfetch-api/internal/model"
	"github.com/labfetch/labfetch-api/internal/repository"
	"github.com/labfetch/labfetch-api/pkg/auth"
	apperrors "github.com/labfetch/labfetch-api/pkg/errors"
	"github.com/labfetch/labfetch-api/pkg/security"
)

const (
	msgCredentialsRequired = "Se requieren usuario y contraseña."
	msgInvalidCredentials  = "Credenciales inválidas."
	msgTokenExpired        = "Acceso no autorizado: Token expirado."
	msgTokenInvalid        = "Acceso prohibido: Token inválido."
)

// Service authenticates admins and verifies their tokens.
type Service struct {
	admins repository.AdminRepository
	hasher security.PasswordHasher
	tokens *auth.TokenManager
	logger zerolog.Logger
}

func NewService(admins repository.AdminRepository, hasher security.PasswordHasher, tokens *auth.TokenManager, logger zerolog.Logger) *Service {
	return &Service{
		admins: admins,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, apperrors.BadRequest(msgCredentialsRequired, nil)
	}

	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn().Str("username", username).Msg("login for unknown admin")
			return nil, apperrors.Unauthorized(msgInvalidCredentials, nil)
		}
		return nil, apperrors.Persistence(err)
	}

	if err := s.hasher.Compare(admin.PasswordHash, req.Password); err != nil {
		if !errors.Is(err, security.ErrPasswordMismatch) {
			s.logger.Error().Err(err).Int64("admin_id", admin.ID).Msg("stored password hash unusable")
		}
		return nil, apperrors.Unauthorized(msgInvalidCredentials, nil)
	}

	token, _, err := s.tokens.Generate(admin)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.logger.Info().Int64("admin_id", admin.ID).Msg("admin logged in")
	return &model.LoginResponse{
		Token: token,
		Admin: &model.Principal{AdminID: admin.ID, Username: admin.Username},
	}, nil
}

// ValidateToken maps a bearer token to the admin it was issued to.
func (s *Service) ValidateToken(token string) (*model.Principal, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, apperrors.TokenExpired(msgTokenExpired, err)
		}
		return nil, apperrors.Forbidden(msgTokenInvalid, err)
	}
	return &model.Principal{AdminID: claims.AdminID, Username: claims.Username}, nil
}
