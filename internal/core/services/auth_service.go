package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/claims_app/internal/apperrors"
	"github.com/SscSPs/claims_app/internal/core/domain"
	portssvc "github.com/SscSPs/claims_app/internal/core/ports/services"
	"github.com/SscSPs/claims_app/internal/platform/config"
	"github.com/SscSPs/claims_app/internal/utils"
)

// tokenService implements the TokenSvcFacade for handling JWT access tokens.
type tokenService struct {
	BaseService
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateAccessToken creates a new JWT access token for the given staff member.
func (s *tokenService) GenerateAccessToken(ctx context.Context, staff *domain.Staff) (string, time.Time, error) {
	token, expiresAt, err := utils.GenerateJWT(staff.StaffID, string(staff.Role), staff.Email, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("staff_id", staff.StaffID))
		return "", time.Time{}, apperrors.NewAppError(500, "failed to generate access token", err)
	}
	return token, expiresAt, nil
}

type authService struct {
	BaseService
	staff  portssvc.StaffAuthSvc
	tokens portssvc.TokenSvcFacade
}

// NewAuthService creates the login service.
func NewAuthService(staff portssvc.StaffAuthSvc, tokens portssvc.TokenSvcFacade) portssvc.AuthSvcFacade {
	return &authService{staff: staff, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	staff, err := s.staff.AuthenticateStaff(ctx, email, password)
	if err != nil {
		return "", time.Time{}, err
	}
	token, expiresAt, err := s.tokens.GenerateAccessToken(ctx, staff)
	if err != nil {
		return "", time.Time{}, err
	}
	s.LogInfo(ctx, "Staff logged in", slog.String("staff_id", staff.StaffID))
	return token, expiresAt, nil
}

var (
	_ portssvc.TokenSvcFacade = (*tokenService)(nil)
	_ portssvc.AuthSvcFacade  = (*authService)(nil)
)
