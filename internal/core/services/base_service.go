package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/claims_app/internal/apperrors"
	"github.com/SscSPs/claims_app/internal/core/domain"
	"github.com/SscSPs/claims_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogFailure logs a failed operation. Errors the caller caused (missing entities,
// authorization, rule and validation failures) are warnings; anything else is an error.
func (s *BaseService) LogFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	if isClientError(err) {
		args := make([]any, 0, len(keyvals)+1)
		args = append(args, slog.String("reason", err.Error()))
		args = append(args, keyvals...)
		s.GetLogger(ctx).Warn(msg, args...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}

// RequireAdmin rejects actors without the Admin role.
func (s *BaseService) RequireAdmin(ctx context.Context, actor domain.Actor) error {
	if actor.Role != domain.RoleAdmin {
		err := apperrors.NewUnauthorizedError("admin role required")
		s.LogFailure(ctx, err, "Admin operation denied", slog.String("user_id", actor.StaffID))
		return err
	}
	return nil
}

func isClientError(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrUnauthorized) ||
		errors.Is(err, apperrors.ErrBusinessRule) ||
		errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrDuplicate)
}
