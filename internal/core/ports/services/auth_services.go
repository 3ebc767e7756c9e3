package services

import (
	"context"
	"time"

	"github.com/SscSPs/claims_app/internal/core/domain"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	// GenerateAccessToken signs a JWT carrying the staff member's id, role and email.
	GenerateAccessToken(ctx context.Context, staff *domain.Staff) (string, time.Time, error)
}

// AuthSvcFacade exchanges credentials for an access token.
type AuthSvcFacade interface {
	Login(ctx context.Context, email, password string) (string, time.Time, error)
}
