package notification

import (
	"context"
	"log/slog"

	"github.com/SscSPs/claims_app/internal/core/domain"
	portssvc "github.com/SscSPs/claims_app/internal/core/ports/services"
	"github.com/SscSPs/claims_app/internal/middleware"
)

// LogNotifier only logs notifications. Used when no redis is configured.
type LogNotifier struct{}

var _ portssvc.Notifier = LogNotifier{}

func (LogNotifier) Notify(ctx context.Context, claimID string, kind domain.NotificationKind) error {
	middleware.GetLoggerFromCtx(ctx).Info("Claim notification",
		slog.String("claim_id", claimID), slog.String("kind", string(kind)))
	return nil
}
