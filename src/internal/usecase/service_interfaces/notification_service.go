package service_interfaces

import (
	"context"

	"github.com/api-sage/somaluganda-remit/src/internal/domain"
)

type NotificationService interface {
	NotifyAdminOfNewRequest(ctx context.Context, record domain.TransactionRecord) error
	SendReceiptToSender(ctx context.Context, record domain.TransactionRecord) error
	NotifySenderOfCompletion(ctx context.Context, record domain.TransactionRecord) error
	NotifyRecipientOfFunds(ctx context.Context, record domain.TransactionRecord) error
	SendAdminDigest(ctx context.Context, subject, body string) error
}

// TaskRunner runs best-effort work detached from the caller.
type TaskRunner interface {
	Go(name string, fields map[string]any, task func(ctx context.Context) error)
}
