package service_interfaces

import (
	"context"

	"github.com/api-sage/somaluganda-remit/src/internal/domain"
)

type StatusGenerator interface {
	GenerateStatus(ctx context.Context, draft domain.TransactionDraft) (domain.TransactionResult, error)
}

type AssistantModel interface {
	ChatReplies(ctx context.Context, message string, history []domain.ChatMessage) ([]domain.ChatMessage, error)
	Ask(ctx context.Context, question string) (string, error)
}

type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, text string) error
}

type MessageSender interface {
	SendWhatsApp(ctx context.Context, phone, text string) error
	SendSMS(ctx context.Context, phone, text string) error
}
