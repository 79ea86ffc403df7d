package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/api-sage/somaluganda-remit/src/internal/adapter/http/models"
	"github.com/api-sage/somaluganda-remit/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/somaluganda-remit/src/internal/commons"
	"github.com/api-sage/somaluganda-remit/src/internal/domain"
	"github.com/api-sage/somaluganda-remit/src/internal/logger"
	"github.com/api-sage/somaluganda-remit/src/internal/usecase/service_interfaces"
)

const (
	offlineMessage = "Offline Mode: Request saved locally. Admin will verify when back online."
	offlineArrival = "When Online"
	localMessage   = "Request received. We are verifying your payment manually."
	localArrival   = "30 Minutes"
)

type SubmissionOptions struct {
	Offline       bool
	StatusTimeout time.Duration
}

// SubmissionService turns a reviewed draft into exactly one ledger record.
type SubmissionService struct {
	sessions      repo_interfaces.SessionRepository
	ledger        service_interfaces.LedgerService
	generator     service_interfaces.StatusGenerator
	notifications service_interfaces.NotificationService
	tasks         service_interfaces.TaskRunner
	offline       bool
	statusTimeout time.Duration
	now           func() time.Time
}

func NewSubmissionService(
	sessions repo_interfaces.SessionRepository,
	ledger service_interfaces.LedgerService,
	generator service_interfaces.StatusGenerator,
	notifications service_interfaces.NotificationService,
	tasks service_interfaces.TaskRunner,
	opts SubmissionOptions,
) *SubmissionService {
	timeout := opts.StatusTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &SubmissionService{
		sessions:      sessions,
		ledger:        ledger,
		generator:     generator,
		notifications: notifications,
		tasks:         tasks,
		offline:       opts.Offline || generator == nil,
		statusTimeout: timeout,
		now:           time.Now,
	}
}

func (s *SubmissionService) Confirm(ctx context.Context, id string, req models.ConfirmRequest) (commons.Response[models.ReceiptResponse], error) {
	logger.Info("submission service confirm request", logger.Fields{
		"sessionId": id,
		"payload":   logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ValidationResponse[models.ReceiptResponse](err), err
	}

	session, err := s.sessions.Update(ctx, id, func(session *domain.TransferSession) error {
		if session.Submitting || session.Step == domain.StepReceipt {
			return commons.ErrSubmitInProgress
		}
		if session.Step != domain.StepReview {
			return stepError(session.Step, "confirm")
		}
		session.Draft.SetReference(req.Reference)
		session.Submitting = true
		return nil
	})
	if err != nil {
		return sessionError[models.ReceiptResponse](err)
	}

	draft := session.Draft
	result, fallbackPrefix := s.generateStatus(ctx, draft)
	result = domain.SanitizeResult(result, draft.AmountSend)

	record, err := s.ledger.Record(ctx, func(attempt int) domain.TransactionRecord {
		r := result
		if attempt > 0 {
			r.TransactionID = newTransactionID(fallbackPrefix)
		}
		return domain.NewTransactionRecord(draft, r, s.now())
	})
	if err != nil {
		logger.Error("submission service ledger write failed", err, logger.Fields{"sessionId": id})
		s.release(id)
		return commons.ErrorResponse[models.ReceiptResponse]("failed to record transaction", "Unable to save your request right now, please try again"), err
	}

	s.dispatchNewRequest(record)

	toReceipt := func(session *domain.TransferSession) error {
		txResult := record.TransactionResult
		session.Result = &txResult
		session.Step = domain.StepReceipt
		session.Submitting = false
		return nil
	}
	advanced, err := s.sessions.Update(context.WithoutCancel(ctx), id, toReceipt)
	if err != nil {
		// The record is already in the ledger, so the receipt is still returned.
		logger.Warn("submission service could not advance session", logger.Fields{
			"sessionId":     id,
			"transactionId": record.TransactionID,
			"error":         err.Error(),
		})
		advanced = session
		_ = toReceipt(&advanced)
	}

	logger.Info("submission service confirm success", logger.Fields{
		"sessionId":     id,
		"transactionId": record.TransactionID,
		"status":        record.Status,
	})

	return commons.SuccessResponse("transfer request submitted", models.ReceiptResponse{
		SessionResponse: models.NewSessionResponse(advanced),
		Transaction:     record,
	}), nil
}

// generateStatus never fails. It also returns the prefix used when a fresh
// transaction ID must be minted locally.
func (s *SubmissionService) generateStatus(ctx context.Context, draft domain.TransactionDraft) (domain.TransactionResult, string) {
	if s.offline {
		logger.Info("submission service offline, processing locally", nil)
		return domain.TransactionResult{
			TransactionID:    newTransactionID(prefixOffline),
			Status:           domain.TransactionStatusWaitingVerification,
			Message:          offlineMessage,
			EstimatedArrival: offlineArrival,
		}, prefixOffline
	}

	callCtx, cancel := context.WithTimeout(ctx, s.statusTimeout)
	defer cancel()

	result, err := s.generator.GenerateStatus(callCtx, draft)
	if err == nil && strings.TrimSpace(result.TransactionID) != "" && result.Status.Valid() {
		return result, prefixLocal
	}
	if err == nil {
		err = errors.New("status result is incomplete")
	}

	logger.Warn("submission service status generation failed, using local fallback", logger.Fields{
		"error": err.Error(),
	})
	return domain.TransactionResult{
		TransactionID:    newTransactionID(prefixLocal),
		Status:           domain.TransactionStatusWaitingVerification,
		Message:          localMessage,
		EstimatedArrival: localArrival,
	}, prefixLocal
}

func (s *SubmissionService) dispatchNewRequest(record domain.TransactionRecord) {
	if s.notifications == nil || s.tasks == nil {
		return
	}
	fields := map[string]any{"transactionId": record.TransactionID}

	s.tasks.Go("admin_new_request_email", fields, func(ctx context.Context) error {
		return s.notifications.NotifyAdminOfNewRequest(ctx, record)
	})
	if strings.TrimSpace(record.SenderEmail) != "" {
		s.tasks.Go("sender_receipt_email", fields, func(ctx context.Context) error {
			return s.notifications.SendReceiptToSender(ctx, record)
		})
	}
}

// release clears the in-flight flag so the sender can retry from REVIEW.
func (s *SubmissionService) release(id string) {
	_, err := s.sessions.Update(context.Background(), id, func(session *domain.TransferSession) error {
		session.Submitting = false
		return nil
	})
	if err != nil {
		logger.Warn("submission service could not release session", logger.Fields{
			"sessionId": id,
			"error":     err.Error(),
		})
	}
}
