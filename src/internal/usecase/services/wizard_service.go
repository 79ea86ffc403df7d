package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/somaluganda-remit/src/internal/adapter/http/models"
	"github.com/api-sage/somaluganda-remit/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/somaluganda-remit/src/internal/commons"
	"github.com/api-sage/somaluganda-remit/src/internal/domain"
	"github.com/api-sage/somaluganda-remit/src/internal/logger"
)

type AgentNumbers struct {
	Somalia string
	Uganda  string
}

// WizardService drives a transfer session through AMOUNT, RECIPIENT and
// REVIEW. Confirmation lives in SubmissionService.
type WizardService struct {
	sessions repo_interfaces.SessionRepository
	agents   AgentNumbers
	now      func() time.Time
}

func NewWizardService(sessions repo_interfaces.SessionRepository, agents AgentNumbers) *WizardService {
	return &WizardService{
		sessions: sessions,
		agents:   agents,
		now:      time.Now,
	}
}

func (s *WizardService) StartSession(ctx context.Context) (commons.Response[models.SessionResponse], error) {
	var (
		session domain.TransferSession
		err     error
	)
	for attempt := 0; attempt < 3; attempt++ {
		session, err = s.sessions.Create(ctx, domain.NewTransferSession(newSessionID(), s.now()))
		if err == nil || !errors.Is(err, commons.ErrDuplicateRecord) {
			break
		}
	}
	if err != nil {
		logger.Error("wizard service start session failed", err, nil)
		return commons.ErrorResponse[models.SessionResponse]("failed to start session", "Unable to start a transfer right now"), err
	}

	logger.Info("wizard service session started", logger.Fields{"sessionId": session.ID})
	return commons.SuccessResponse("session started", models.NewSessionResponse(session)), nil
}

func (s *WizardService) GetSession(ctx context.Context, id string) (commons.Response[models.SessionResponse], error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return sessionError[models.SessionResponse](err)
	}
	return commons.SuccessResponse("session fetched successfully", models.NewSessionResponse(session)), nil
}

// SetAmount stores amount and direction. A positive amount advances to RECIPIENT.
func (s *WizardService) SetAmount(ctx context.Context, id string, req models.SetAmountRequest) (commons.Response[models.SessionResponse], error) {
	logger.Info("wizard service set amount request", logger.Fields{
		"sessionId": id,
		"payload":   logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ValidationResponse[models.SessionResponse](err), err
	}
	direction, _ := domain.ParseDirection(req.Direction)

	session, err := s.sessions.Update(ctx, id, func(session *domain.TransferSession) error {
		if session.Step != domain.StepAmount {
			return stepError(session.Step, "set amount")
		}
		session.Draft.SetAmount(req.Amount, direction)
		if session.Draft.AmountSend.IsPositive() {
			session.Step = domain.StepRecipient
		}
		return nil
	})
	if err != nil {
		return sessionError[models.SessionResponse](err)
	}

	return commons.SuccessResponse("amount saved", models.NewSessionResponse(session)), nil
}

func (s *WizardService) SetParties(ctx context.Context, id string, req models.SetPartiesRequest) (commons.Response[models.SessionResponse], error) {
	logger.Info("wizard service set parties request", logger.Fields{
		"sessionId": id,
		"payload":   logger.SanitizePayload(req),
	})

	var validationErr error
	session, err := s.sessions.Update(ctx, id, func(session *domain.TransferSession) error {
		if session.Step != domain.StepRecipient {
			return stepError(session.Step, "set parties")
		}
		if err := req.Validate(session.Draft.Direction); err != nil {
			validationErr = err
			return err
		}
		session.Draft.SetParties(req.ToParties())
		session.Step = domain.StepReview
		return nil
	})
	if validationErr != nil {
		return commons.ValidationResponse[models.SessionResponse](validationErr), validationErr
	}
	if err != nil {
		return sessionError[models.SessionResponse](err)
	}

	return commons.SuccessResponse("recipient saved", models.NewSessionResponse(session)), nil
}

// Review returns where the sender must pay before confirming.
func (s *WizardService) Review(ctx context.Context, id string) (commons.Response[models.ReviewResponse], error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return sessionError[models.ReviewResponse](err)
	}
	if session.Step != domain.StepReview {
		return sessionError[models.ReviewResponse](stepError(session.Step, "review"))
	}

	return commons.SuccessResponse("review fetched successfully", models.ReviewResponse{
		SessionResponse: models.NewSessionResponse(session),
		Instructions:    domain.NewPaymentInstructions(session.Draft.Direction, s.agents.Somalia, s.agents.Uganda),
	}), nil
}

func (s *WizardService) Back(ctx context.Context, id string) (commons.Response[models.SessionResponse], error) {
	session, err := s.sessions.Update(ctx, id, func(session *domain.TransferSession) error {
		if session.Submitting {
			return commons.ErrSubmitInProgress
		}
		previous, ok := session.Step.Previous()
		if !ok {
			return stepError(session.Step, "go back")
		}
		session.Step = previous
		return nil
	})
	if err != nil {
		return sessionError[models.SessionResponse](err)
	}
	return commons.SuccessResponse("moved back", models.NewSessionResponse(session)), nil
}

// Reset starts a fresh draft on the same session.
func (s *WizardService) Reset(ctx context.Context, id string) (commons.Response[models.SessionResponse], error) {
	session, err := s.sessions.Update(ctx, id, func(session *domain.TransferSession) error {
		if session.Submitting {
			return commons.ErrSubmitInProgress
		}
		session.Step = domain.StepAmount
		session.Draft = domain.NewDraft()
		session.Result = nil
		return nil
	})
	if err != nil {
		return sessionError[models.SessionResponse](err)
	}
	return commons.SuccessResponse("session reset", models.NewSessionResponse(session)), nil
}

func stepError(step domain.WizardStep, action string) error {
	return fmt.Errorf("cannot %s at step %s: %w", action, strings.ToLower(string(step)), commons.ErrInvalidStep)
}

func sessionError[T any](err error) (commons.Response[T], error) {
	switch {
	case errors.Is(err, commons.ErrRecordNotFound):
		return commons.ErrorResponse[T](commons.MessageSessionNotFound), err
	case errors.Is(err, commons.ErrInvalidStep):
		return commons.ErrorResponse[T](commons.MessageInvalidStep, err.Error()), err
	case errors.Is(err, commons.ErrSubmitInProgress):
		return commons.ErrorResponse[T](commons.MessageInProgress), err
	default:
		logger.Error("wizard session operation failed", err, nil)
		return commons.ErrorResponse[T]("failed to update session", "Unable to update the transfer right now"), err
	}
}
