package services

import (
	"context"
	"strings"
	"time"

	"github.com/api-sage/somaluganda-remit/src/internal/adapter/http/models"
	"github.com/api-sage/somaluganda-remit/src/internal/commons"
	"github.com/api-sage/somaluganda-remit/src/internal/domain"
	"github.com/api-sage/somaluganda-remit/src/internal/logger"
	"github.com/api-sage/somaluganda-remit/src/internal/usecase/service_interfaces"
)

const (
	guideOfflineAnswer = "You are currently offline. Basic transfer features still work, but I cannot answer questions right now."
	guideErrorAnswer   = "I am currently offline. Please check the Help section."
	guideEmptyAnswer   = "Please contact Admin support via WhatsApp."
)

// AssistantService fronts the guide and community chat. Model failures never
// reach the caller.
type AssistantService struct {
	model   service_interfaces.AssistantModel
	offline bool
	timeout time.Duration
}

func NewAssistantService(model service_interfaces.AssistantModel, offline bool, timeout time.Duration) *AssistantService {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &AssistantService{
		model:   model,
		offline: offline || model == nil,
		timeout: timeout,
	}
}

func (s *AssistantService) Guide(ctx context.Context, req models.GuideRequest) (commons.Response[models.GuideResponse], error) {
	if err := req.Validate(); err != nil {
		return commons.ValidationResponse[models.GuideResponse](err), err
	}
	if s.offline {
		return commons.SuccessResponse("guide answered", models.GuideResponse{Answer: guideOfflineAnswer}), nil
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	answer, err := s.model.Ask(callCtx, strings.TrimSpace(req.Question))
	switch {
	case err != nil:
		logger.Warn("assistant service guide failed", logger.Fields{"error": err.Error()})
		answer = guideErrorAnswer
	case strings.TrimSpace(answer) == "":
		answer = guideEmptyAnswer
	}

	return commons.SuccessResponse("guide answered", models.GuideResponse{Answer: strings.TrimSpace(answer)}), nil
}

func (s *AssistantService) Chat(ctx context.Context, req models.ChatRequest) (commons.Response[models.ChatResponse], error) {
	if err := req.Validate(); err != nil {
		return commons.ValidationResponse[models.ChatResponse](err), err
	}

	replies := []domain.ChatMessage{}
	if s.offline {
		return commons.SuccessResponse("chat replies fetched", models.ChatResponse{Replies: replies}), nil
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	generated, err := s.model.ChatReplies(callCtx, strings.TrimSpace(req.Message), req.History)
	if err != nil {
		logger.Warn("assistant service chat failed", logger.Fields{"error": err.Error()})
	} else if generated != nil {
		replies = generated
	}

	return commons.SuccessResponse("chat replies fetched", models.ChatResponse{Replies: replies}), nil
}
