package models

import (
	"errors"
	"strings"

	"github.com/api-sage/somaluganda-remit/src/internal/domain"
)

type GuideRequest struct {
	Question string `json:"question"`
}

func (r GuideRequest) Validate() error {
	if strings.TrimSpace(r.Question) == "" {
		return errors.New("question is required")
	}
	return nil
}

type GuideResponse struct {
	Answer string `json:"answer"`
}

type ChatRequest struct {
	Message string               `json:"message"`
	History []domain.ChatMessage `json:"history"`
}

func (r ChatRequest) Validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return errors.New("message is required")
	}
	return nil
}

type ChatResponse struct {
	Replies []domain.ChatMessage `json:"replies"`
}
