package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/api-sage/somaluganda-remit/src/internal/adapter/http/models"
	"github.com/api-sage/somaluganda-remit/src/internal/commons"
	"github.com/gorilla/mux"
)

type AssistantService interface {
	Guide(ctx context.Context, req models.GuideRequest) (commons.Response[models.GuideResponse], error)
	Chat(ctx context.Context, req models.ChatRequest) (commons.Response[models.ChatResponse], error)
}

type AssistantController struct {
	service AssistantService
}

func NewAssistantController(service AssistantService) *AssistantController {
	return &AssistantController{service: service}
}

func (c *AssistantController) RegisterRoutes(router *mux.Router, _ func(http.Handler) http.Handler) {
	router.HandleFunc("/assistant/guide", c.guide).Methods(http.MethodPost)
	router.HandleFunc("/assistant/chat", c.chat).Methods(http.MethodPost)
}

func (c *AssistantController) guide(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.GuideRequest
	if !decodeBody[models.GuideResponse](w, r, &req, start) {
		return
	}

	response, err := c.service.Guide(r.Context(), req)
	respond(w, r, response, err, http.StatusOK, start)
}

func (c *AssistantController) chat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.ChatRequest
	if !decodeBody[models.ChatResponse](w, r, &req, start) {
		return
	}

	response, err := c.service.Chat(r.Context(), req)
	respond(w, r, response, err, http.StatusOK, start)
}
