package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/api-sage/somaluganda-remit/src/internal/adapter/http/models"
	"github.com/api-sage/somaluganda-remit/src/internal/commons"
	"github.com/gorilla/mux"
)

type QuoteService interface {
	GetQuote(ctx context.Context, req models.QuoteRequest) (commons.Response[models.QuoteResponse], error)
}

type QuoteController struct {
	service QuoteService
}

func NewQuoteController(service QuoteService) *QuoteController {
	return &QuoteController{service: service}
}

func (c *QuoteController) RegisterRoutes(router *mux.Router, _ func(http.Handler) http.Handler) {
	router.HandleFunc("/quote", c.getQuote).Methods(http.MethodGet)
}

func (c *QuoteController) getQuote(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req := models.QuoteRequest{
		Amount:    r.URL.Query().Get("amount"),
		Direction: r.URL.Query().Get("direction"),
	}
	logRequest(r, req)

	response, err := c.service.GetQuote(r.Context(), req)
	respond(w, r, response, err, http.StatusOK, start)
}
