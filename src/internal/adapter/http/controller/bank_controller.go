package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/api-sage/somaluganda-remit/src/internal/adapter/http/models"
	"github.com/api-sage/somaluganda-remit/src/internal/commons"
	"github.com/gorilla/mux"
)

type BankService interface {
	GetBanks(ctx context.Context, req models.BankListRequest) (commons.Response[[]models.BankResponse], error)
}

type BankController struct {
	service BankService
}

func NewBankController(service BankService) *BankController {
	return &BankController{service: service}
}

func (c *BankController) RegisterRoutes(router *mux.Router, _ func(http.Handler) http.Handler) {
	router.HandleFunc("/banks", c.getBanks).Methods(http.MethodGet)
}

func (c *BankController) getBanks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req := models.BankListRequest{
		Direction: r.URL.Query().Get("direction"),
		Query:     r.URL.Query().Get("q"),
	}
	logRequest(r, req)

	response, err := c.service.GetBanks(r.Context(), req)
	respond(w, r, response, err, http.StatusOK, start)
}
