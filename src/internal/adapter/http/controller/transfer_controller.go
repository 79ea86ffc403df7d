package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/api-sage/somaluganda-remit/src/internal/adapter/http/models"
	"github.com/api-sage/somaluganda-remit/src/internal/commons"
	"github.com/gorilla/mux"
)

type WizardService interface {
	StartSession(ctx context.Context) (commons.Response[models.SessionResponse], error)
	GetSession(ctx context.Context, id string) (commons.Response[models.SessionResponse], error)
	SetAmount(ctx context.Context, id string, req models.SetAmountRequest) (commons.Response[models.SessionResponse], error)
	SetParties(ctx context.Context, id string, req models.SetPartiesRequest) (commons.Response[models.SessionResponse], error)
	Review(ctx context.Context, id string) (commons.Response[models.ReviewResponse], error)
	Back(ctx context.Context, id string) (commons.Response[models.SessionResponse], error)
	Reset(ctx context.Context, id string) (commons.Response[models.SessionResponse], error)
}

type SubmissionService interface {
	Confirm(ctx context.Context, id string, req models.ConfirmRequest) (commons.Response[models.ReceiptResponse], error)
}

// TransferController serves the sender wizard. Its routes are public.
type TransferController struct {
	wizard     WizardService
	submission SubmissionService
}

func NewTransferController(wizard WizardService, submission SubmissionService) *TransferController {
	return &TransferController{wizard: wizard, submission: submission}
}

func (c *TransferController) RegisterRoutes(router *mux.Router, _ func(http.Handler) http.Handler) {
	s := router.PathPrefix("/transfers/sessions").Subrouter()
	s.HandleFunc("", c.startSession).Methods(http.MethodPost)
	s.HandleFunc("/{id}", c.getSession).Methods(http.MethodGet)
	s.HandleFunc("/{id}/amount", c.setAmount).Methods(http.MethodPut)
	s.HandleFunc("/{id}/parties", c.setParties).Methods(http.MethodPut)
	s.HandleFunc("/{id}/review", c.review).Methods(http.MethodGet)
	s.HandleFunc("/{id}/back", c.back).Methods(http.MethodPost)
	s.HandleFunc("/{id}/confirm", c.confirm).Methods(http.MethodPost)
	s.HandleFunc("/{id}/reset", c.reset).Methods(http.MethodPost)
}

func (c *TransferController) startSession(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.wizard.StartSession(r.Context())
	respond(w, r, response, err, http.StatusCreated, start)
}

func (c *TransferController) getSession(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.wizard.GetSession(r.Context(), mux.Vars(r)["id"])
	respond(w, r, response, err, http.StatusOK, start)
}

func (c *TransferController) setAmount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.SetAmountRequest
	if !decodeBody[models.SessionResponse](w, r, &req, start) {
		return
	}

	response, err := c.wizard.SetAmount(r.Context(), mux.Vars(r)["id"], req)
	respond(w, r, response, err, http.StatusOK, start)
}

func (c *TransferController) setParties(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.SetPartiesRequest
	if !decodeBody[models.SessionResponse](w, r, &req, start) {
		return
	}

	response, err := c.wizard.SetParties(r.Context(), mux.Vars(r)["id"], req)
	respond(w, r, response, err, http.StatusOK, start)
}

func (c *TransferController) review(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.wizard.Review(r.Context(), mux.Vars(r)["id"])
	respond(w, r, response, err, http.StatusOK, start)
}

func (c *TransferController) back(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.wizard.Back(r.Context(), mux.Vars(r)["id"])
	respond(w, r, response, err, http.StatusOK, start)
}

func (c *TransferController) confirm(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.ConfirmRequest
	if !decodeBody[models.ReceiptResponse](w, r, &req, start) {
		return
	}

	response, err := c.submission.Confirm(r.Context(), mux.Vars(r)["id"], req)
	respond(w, r, response, err, http.StatusCreated, start)
}

func (c *TransferController) reset(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.wizard.Reset(r.Context(), mux.Vars(r)["id"])
	respond(w, r, response, err, http.StatusOK, start)
}
