package controller

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/api-sage/somaluganda-remit/src/internal/adapter/http/models"
	"github.com/api-sage/somaluganda-remit/src/internal/commons"
	"github.com/api-sage/somaluganda-remit/src/internal/domain"
	"github.com/gorilla/mux"
)

type AdminService interface {
	Unlock(ctx context.Context, req models.UnlockRequest) (commons.Response[models.UnlockResponse], error)
	ListTransactions(ctx context.Context, req models.ListTransactionsRequest) (commons.Response[models.TransactionListResponse], error)
	ManualEntry(ctx context.Context, req models.ManualEntryRequest) (commons.Response[domain.TransactionRecord], error)
	Approve(ctx context.Context, transactionID string) (commons.Response[models.ApproveResponse], error)
	ExportCSV(ctx context.Context) (commons.Response[models.ExportFile], error)
	Analytics(ctx context.Context) (commons.Response[models.AnalyticsResponse], error)
}

type AdminController struct {
	service AdminService
}

func NewAdminController(service AdminService) *AdminController {
	return &AdminController{service: service}
}

// RegisterRoutes leaves /admin/unlock open and puts every other admin route
// behind adminMiddleware.
func (c *AdminController) RegisterRoutes(router *mux.Router, adminMiddleware func(http.Handler) http.Handler) {
	router.HandleFunc("/admin/unlock", c.unlock).Methods(http.MethodPost)

	admin := router.PathPrefix("/admin").Subrouter()
	if adminMiddleware != nil {
		admin.Use(adminMiddleware)
	}
	admin.HandleFunc("/transactions", c.listTransactions).Methods(http.MethodGet)
	admin.HandleFunc("/transactions", c.manualEntry).Methods(http.MethodPost)
	admin.HandleFunc("/transactions/export", c.export).Methods(http.MethodGet)
	admin.HandleFunc("/transactions/{id}/approve", c.approve).Methods(http.MethodPost)
	admin.HandleFunc("/analytics", c.analytics).Methods(http.MethodGet)
}

func (c *AdminController) unlock(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.UnlockRequest
	if !decodeBody[models.UnlockResponse](w, r, &req, start) {
		return
	}

	response, err := c.service.Unlock(r.Context(), req)
	respond(w, r, response, err, http.StatusOK, start)
}

func (c *AdminController) listTransactions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	query := r.URL.Query()
	req := models.ListTransactionsRequest{
		Query:     query.Get("q"),
		Status:    query.Get("status"),
		SortBy:    query.Get("sortBy"),
		SortOrder: query.Get("sortOrder"),
	}
	logRequest(r, req)

	response, err := c.service.ListTransactions(r.Context(), req)
	respond(w, r, response, err, http.StatusOK, start)
}

func (c *AdminController) manualEntry(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.ManualEntryRequest
	if !decodeBody[domain.TransactionRecord](w, r, &req, start) {
		return
	}

	response, err := c.service.ManualEntry(r.Context(), req)
	respond(w, r, response, err, http.StatusCreated, start)
}

func (c *AdminController) approve(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.Approve(r.Context(), mux.Vars(r)["id"])
	respond(w, r, response, err, http.StatusOK, start)
}

// export streams the CSV on success and falls back to the JSON envelope on error.
func (c *AdminController) export(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.ExportCSV(r.Context())
	if err != nil || response.Data == nil {
		respond(w, r, response, err, http.StatusOK, start)
		return
	}

	file := response.Data
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Content)
	logResponse(r, http.StatusOK, map[string]any{"filename": file.Filename, "bytes": len(file.Content)}, start)
}

func (c *AdminController) analytics(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.Analytics(r.Context())
	respond(w, r, response, err, http.StatusOK, start)
}
