package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/api-sage/somaluganda-remit/src/internal/adapter/http/models"
	"github.com/api-sage/somaluganda-remit/src/internal/commons"
	"github.com/gorilla/mux"
)

type PreferenceService interface {
	GetTheme(ctx context.Context) (commons.Response[models.ThemeResponse], error)
	SetTheme(ctx context.Context, req models.ThemeRequest) (commons.Response[models.ThemeResponse], error)
}

type PreferenceController struct {
	service PreferenceService
}

func NewPreferenceController(service PreferenceService) *PreferenceController {
	return &PreferenceController{service: service}
}

func (c *PreferenceController) RegisterRoutes(router *mux.Router, _ func(http.Handler) http.Handler) {
	router.HandleFunc("/preferences/theme", c.getTheme).Methods(http.MethodGet)
	router.HandleFunc("/preferences/theme", c.setTheme).Methods(http.MethodPut)
}

func (c *PreferenceController) getTheme(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.GetTheme(r.Context())
	respond(w, r, response, err, http.StatusOK, start)
}

func (c *PreferenceController) setTheme(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.ThemeRequest
	if !decodeBody[models.ThemeResponse](w, r, &req, start) {
		return
	}

	response, err := c.service.SetTheme(r.Context(), req)
	respond(w, r, response, err, http.StatusOK, start)
}
