package router

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

type RouteRegistrar interface {
	RegisterRoutes(router *mux.Router, adminMiddleware func(http.Handler) http.Handler)
}

// New builds the API router. Nil registrars are skipped so tests can mount a
// single controller.
func New(adminMiddleware func(http.Handler) http.Handler, registrars ...RouteRegistrar) *mux.Router {
	router := mux.NewRouter()
	registerSwaggerRoutes(router)

	router.HandleFunc("/health", health).Methods(http.MethodGet, http.MethodHead)

	for _, registrar := range registrars {
		if registrar == nil {
			continue
		}
		registrar.RegisterRoutes(router, adminMiddleware)
	}

	return router
}

func health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
