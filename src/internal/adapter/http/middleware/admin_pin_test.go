package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAdminPin_AllowsValidPin(t *testing.T) {
	mw := AdminPin(func(pin string) bool { return pin == "1123" })

	req := httptest.NewRequest(http.MethodGet, "/admin/transactions", nil)
	req.Header.Set(AdminPinHeader, "1123")

	rr := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}

func TestAdminPin_RejectsWrongOrMissingPin(t *testing.T) {
	mw := AdminPin(func(pin string) bool { return pin == "1123" })

	for _, pin := range []string{"", "0000"} {
		req := httptest.NewRequest(http.MethodGet, "/admin/transactions", nil)
		if pin != "" {
			req.Header.Set(AdminPinHeader, pin)
		}

		rr := httptest.NewRecorder()
		mw(okHandler()).ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("pin %q: expected status %d, got %d", pin, http.StatusUnauthorized, rr.Code)
		}
	}
}

func TestAdminPin_MissingVerifier(t *testing.T) {
	mw := AdminPin(nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/analytics", nil)
	req.Header.Set(AdminPinHeader, "1123")

	rr := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}
}
