package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/api-sage/somaluganda-remit/src/internal/commons"
	"github.com/api-sage/somaluganda-remit/src/internal/logger"
)

var statusByMessage = map[string]int{
	commons.MessageValidationFailed: http.StatusBadRequest,
	commons.MessageSessionNotFound:  http.StatusNotFound,
	commons.MessageNotFound:         http.StatusNotFound,
	commons.MessageInvalidStep:      http.StatusConflict,
	commons.MessageInProgress:       http.StatusConflict,
	commons.MessageAlreadyFinal:     http.StatusConflict,
	commons.MessageIncorrectPin:     http.StatusUnauthorized,
	commons.MessageNothingToExport:  http.StatusUnprocessableEntity,
}

func statusFor(message string) int {
	if status, ok := statusByMessage[message]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// respond writes a service result. Errors map through the response message;
// success uses okStatus.
func respond[T any](w http.ResponseWriter, r *http.Request, response commons.Response[T], err error, okStatus int, start time.Time) {
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFor(response.Message)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, okStatus, response)
	logResponse(r, okStatus, response, start)
}

// decodeBody reports a bad body itself and returns false.
func decodeBody[T any](w http.ResponseWriter, r *http.Request, dst any, start time.Time) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[T]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return false
	}
	logRequest(r, dst)
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
