package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/domain/models"

	log "github.com/sirupsen/logrus"
)

// ErrorResponse distinguishes upstream fetch failures from internal errors.
type ErrorResponse struct {
	Error     string                `json:"error"`
	FetchKind models.FetchErrorKind `json:"fetch_kind,omitempty"`
	Message   string                `json:"message,omitempty"`
	Code      int                   `json:"code"`
}

func sendError(w http.ResponseWriter, message string, err error, code int) {
	log.WithFields(log.Fields{
		"error": err,
		"code":  code,
	}).Error(message)

	response := ErrorResponse{
		Error:   "internal",
		Message: message,
		Code:    code,
	}
	if code >= 400 && code < 500 {
		response.Error = "bad_request"
	}
	if err != nil {
		response.Message = message + ": " + err.Error()
	}

	writeJSON(w, code, response)
}

func sendFetchError(w http.ResponseWriter, fetchErr *models.FetchError) {
	log.WithFields(log.Fields{
		"kind": fetchErr.Kind,
		"url":  fetchErr.URL,
	}).Error(`crawl failed on fetch`)

	writeJSON(w, http.StatusBadGateway, ErrorResponse{
		Error:     "fetch_failed",
		FetchKind: fetchErr.Kind,
		Message:   fetchErr.Error(),
		Code:      http.StatusBadGateway,
	})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
