package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Heytechmate/overtime-cafe/internal/repository"
	"github.com/Heytechmate/overtime-cafe/internal/service"
)

type apiError struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
}

type apiResponse struct {
	Status  string    `json:"status"`
	Message string    `json:"message"`
	Data    any       `json:"data"`
	Error   *apiError `json:"error,omitempty"`
}

func writeRawJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if status >= 400 {
		writeRawJSON(w, status, apiResponse{
			Status:  "error",
			Message: "",
			Data:    payload,
			Error: &apiError{
				Code:   status,
				Status: http.StatusText(status),
			},
		})
		return
	}
	writeRawJSON(w, status, apiResponse{
		Status:  "ok",
		Message: "",
		Data:    payload,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	if status < 400 {
		status = http.StatusInternalServerError
	}
	writeRawJSON(w, status, apiResponse{
		Status:  "error",
		Message: message,
		Data:    nil,
		Error: &apiError{
			Code:   status,
			Status: http.StatusText(status),
		},
	})
}

// writeDomainError maps the shared repository/service sentinels onto HTTP
// statuses so handlers stay uniform.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrSlotTaken),
		errors.Is(err, repository.ErrInvalidTransition),
		errors.Is(err, repository.ErrNoCredit),
		errors.Is(err, service.ErrStoreClosed),
		errors.Is(err, service.ErrClosedDate):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrEmptyOrder),
		errors.Is(err, service.ErrUnknownOption),
		errors.Is(err, service.ErrUnknownFacility),
		errors.Is(err, service.ErrUnknownSlot):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
