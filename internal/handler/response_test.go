package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Heytechmate/overtime-cafe/internal/repository"
	"github.com/Heytechmate/overtime-cafe/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSONEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Nil(t, resp.Error)
}

func TestWriteErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, http.StatusConflict, "slot already booked")

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "slot already booked", resp.Message)
	require.NotNil(t, resp.Error)
	assert.Equal(t, http.StatusConflict, resp.Error.Code)
}

func TestWriteDomainErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{repository.ErrNotFound, http.StatusNotFound},
		{repository.ErrSlotTaken, http.StatusConflict},
		{repository.ErrInvalidTransition, http.StatusConflict},
		{repository.ErrNoCredit, http.StatusConflict},
		{service.ErrStoreClosed, http.StatusConflict},
		{service.ErrClosedDate, http.StatusConflict},
		{service.ErrEmptyOrder, http.StatusBadRequest},
		{service.ErrUnknownOption, http.StatusBadRequest},
		{service.ErrUnknownFacility, http.StatusBadRequest},
		{service.ErrUnknownSlot, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeDomainError(rec, tc.err)
		assert.Equal(t, tc.status, rec.Code, "error=%v", tc.err)
	}
}
