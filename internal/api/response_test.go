package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pro-joshi-grammer/sahayatha/internal/domain"
)

func TestDomainErrorToHTTP(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, http.StatusOK},
		{"validation", domain.ErrInvalidTicketStatus, http.StatusBadRequest},
		{"not found", domain.ErrTicketNotFound, http.StatusNotFound},
		{"overloaded", domain.ErrPipelineBusy, http.StatusServiceUnavailable},
		{"upstream unavailable", domain.ErrTranscriberUnavailable, http.StatusBadGateway},
		{"internal", domain.NewDomainError(domain.ErrCodeInternalError, "boom"), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DomainErrorToHTTP(tt.err))
		})
	}
}

func TestHandleError_WritesJSONBody(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, domain.ErrTicketNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"ok":false,"error":"ticket not found"}`, rec.Body.String())
}

func TestHandleError_HidesNonDomainCauses(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, errors.New("pgx: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"ok":false,"error":"internal error"}`, rec.Body.String())
}

func TestSuccess_WrapsData(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, http.StatusCreated, map[string]string{"ticket_id": "CERT-000001"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"ticket_id":"CERT-000001"}}`, rec.Body.String())
}
