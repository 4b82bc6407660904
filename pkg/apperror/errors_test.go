package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	err := New("LED_001", "Amount must be positive", http.StatusBadRequest)
	assert.Equal(t, "[LED_001] Amount must be positive", err.Error())

	inner := errors.New("boom")
	wrapped := Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, inner)
	assert.Contains(t, wrapped.Error(), "boom")
}

func TestAppError_Unwrap(t *testing.T) {
	inner := errors.New("connection reset")
	err := InternalError(fmt.Errorf("begin tx: %w", inner))
	assert.True(t, errors.Is(err, inner))
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		err    *AppError
		code   string
		status int
	}{
		{ErrInvalidAmount(), "LED_001", http.StatusBadRequest},
		{ErrInsufficientFunds(), "LED_002", http.StatusPaymentRequired},
		{ErrAccountBankrupt(), "LED_003", http.StatusUnprocessableEntity},
		{ErrAccountNotFound(), "LED_004", http.StatusNotFound},
		{ErrNotFound("transaction"), "LED_005", http.StatusNotFound},
		{ErrLoanLimitExceeded(), "LOAN_001", http.StatusUnprocessableEntity},
		{ErrLoanNotApproved(), "LOAN_002", http.StatusUnprocessableEntity},
		{ErrInvalidToken(), "AUTH_001", http.StatusUnauthorized},
		{ErrRateLimitExceeded(), "RATE_001", http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			require.NotNil(t, tt.err)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
		})
	}
}

func TestErrNotFound_Message(t *testing.T) {
	err := ErrNotFound("loan transaction")
	assert.Equal(t, "loan transaction not found", err.Message)
}
