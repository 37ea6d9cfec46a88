package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStatusCodes(t *testing.T) {
	tests := map[Kind]int{
		KindValidation:      http.StatusBadRequest,
		KindUnauthenticated: http.StatusUnauthorized,
		KindUnauthorized:    http.StatusForbidden,
		KindNotFound:        http.StatusNotFound,
		KindConflict:        http.StatusConflict,
		KindRateLimited:     http.StatusTooManyRequests,
		KindInternal:        http.StatusInternalServerError,
		Kind(99):            http.StatusInternalServerError,
	}

	for kind, status := range tests {
		assert.Equal(t, status, kind.StatusCode(), kind.String())
		if kind != Kind(99) {
			assert.Equal(t, kind, KindFromStatus(status))
		}
	}
}

func TestKindFromStatusFallbacks(t *testing.T) {
	assert.Equal(t, KindValidation, KindFromStatus(http.StatusRequestEntityTooLarge))
	assert.Equal(t, KindInternal, KindFromStatus(http.StatusBadGateway))
}

func TestInternalErrorKeepsCause(t *testing.T) {
	cause := stderrors.New("connection refused")

	err := NewInternalServerError(cause, "Failed to get video")

	assert.Equal(t, "Failed to get video", err.Error())
	assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Stack(), "connection refused")
}

func TestTooManyRequestsDetails(t *testing.T) {
	err := NewTooManyRequestsError("Rate limit exceeded", 10, 1700000000)

	assert.Equal(t, KindRateLimited, err.Kind)
	assert.Equal(t, []string{"limit=10", "reset=1700000000"}, err.Errors)
}
