package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Mawaqit/models"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		retryable      bool
	}{
		{name: "validation", err: models.NewValidationError("status", "unknown"), expectedStatus: http.StatusBadRequest},
		{name: "illegal transition", err: fmt.Errorf("%w: PRAYED to NOT_MARKED", models.ErrIllegalTransition), expectedStatus: http.StatusConflict},
		{name: "not found", err: fmt.Errorf("tip nope: %w", models.ErrNotFound), expectedStatus: http.StatusNotFound},
		{name: "storage failure", err: models.NewStorageError("get users/u", errors.New("deadline exceeded")), expectedStatus: http.StatusServiceUnavailable, retryable: true},
		{name: "row vanished during update", err: models.NewStorageError("update users/u/prayers/2024-01-01", models.ErrNotFound), expectedStatus: http.StatusServiceUnavailable, retryable: true},
		{name: "unexpected", err: errors.New("boom"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := SetupTestContext()

			respondError(c, tt.err, "request failed")

			assert.Equal(t, tt.expectedStatus, w.Code)
			response := decodeBody(t, w)
			assert.Equal(t, "request failed", response["error"])
			if tt.retryable {
				assert.Equal(t, true, response["retryable"])
			} else {
				assert.NotContains(t, response, "retryable")
			}
		})
	}
}
