package controllers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"

	"github.com/Mawaqit/models"
	"github.com/Mawaqit/services"
)

type stubResetLinks struct{ err error }

func (s stubResetLinks) GetUserByEmail(ctx context.Context, email string) (*auth.UserRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &auth.UserRecord{UserInfo: &auth.UserInfo{Email: email, DisplayName: "Test"}}, nil
}

func (s stubResetLinks) PasswordResetLink(ctx context.Context, email string) (string, error) {
	return "https://mawaqit.firebaseapp.com/__/auth/action?mode=resetPassword&oobCode=x", nil
}

type stubSender struct{ sent int }

func (s *stubSender) SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	s.sent++
	return &resend.SendEmailResponse{Id: "email-1"}, nil
}

// Test ForgotPassword - Send a Firebase reset link by email
func TestForgotPassword(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		lookupErr      error
		expectedStatus int
		expectSent     int
	}{
		{
			name:           "successful request - user exists",
			requestBody:    models.ForgotPasswordRequest{Email: "test@example.com"},
			expectedStatus: http.StatusOK,
			expectSent:     1,
		},
		{
			name:           "auth backend failure",
			requestBody:    models.ForgotPasswordRequest{Email: "test@example.com"},
			lookupErr:      errors.New("auth unavailable"),
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "invalid JSON",
			requestBody:    "{invalid json}",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing email",
			requestBody:    map[string]interface{}{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid email format",
			requestBody:    map[string]interface{}{"email": "not-an-email"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &stubSender{}
			controller := NewPasswordResetController(services.NewPasswordResetService(
				stubResetLinks{err: tt.lookupErr},
				services.NewEmailServiceWithSender(sender, "noreply@mawaqit.app"),
			))

			c, w := SetupTestContext()
			SetJSONBody(c, http.MethodPost, tt.requestBody)

			controller.ForgotPassword(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectSent, sender.sent)
		})
	}
}

func TestPing(t *testing.T) {
	c, w := SetupTestContext()

	Ping(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", decodeBody(t, w)["message"])
}
