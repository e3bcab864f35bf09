package services

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
	"github.com/charmbracelet/log"
)

// ResetLinkGenerator is the part of the Firebase auth client used for
// password resets.
type ResetLinkGenerator interface {
	GetUserByEmail(ctx context.Context, email string) (*auth.UserRecord, error)
	PasswordResetLink(ctx context.Context, email string) (string, error)
}

type PasswordResetService struct {
	links ResetLinkGenerator
	email *EmailService
}

func NewPasswordResetService(links ResetLinkGenerator, email *EmailService) *PasswordResetService {
	return &PasswordResetService{links: links, email: email}
}

// ForgotPassword mails a reset link. Unknown addresses are not an error so
// callers cannot probe which emails have accounts.
func (s *PasswordResetService) ForgotPassword(ctx context.Context, email string) error {
	if s.links == nil || s.email == nil {
		return fmt.Errorf("password reset is not configured")
	}

	user, err := s.links.GetUserByEmail(ctx, email)
	if auth.IsUserNotFound(err) {
		log.Info("password reset requested for unknown email")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	link, err := s.links.PasswordResetLink(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to generate reset link: %w", err)
	}

	displayName := ""
	if user != nil && user.UserInfo != nil {
		displayName = user.DisplayName
	}
	return s.email.SendPasswordResetEmail(ctx, email, displayName, link)
}
