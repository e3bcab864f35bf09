package services

import (
	"context"
	"fmt"
	"html"

	"github.com/charmbracelet/log"
	"github.com/resend/resend-go/v2"
)

// EmailSender is the part of the Resend client used here.
type EmailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type EmailService struct {
	sender EmailSender
	from   string
}

// NewEmailService returns nil when no API key is configured, matching how
// callers check for an unavailable mailer.
func NewEmailService(apiKey, from string) *EmailService {
	if apiKey == "" {
		log.Warn("RESEND_API_KEY not set, email service will not be available")
		return nil
	}
	return &EmailService{sender: resend.NewClient(apiKey).Emails, from: from}
}

func NewEmailServiceWithSender(sender EmailSender, from string) *EmailService {
	return &EmailService{sender: sender, from: from}
}

// SendPasswordResetEmail mails the Firebase password reset link.
func (s *EmailService) SendPasswordResetEmail(ctx context.Context, toEmail, displayName, resetLink string) error {
	if s == nil || s.sender == nil {
		return fmt.Errorf("email service not initialized")
	}

	greeting := "Assalamu alaikum"
	if displayName != "" {
		greeting += " " + displayName
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
        }
        .header {
            text-align: center;
            padding: 20px 0;
            border-bottom: 2px solid #2f7d6d;
        }
        .header h1 {
            color: #2f7d6d;
            margin: 0;
        }
        .content {
            padding: 30px 0;
        }
        .button {
            display: inline-block;
            background-color: #2f7d6d;
            color: #fff;
            padding: 12px 24px;
            border-radius: 6px;
            text-decoration: none;
        }
        .footer {
            text-align: center;
            padding: 20px 0;
            border-top: 1px solid #ddd;
            font-size: 12px;
            color: #666;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>Mawaqit</h1>
    </div>

    <div class="content">
        <h2>Password Reset Request</h2>

        <p>%s,</p>

        <p>We received a request to reset your Mawaqit password. Use the button below to choose a new one:</p>

        <p style="text-align:center"><a class="button" href="%s">Reset password</a></p>

        <p>If you didn't request a password reset, you can ignore this email. Your password will remain unchanged.</p>

        <p>May Allah make it easy for you,<br>The Mawaqit Team</p>
    </div>

    <div class="footer">
        <p>This is an automated message, please do not reply directly to this email.</p>
    </div>
</body>
</html>
`, html.EscapeString(greeting), html.EscapeString(resetLink))

	textBody := fmt.Sprintf(`
Password Reset Request

%s,

We received a request to reset your Mawaqit password. Open the link below to choose a new one:

%s

If you didn't request a password reset, you can ignore this email. Your password will remain unchanged.

May Allah make it easy for you,
The Mawaqit Team
`, greeting, resetLink)

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: "Reset Your Mawaqit Password",
		Html:    htmlBody,
		Text:    textBody,
	}

	sent, err := s.sender.SendWithContext(ctx, params)
	if err != nil {
		log.Error("failed to send password reset email", "to", toEmail, "err", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Info("sent password reset email", "to", toEmail, "email_id", sent.Id)
	return nil
}
