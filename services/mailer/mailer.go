package mailer

import (
	"fmt"

	"agritrust/config"
	"agritrust/utils"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer delivers transactional email.
type Mailer interface {
	SendResetCode(toEmail, toName, code string) error
}

// SendGridMailer is the production Mailer.
type SendGridMailer struct {
	apiKey string
	sender string
}

// NewSendGridMailer builds a Mailer from config.
func NewSendGridMailer() *SendGridMailer {
	return &SendGridMailer{
		apiKey: config.AppConfig.SendGridAPIKey,
		sender: config.AppConfig.SenderEmail,
	}
}

// SendResetCode emails a 6-digit password-reset code.
func (m *SendGridMailer) SendResetCode(toEmail, toName, code string) error {
	if m.apiKey == "" {
		// Without an API key (local development) the code is only logged.
		utils.GetLogger().Sugar().Infof("SendResetCode: no SendGrid key, code for %s is %s", toEmail, code)
		return nil
	}

	from := mail.NewEmail("AgriTrust", m.sender)
	to := mail.NewEmail(toName, toEmail)
	subject := "Your AgriTrust password reset code"
	body := fmt.Sprintf("Your password reset code is %s. It expires in 10 minutes.", code)
	message := mail.NewSingleEmail(from, subject, to, body, body)

	client := sendgrid.NewSendClient(m.apiKey)
	resp, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("mailer: failed to send reset code: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("mailer: sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}
